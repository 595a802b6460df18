package llm

import (
	"encoding/json"
)

// wrappedItemsKey holds a root-array schema inside an object root for
// providers whose structured output only accepts object roots.
const wrappedItemsKey = "items"

// objectRooted returns def unchanged when its root is an object, or wraps
// it under wrappedItemsKey. wrapped reports whether wrapping happened.
func objectRooted(def map[string]any) (out map[string]any, wrapped bool) {
	if t, _ := def["type"].(string); t != "array" {
		return def, false
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			wrappedItemsKey: def,
		},
		"required":             []string{wrappedItemsKey},
		"additionalProperties": false,
	}, true
}

// unwrapItems undoes objectRooted on a reply. Content that does not have
// the wrapper shape is returned untouched so validation can report it.
func unwrapItems(content json.RawMessage) json.RawMessage {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(content, &wrapper); err != nil {
		return content
	}
	if inner, ok := wrapper[wrappedItemsKey]; ok && len(wrapper) == 1 {
		return inner
	}
	return content
}
