package normalize

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/abhisek/betopper/internal/llm"
	"github.com/abhisek/betopper/internal/prompts"
)

// Text passes a free-text reply through unchanged. A reply with no
// visible content fails with ErrEmptyResponse.
func Text(raw string) (TextResult, error) {
	if strings.TrimSpace(raw) == "" {
		return TextResult{}, ErrEmptyResponse
	}
	return TextResult{Body: raw}, nil
}

// Items validates a question set reply. Any schema violation rejects the
// whole list.
func Items(raw []byte) (ItemListResult, error) {
	body := stripCodeFence(raw)
	if err := validate(prompts.QuestionItemsSchema, body); err != nil {
		return ItemListResult{}, malformed(prompts.QuestionItemsSchema, raw, err)
	}
	var items []QuestionItem
	if err := json.Unmarshal(body, &items); err != nil {
		return ItemListResult{}, malformed(prompts.QuestionItemsSchema, raw, err)
	}
	return ItemListResult{Items: items}, nil
}

// Diagram validates the description half of a diagram package.
func Diagram(raw []byte) (DiagramResult, error) {
	body := stripCodeFence(raw)
	if err := validate(prompts.DiagramSchema, body); err != nil {
		return DiagramResult{}, malformed(prompts.DiagramSchema, raw, err)
	}
	var d DiagramResult
	if err := json.Unmarshal(body, &d); err != nil {
		return DiagramResult{}, malformed(prompts.DiagramSchema, raw, err)
	}
	return d, nil
}

// Image returns the first inline image part. ErrImageAbsent is returned
// when none is present.
func Image(parts []llm.Part) (ImageResult, error) {
	for _, p := range parts {
		if p.IsInline() && strings.HasPrefix(p.MIMEType, "image/") {
			return ImageResult{MIMEType: p.MIMEType, Data: p.Data}, nil
		}
	}
	return ImageResult{}, ErrImageAbsent
}

var sectionMarker = regexp.MustCompile(`(?i)\bSECTION [A-Z]:`)

// SplitPaperSections splits paper text at each "SECTION <letter>:" marker.
// Each fragment starts at its marker; text before the first marker is its
// own fragment. Whitespace-only fragments are dropped. The result always
// holds at least one fragment, the whole text when there are no markers.
func SplitPaperSections(text string) []string {
	locs := sectionMarker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	bounds := make([]int, 0, len(locs)+2)
	bounds = append(bounds, 0)
	for _, loc := range locs {
		bounds = append(bounds, loc[0])
	}
	bounds = append(bounds, len(text))

	var sections []string
	for i := 0; i < len(bounds)-1; i++ {
		frag := text[bounds[i]:bounds[i+1]]
		if strings.TrimSpace(frag) == "" {
			continue
		}
		sections = append(sections, frag)
	}
	if len(sections) == 0 {
		return []string{text}
	}
	return sections
}

func malformed(schema *llm.Schema, raw []byte, err error) error {
	return &MalformedResponseError{Schema: schema.Name, Raw: raw, Err: err}
}

// stripCodeFence removes a Markdown code fence wrapped around JSON.
func stripCodeFence(raw []byte) []byte {
	body := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(body, []byte("```")) {
		return body
	}
	nl := bytes.IndexByte(body, '\n')
	if nl < 0 {
		return body
	}
	body = body[nl+1:]
	body = bytes.TrimSuffix(bytes.TrimSpace(body), []byte("```"))
	return bytes.TrimSpace(body)
}

