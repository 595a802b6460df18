package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for generative model interaction.
type Provider interface {
	// Generate sends a prompt to the model. The request's Schema field,
	// when set, instructs the provider to return JSON conforming to that
	// schema; Image, when set, asks for an inline image instead of text.
	// Validation of the returned content is the caller's concern.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Messages is the conversation history, oldest first. Single-turn
	// generation carries one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	Schema *Schema

	// Image requests image output. Mutually exclusive with Schema.
	Image *ImageConfig

	// Model overrides the provider's configured model for this call.
	Model string

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema (used as tool name for Anthropic,
	// schema name for OpenAI). Kebab-case, e.g. "question-items-v1".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// ImageConfig configures image generation.
type ImageConfig struct {
	// AspectRatio such as "1:1" or "16:9".
	AspectRatio string
}

// Response holds the model's output.
type Response struct {
	// Content is the text output. For schema requests this is the raw JSON
	// text; for image requests it holds any accompanying text.
	Content json.RawMessage

	// Parts is the multi-part reply, in provider order. Providers that only
	// return text leave a single text part.
	Parts []Part

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Part is one piece of a multi-part reply: either text or inline data.
type Part struct {
	Text     string
	MIMEType string
	Data     []byte
}

// IsInline reports whether the part carries inline binary data.
func (p Part) IsInline() bool {
	return len(p.Data) > 0
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// modelFor returns the per-request override or the provider default.
func modelFor(req Request, fallback string) string {
	if req.Model != "" {
		return req.Model
	}
	return fallback
}
