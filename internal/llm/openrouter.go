package llm

import (
	"context"
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterTitle   = "Be Topper"
)

// OpenRouterProvider wraps OpenAIProvider with OpenRouter-specific defaults.
// OpenRouter exposes an OpenAI-compatible API, so the underlying SDK is reused.
// Model IDs pass through untouched ("vendor/model").
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	title := cfg.Title
	if title == "" {
		title = defaultOpenRouterTitle
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
		HTTPClient: &http.Client{Transport: &attributionTransport{
			base:    http.DefaultTransport,
			referer: cfg.Referer,
			title:   title,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("openrouter: %w", err)
	}

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// Generate serves text and structured requests. OpenRouter has no images
// endpoint, so image requests fail without a network call.
func (p *OpenRouterProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.Image != nil {
		return nil, fmt.Errorf("openrouter: image generation is not supported; route images to gemini or openai")
	}
	return p.OpenAIProvider.Generate(ctx, req)
}

// attributionTransport adds OpenRouter's optional app headers.
type attributionTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *attributionTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	if t.referer != "" {
		r.Header.Set("HTTP-Referer", t.referer)
	}
	r.Header.Set("X-Title", t.title)
	return t.base.RoundTrip(r)
}
