package llm

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Routes picks a model per output modality. Empty entries fall back
	// to the provider's configured model.
	Routes ModelRoutes

	// Timeout is the maximum duration for a single generation call
	// (including retries). Default: 60s.
	Timeout time.Duration
}

// ModelRoutes maps each output modality to a model ID.
type ModelRoutes struct {
	Text       string
	Structured string
	Image      string

	// Diagram serves structured diagram descriptions. Empty uses Structured.
	Diagram string
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-haiku"
	BaseURL string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.

	// HTTPClient replaces the SDK's default client when set.
	HTTPClient *http.Client
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"

	// Referer and Title identify the app on OpenRouter's rankings.
	Referer string
	Title   string // Default: "Be Topper"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Routes:  DefaultRoutes("gemini"),
		Timeout: 60 * time.Second,
	}
}

// DefaultRoutes returns the per-modality models used for provider.
func DefaultRoutes(provider string) ModelRoutes {
	switch provider {
	case "gemini":
		return ModelRoutes{
			Text:       "gemini-flash",
			Structured: "gemini-pro",
			Image:      "gemini-flash-image",
			Diagram:    "gemini-flash",
		}
	case "openai":
		return ModelRoutes{Image: "dall-e-3"}
	}
	return ModelRoutes{}
}

// ConfigFromEnv builds a Config from TOPPER_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("TOPPER_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
		cfg.Routes = DefaultRoutes(p)
	}

	if k := os.Getenv("TOPPER_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("TOPPER_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("TOPPER_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("TOPPER_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("TOPPER_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("TOPPER_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("TOPPER_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("TOPPER_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if r := os.Getenv("TOPPER_OPENROUTER_REFERER"); r != "" {
		cfg.OpenRouter.Referer = r
	}
	if m := os.Getenv("TOPPER_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	if m := os.Getenv("TOPPER_TEXT_MODEL"); m != "" {
		cfg.Routes.Text = m
	}
	if m := os.Getenv("TOPPER_STRUCTURED_MODEL"); m != "" {
		cfg.Routes.Structured = m
	}
	if m := os.Getenv("TOPPER_IMAGE_MODEL"); m != "" {
		cfg.Routes.Image = m
	}
	if m := os.Getenv("TOPPER_DIAGRAM_MODEL"); m != "" {
		cfg.Routes.Diagram = m
	}

	if v := os.Getenv("TOPPER_LLM_RETRY_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}
	if v := os.Getenv("TOPPER_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. A bare API_KEY is treated as a
// Gemini key. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if k := os.Getenv(name); k != "" {
			cfg.Provider = "gemini"
			cfg.Gemini.APIKey = k
			return cfg, true
		}
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		cfg.Routes = DefaultRoutes("openai")
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		cfg.Routes = DefaultRoutes("anthropic")
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		cfg.Routes = DefaultRoutes("openrouter")
		return cfg, true
	}

	return Config{}, false
}

// ResolveConfig returns the TOPPER_* configuration when it validates,
// otherwise the first discovered standard key.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if found, ok := DiscoverConfig(); ok {
		found.Retry = cfg.Retry
		found.Timeout = cfg.Timeout
		return found, nil
	}
	return Config{}, err
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("TOPPER_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("TOPPER_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("TOPPER_GEMINI_API_KEY (or GEMINI_API_KEY) is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("TOPPER_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
