package llm

import (
	"context"
	"fmt"
	"time"
)

// GenerateOptions tunes a single generation call
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int
	// JSON asks the backend to constrain output to a JSON document
	JSON bool
}

// Availability is the result of a backend liveness probe
type Availability struct {
	IsAvailable  bool          `json:"isAvailable"`
	Error        string        `json:"error,omitempty"`
	ResponseTime time.Duration `json:"responseTime"`
}

// Client is an abstraction over generation backends
type Client interface {
	// Generate sends the prompt and returns the raw model output.
	// Failures are *GenerationFailedError; there are no retries.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	// CheckAvailability probes the backend with a short timeout
	CheckAvailability(ctx context.Context) Availability
	// Model returns the configured model name
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a generation client based on configuration.
// The API key is only used by hosted providers.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderOllama:
		return NewOllamaClient(config, nil), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// Unavailable converts a failed probe into a *BackendUnavailableError.
// It returns nil when the backend is available.
func (a Availability) Unavailable(backend string) error {
	if a.IsAvailable {
		return nil
	}
	msg := a.Error
	if msg == "" {
		msg = "availability probe failed"
	}
	return &BackendUnavailableError{Backend: backend, Message: msg}
}
