// Package llm provides the generation backend clients used to turn a resume
// prompt into model output. Gemini is reached through the hosted SDK and
// Ollama through its local HTTP API.
package llm

import (
	"fmt"
	"time"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the hosted Google Gemini API
	ProviderGemini Provider = "gemini"
	// ProviderOllama is a self-hosted Ollama inference server
	ProviderOllama Provider = "ollama"
)

// Default timeouts for the two backend calls
const (
	DefaultProbeTimeout    = 5 * time.Second
	DefaultGenerateTimeout = 60 * time.Second
)

// Config holds the generation backend configuration
type Config struct {
	Provider        Provider
	Model           string
	BaseURL         string // Ollama only
	Temperature     float32
	MaxTokens       int
	ProbeTimeout    time.Duration
	GenerateTimeout time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:        ProviderGemini,
		Model:           "gemini-2.5-flash",
		Temperature:     0.3,
		MaxTokens:       8192,
		ProbeTimeout:    DefaultProbeTimeout,
		GenerateTimeout: DefaultGenerateTimeout,
	}
}

// DefaultOllamaConfig returns the default Ollama configuration
func DefaultOllamaConfig() *Config {
	return &Config{
		Provider:        ProviderOllama,
		Model:           "llama3.1",
		BaseURL:         "http://localhost:11434",
		Temperature:     0.3,
		MaxTokens:       4096,
		ProbeTimeout:    DefaultProbeTimeout,
		GenerateTimeout: DefaultGenerateTimeout,
	}
}

// ConfigFor returns the default configuration for a provider name
func ConfigFor(provider string) (*Config, error) {
	switch Provider(provider) {
	case ProviderGemini, "":
		return DefaultGeminiConfig(), nil
	case ProviderOllama:
		return DefaultOllamaConfig(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
}

// WithModel returns a copy of the config using a different model
func (c *Config) WithModel(model string) *Config {
	cp := *c
	cp.Model = model
	return &cp
}

// Options returns the generation options implied by the config
func (c *Config) Options() GenerateOptions {
	return GenerateOptions{
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		JSON:        true,
	}
}

func (c *Config) probeTimeout() time.Duration {
	if c.ProbeTimeout > 0 {
		return c.ProbeTimeout
	}
	return DefaultProbeTimeout
}

func (c *Config) generateTimeout() time.Duration {
	if c.GenerateTimeout > 0 {
		return c.GenerateTimeout
	}
	return DefaultGenerateTimeout
}
