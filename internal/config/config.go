// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-assist/internal/llm"
	"github.com/jonathan/resume-assist/internal/pdf"
)

// Environment variables read by FromEnv
const (
	EnvDatabaseURL   = "DATABASE_URL"
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvProvider      = "LLM_PROVIDER"
	EnvModel         = "LLM_MODEL"
	EnvOllamaBaseURL = "OLLAMA_BASE_URL"
	EnvOllamaModel   = "OLLAMA_MODEL"
	EnvChromePath    = "CHROME_PATH"
	EnvAddr          = "ADDR"
)

// DefaultAddr is the HTTP listen address used when none is configured
const DefaultAddr = ":8080"

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Generation backend
	Provider               string  `json:"provider,omitempty"`                 // gemini or ollama
	Model                  string  `json:"model,omitempty"`                    // Model name override
	OllamaBaseURL          string  `json:"ollama_base_url,omitempty"`          // Ollama server URL
	APIKey                 string  `json:"api_key,omitempty"`                  // Gemini API key
	Temperature            float32 `json:"temperature,omitempty"`              // Sampling temperature (0.0-2.0)
	MaxTokens              int     `json:"max_tokens,omitempty"`               // Output token limit
	ProbeTimeoutSeconds    int     `json:"probe_timeout_seconds,omitempty"`    // Availability probe timeout
	GenerateTimeoutSeconds int     `json:"generate_timeout_seconds,omitempty"` // Generation call timeout

	// Rendering
	ChromePath            string `json:"chrome_path,omitempty"`              // Browser binary for PDF output
	PDFLoadTimeoutSeconds int    `json:"pdf_load_timeout_seconds,omitempty"` // Page load timeout for PDF output
	Template              string `json:"template,omitempty"`                 // Custom LaTeX template

	// Service
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Addr        string `json:"addr,omitempty"`         // HTTP listen address
	BatchLimit  int    `json:"batch_limit,omitempty"`  // Concurrent generations per batch
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. OLLAMA_MODEL applies
// only when the provider is ollama; LLM_MODEL wins over it.
func FromEnv() Config {
	cfg := Config{
		Provider:      os.Getenv(EnvProvider),
		Model:         os.Getenv(EnvModel),
		OllamaBaseURL: os.Getenv(EnvOllamaBaseURL),
		APIKey:        os.Getenv(EnvGeminiAPIKey),
		ChromePath:    os.Getenv(EnvChromePath),
		DatabaseURL:   os.Getenv(EnvDatabaseURL),
		Addr:          os.Getenv(EnvAddr),
	}
	if cfg.Model == "" && cfg.Provider == string(llm.ProviderOllama) {
		cfg.Model = os.Getenv(EnvOllamaModel)
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch llm.Provider(c.Provider) {
	case "", llm.ProviderGemini, llm.ProviderOllama:
	default:
		return fmt.Errorf("config error: unknown provider %q (want gemini or ollama)", c.Provider)
	}

	// Validate numeric ranges
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("config error: 'max_tokens' must be non-negative")
	}
	if c.ProbeTimeoutSeconds < 0 || c.GenerateTimeoutSeconds < 0 || c.PDFLoadTimeoutSeconds < 0 {
		return fmt.Errorf("config error: timeouts must be non-negative")
	}
	if c.BatchLimit < 0 {
		return fmt.Errorf("config error: 'batch_limit' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file and environment values beneath CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	mergeString(&result.Provider, defaults.Provider)
	mergeString(&result.Model, defaults.Model)
	mergeString(&result.OllamaBaseURL, defaults.OllamaBaseURL)
	mergeString(&result.APIKey, defaults.APIKey)
	mergeString(&result.ChromePath, defaults.ChromePath)
	mergeString(&result.Template, defaults.Template)
	mergeString(&result.DatabaseURL, defaults.DatabaseURL)
	mergeString(&result.Addr, defaults.Addr)

	// Numeric fields: use default if zero
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	mergeInt(&result.MaxTokens, defaults.MaxTokens)
	mergeInt(&result.ProbeTimeoutSeconds, defaults.ProbeTimeoutSeconds)
	mergeInt(&result.GenerateTimeoutSeconds, defaults.GenerateTimeoutSeconds)
	mergeInt(&result.PDFLoadTimeoutSeconds, defaults.PDFLoadTimeoutSeconds)
	mergeInt(&result.BatchLimit, defaults.BatchLimit)

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func mergeString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func mergeInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

// LLMConfig builds the generation backend configuration, starting from the
// provider defaults and applying every field that is set.
func (c *Config) LLMConfig() (*llm.Config, error) {
	cfg, err := llm.ConfigFor(c.Provider)
	if err != nil {
		return nil, err
	}
	if c.Model != "" {
		cfg.Model = c.Model
	}
	if c.OllamaBaseURL != "" && cfg.Provider == llm.ProviderOllama {
		cfg.BaseURL = c.OllamaBaseURL
	}
	if c.Temperature > 0 {
		cfg.Temperature = c.Temperature
	}
	if c.MaxTokens > 0 {
		cfg.MaxTokens = c.MaxTokens
	}
	if c.ProbeTimeoutSeconds > 0 {
		cfg.ProbeTimeout = time.Duration(c.ProbeTimeoutSeconds) * time.Second
	}
	if c.GenerateTimeoutSeconds > 0 {
		cfg.GenerateTimeout = time.Duration(c.GenerateTimeoutSeconds) * time.Second
	}
	return cfg, nil
}

// RequireAPIKey returns an error when the provider needs an API key and none is set
func (c *Config) RequireAPIKey() error {
	if (c.Provider == "" || c.Provider == string(llm.ProviderGemini)) && c.APIKey == "" {
		return fmt.Errorf("API key is required for gemini: set %s, api_key in the config file, or --api-key", EnvGeminiAPIKey)
	}
	return nil
}

// PDFOptions returns the document renderer options
func (c *Config) PDFOptions() pdf.Options {
	return pdf.Options{
		ChromePath:  c.ChromePath,
		LoadTimeout: time.Duration(c.PDFLoadTimeoutSeconds) * time.Second,
		Verbose:     c.Verbose,
	}
}

// ListenAddr returns the configured HTTP address or DefaultAddr
func (c *Config) ListenAddr() string {
	if c.Addr == "" {
		return DefaultAddr
	}
	return c.Addr
}
