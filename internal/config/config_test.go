package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-assist/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"provider": "ollama",
		"model": "qwen2.5",
		"ollama_base_url": "http://ollama:11434",
		"max_tokens": 2048,
		"batch_limit": 2,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, "http://ollama:11434", cfg.OllamaBaseURL)
	assert.Equal(t, 2048, cfg.MaxTokens)
	assert.Equal(t, 2, cfg.BatchLimit)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvProvider, "ollama")
	t.Setenv(EnvModel, "")
	t.Setenv(EnvOllamaModel, "mistral")
	t.Setenv(EnvOllamaBaseURL, "http://gpu-box:11434")
	t.Setenv(EnvDatabaseURL, "postgres://localhost/resumes")
	t.Setenv(EnvChromePath, "/usr/bin/chromium")
	t.Setenv(EnvGeminiAPIKey, "")
	t.Setenv(EnvAddr, "")

	cfg := FromEnv()

	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "mistral", cfg.Model)
	assert.Equal(t, "http://gpu-box:11434", cfg.OllamaBaseURL)
	assert.Equal(t, "postgres://localhost/resumes", cfg.DatabaseURL)
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromePath)
	assert.Equal(t, DefaultAddr, cfg.ListenAddr())
}

func TestFromEnv_OllamaModelIgnoredForGemini(t *testing.T) {
	t.Setenv(EnvProvider, "gemini")
	t.Setenv(EnvModel, "")
	t.Setenv(EnvOllamaModel, "mistral")

	assert.Empty(t, FromEnv().Model)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty", Config{}, ""},
		{"ollama", Config{Provider: "ollama", Temperature: 0.7}, ""},
		{"unknown provider", Config{Provider: "openai"}, "unknown provider"},
		{"temperature", Config{Temperature: 2.5}, "temperature"},
		{"max tokens", Config{MaxTokens: -1}, "max_tokens"},
		{"timeouts", Config{GenerateTimeoutSeconds: -5}, "timeouts"},
		{"batch limit", Config{BatchLimit: -1}, "batch_limit"},
		{"template", Config{Template: "/nonexistent/resume.tex"}, "template file not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{Provider: "ollama", MaxTokens: 1024}
	defaults := Config{
		Provider:    "gemini",
		Model:       "llama3.1",
		DatabaseURL: "postgres://db",
		MaxTokens:   4096,
		BatchLimit:  4,
		Temperature: 0.5,
		Verbose:     true,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "ollama", merged.Provider)
	assert.Equal(t, "llama3.1", merged.Model)
	assert.Equal(t, "postgres://db", merged.DatabaseURL)
	assert.Equal(t, 1024, merged.MaxTokens)
	assert.Equal(t, 4, merged.BatchLimit)
	assert.Equal(t, float32(0.5), merged.Temperature)
	assert.False(t, merged.Verbose)
	assert.Equal(t, 0, cfg.BatchLimit, "receiver is not modified")
}

func TestLLMConfig(t *testing.T) {
	cfg := Config{
		Provider:               "ollama",
		Model:                  "qwen2.5",
		OllamaBaseURL:          "http://gpu-box:11434",
		MaxTokens:              1000,
		ProbeTimeoutSeconds:    2,
		GenerateTimeoutSeconds: 90,
	}

	lc, err := cfg.LLMConfig()

	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOllama, lc.Provider)
	assert.Equal(t, "qwen2.5", lc.Model)
	assert.Equal(t, "http://gpu-box:11434", lc.BaseURL)
	assert.Equal(t, 1000, lc.MaxTokens)
	assert.Equal(t, float32(0.3), lc.Temperature)
	assert.Equal(t, 2*time.Second, lc.ProbeTimeout)
	assert.Equal(t, 90*time.Second, lc.GenerateTimeout)
}

func TestLLMConfig_GeminiDefaults(t *testing.T) {
	lc, err := (&Config{OllamaBaseURL: "http://ignored"}).LLMConfig()

	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, lc.Provider)
	assert.Empty(t, lc.BaseURL)

	_, err = (&Config{Provider: "bogus"}).LLMConfig()
	assert.Error(t, err)
}

func TestRequireAPIKey(t *testing.T) {
	assert.Error(t, (&Config{}).RequireAPIKey())
	assert.NoError(t, (&Config{APIKey: "k"}).RequireAPIKey())
	assert.NoError(t, (&Config{Provider: "ollama"}).RequireAPIKey())
}

func TestPDFOptions(t *testing.T) {
	opts := (&Config{ChromePath: "/bin/chrome", PDFLoadTimeoutSeconds: 10, Verbose: true}).PDFOptions()

	assert.Equal(t, "/bin/chrome", opts.ChromePath)
	assert.Equal(t, 10*time.Second, opts.LoadTimeout)
	assert.True(t, opts.Verbose)
}
