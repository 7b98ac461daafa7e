package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"
)

// maxResponseBytes bounds how much of an Ollama response body is read
const maxResponseBytes = 10 * 1024 * 1024

// ollamaRequest is the body of POST /api/generate
type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the non-streaming /api/generate envelope
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error"`
}

// OllamaClient implements Client for a self-hosted Ollama server
type OllamaClient struct {
	baseURL    string
	config     *Config
	httpClient *http.Client
}

// NewOllamaClient creates a client for the server at config.BaseURL.
// A nil httpClient uses a default client; per-call timeouts come from config.
func NewOllamaClient(config *Config, httpClient *http.Client) *OllamaClient {
	if config == nil {
		config = DefaultOllamaConfig()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OllamaClient{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		config:     config,
		httpClient: httpClient,
	}
}

// CheckAvailability issues GET /api/tags and classifies any failure
func (c *OllamaClient) CheckAvailability(ctx context.Context) Availability {
	ctx, cancel := context.WithTimeout(ctx, c.config.probeTimeout())
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return Availability{Error: fmt.Sprintf("Invalid Ollama URL %q: %v", c.baseURL, err)}
	}

	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return Availability{Error: c.classifyProbeError(err), ResponseTime: elapsed}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Availability{
			Error:        fmt.Sprintf("Ollama at %s returned HTTP %d", c.baseURL, resp.StatusCode),
			ResponseTime: elapsed,
		}
	}
	return Availability{IsAvailable: true, ResponseTime: elapsed}
}

func (c *OllamaClient) classifyProbeError(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Sprintf("Ollama at %s did not respond within %s (timeout)", c.baseURL, c.config.probeTimeout())
	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Sprintf("Cannot connect to Ollama at %s: connection refused. Is `ollama serve` running?", c.baseURL)
	default:
		return fmt.Sprintf("Cannot connect to Ollama at %s: %v", c.baseURL, err)
	}
}

// Generate issues a non-streaming POST /api/generate
func (c *OllamaClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.generateTimeout())
	defer cancel()

	body := ollamaRequest{
		Model:  c.config.Model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
		},
	}
	if opts.JSON {
		body.Format = "json"
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode Ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create Ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &GenerationFailedError{Reason: fmt.Sprintf("no response within %s", c.config.generateTimeout()), Cause: err}
		}
		return "", &GenerationFailedError{Reason: "Ollama request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &GenerationFailedError{Reason: "failed to read Ollama response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &GenerationFailedError{
			Reason:  fmt.Sprintf("Ollama returned HTTP %d", resp.StatusCode),
			Excerpt: Excerpt(string(raw)),
		}
	}

	var envelope ollamaResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", &GenerationFailedError{
			Reason:  "malformed Ollama response envelope",
			Excerpt: Excerpt(string(raw)),
			Cause:   err,
		}
	}
	if envelope.Error != "" {
		return "", &GenerationFailedError{Reason: "Ollama error: " + envelope.Error}
	}
	if strings.TrimSpace(envelope.Response) == "" {
		return "", &GenerationFailedError{Reason: "empty response from model"}
	}

	log.Printf("[OLLAMA] %s responded in %s", c.config.Model, time.Since(start).Round(time.Millisecond))
	return envelope.Response, nil
}

// Model returns the configured model name
func (c *OllamaClient) Model() string {
	return c.config.Model
}

// Close is a no-op; the HTTP client holds no dedicated resources
func (c *OllamaClient) Close() error {
	return nil
}
