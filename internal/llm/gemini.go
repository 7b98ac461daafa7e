package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultGeminiConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Generate sends the prompt to the configured Gemini model
func (c *GeminiClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.generateTimeout())
	defer cancel()

	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	if opts.JSON {
		model.ResponseMIMEType = "application/json"
	}

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &GenerationFailedError{Reason: fmt.Sprintf("no response within %s", c.config.generateTimeout()), Cause: err}
		}
		return "", &GenerationFailedError{Reason: "Gemini request failed", Cause: err}
	}
	log.Printf("[GEMINI] %s responded in %s", c.config.Model, time.Since(start).Round(time.Millisecond))

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", &GenerationFailedError{Reason: err.Error()}
	}
	return text, nil
}

// CheckAvailability looks up the configured model's metadata
func (c *GeminiClient) CheckAvailability(ctx context.Context) Availability {
	ctx, cancel := context.WithTimeout(ctx, c.config.probeTimeout())
	defer cancel()

	start := time.Now()
	_, err := c.client.GenerativeModel(c.config.Model).Info(ctx)
	elapsed := time.Since(start)
	if err != nil {
		msg := fmt.Sprintf("Cannot reach Gemini model %s: %v", c.config.Model, err)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			msg = fmt.Sprintf("Gemini did not respond within %s", c.config.probeTimeout())
		}
		return Availability{Error: msg, ResponseTime: elapsed}
	}
	return Availability{IsAvailable: true, ResponseTime: elapsed}
}

// Model returns the configured model name
func (c *GeminiClient) Model() string {
	return c.config.Model
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}
