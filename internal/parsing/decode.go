package parsing

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-assist/internal/llm"
)

// DecodeModelOutput strips code fences and surrounding chatter from raw model
// output and decodes the JSON object it contains. A top-level {"resume": {...}}
// wrapper is unwrapped. Output that is not a JSON object is a *ParseError.
func DecodeModelOutput(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ParseError{Message: "model output is empty"}
	}

	cleaned := llm.CleanJSONBlock(raw)
	var doc map[string]any
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, &ParseError{
			Message: "model output is not a JSON object",
			Excerpt: llm.Excerpt(raw),
			Cause:   err,
		}
	}
	if doc == nil {
		return nil, &ParseError{Message: "model output is null", Excerpt: llm.Excerpt(raw)}
	}

	if len(doc) == 1 {
		if inner, ok := doc["resume"].(map[string]any); ok {
			return inner, nil
		}
	}
	return doc, nil
}
