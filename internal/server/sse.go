package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSE event names
const (
	eventProgress = "progress"
	eventError    = "error"
	eventComplete = "complete"
)

// SSEWriter writes Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter sets the event-stream headers. It fails when w cannot flush.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends one event with a JSON payload
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event carrying the failure kind
func (s *SSEWriter) WriteError(kind, message string) {
	s.WriteEvent(eventError, map[string]string{"error": message, "kind": kind}) //nolint:errcheck
}

// WriteComplete sends the final event with the stored resume's ID
func (s *SSEWriter) WriteComplete(resumeID string, degraded []string) {
	s.WriteEvent(eventComplete, map[string]any{ //nolint:errcheck
		"resume_id":         resumeID,
		"degraded_sections": degraded,
	})
}
