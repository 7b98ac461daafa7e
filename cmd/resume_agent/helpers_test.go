package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the built resume_agent binary, from RESUME_AGENT_BIN
// or bin/ at the repository root. Tests using it are skipped when it is missing.
func getBinaryPath(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := os.Getenv("RESUME_AGENT_BIN")
	if binaryPath == "" {
		binaryPath = filepath.Join("..", "..", "bin", "resume_agent")
	}
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resume_agent ./cmd/resume_agent'", binaryPath)
	}
	return binaryPath
}
