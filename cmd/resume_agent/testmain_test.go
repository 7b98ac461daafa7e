package main

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// TestMain loads .env when present so binary tests see the same settings as the CLI
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	os.Exit(m.Run())
}
