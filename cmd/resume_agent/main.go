// Package main provides the resume_agent CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_agent",
	Short: "Generate tailored resumes from stored profiles",
	Long: `resume_agent turns a stored candidate profile into a resume for a target role
using a Gemini or Ollama model, and exports it as HTML, plain text, LaTeX,
the standard ATS layout, DOCX or PDF.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
