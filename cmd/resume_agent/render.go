package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-assist/internal/generation"
	"github.com/jonathan/resume-assist/internal/parsing"
	"github.com/jonathan/resume-assist/internal/profile"
	"github.com/jonathan/resume-assist/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a generated resume in another format",
	Long: `Renders a stored resume record, a GeneratedResume JSON document or raw model output
without calling the generation backend.

A profile (--profile) fills header fields and standard-format sections the resume lacks.`,
	RunE: runRender,
}

var (
	renderSettings settingsFlags
	renderIn       string
	renderProfile  string
	renderFormat   string
	renderOut      string
)

func init() {
	renderSettings.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderIn, "in", "i", "", "Resume record, GeneratedResume JSON or raw model output file")
	renderCmd.Flags().StringVarP(&renderProfile, "profile", "p", "", "Profile JSON file used to fill missing header and standard-format fields")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", string(generation.FormatHTML), "Output format: "+formatList())
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (stdout when omitted, text formats only)")

	_ = renderCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	format, err := generation.ParseFormat(renderFormat)
	if err != nil {
		return err
	}
	cfg, err := renderSettings.resolve(cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(renderIn)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", renderIn, err)
	}
	rec, err := decodeResumeInput(data)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", renderIn, err)
	}
	if renderProfile != "" {
		var doc map[string]any
		if err := readJSONFile(renderProfile, &doc); err != nil {
			return err
		}
		rec.ProfileSnapshot = profile.Normalize(doc)
	}

	gen, err := newService(cfg, nil)
	if err != nil {
		return err
	}
	artifact, err := gen.Export(context.Background(), rec, format)
	if err != nil {
		return fmt.Errorf("%s export failed: %w", format, err)
	}
	return writeOutput(renderOut, artifact.Data, isBinary(format))
}

// decodeResumeInput accepts a ResumeRecord (recognized by its "resume" key)
// or anything the response parser understands.
func decodeResumeInput(data []byte) (*types.ResumeRecord, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err == nil {
		if raw, ok := probe["resume"]; ok && len(probe) > 1 && strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
			var rec types.ResumeRecord
			if err := json.Unmarshal(data, &rec); err != nil {
				return nil, err
			}
			rec.Resume = parsing.Sanitize(rec.Resume)
			return &rec, nil
		}
	}

	doc, err := parsing.DecodeModelOutput(string(data))
	if err != nil {
		return nil, err
	}
	return &types.ResumeRecord{Resume: parsing.Parse(doc).Resume}, nil
}
