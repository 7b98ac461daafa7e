package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-assist/internal/observability"
	"github.com/jonathan/resume-assist/internal/profile"
	"github.com/jonathan/resume-assist/internal/strategy"
	"github.com/jonathan/resume-assist/internal/types"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Show the normalized profile and resume strategy",
	Long:  "Normalizes a profile document the way generation does and prints it with the selected strategy as JSON.",
	RunE:  runNormalize,
}

var (
	normalizeSettings settingsFlags
	normalizeProfile  string
	normalizeUserID   string
)

func init() {
	normalizeSettings.register(normalizeCmd)
	normalizeCmd.Flags().StringVarP(&normalizeProfile, "profile", "p", "", "Path to profile JSON file (mutually exclusive with --user-id)")
	normalizeCmd.Flags().StringVarP(&normalizeUserID, "user-id", "u", "", "Load the profile stored for this user")
	rootCmd.AddCommand(normalizeCmd)
}

// normalizeOutput is the JSON printed by normalize
type normalizeOutput struct {
	Profile  *types.NormalizedProfile `json:"profile"`
	Strategy types.ResumeStrategy     `json:"strategy"`
}

func runNormalize(cmd *cobra.Command, _ []string) error {
	cfg, err := normalizeSettings.resolve(cmd)
	if err != nil {
		return err
	}
	doc, err := loadProfile(context.Background(), cfg, normalizeProfile, normalizeUserID)
	if err != nil {
		return err
	}

	p := profile.Normalize(doc)
	strat := strategy.Select(p)
	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintProfile(p)
		printer.PrintStrategy(strat)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(normalizeOutput{Profile: p, Strategy: strat})
}
