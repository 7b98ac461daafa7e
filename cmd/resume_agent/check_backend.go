package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkBackendCmd = &cobra.Command{
	Use:   "check-backend",
	Short: "Probe the generation backend",
	Long:  "Checks that the configured Gemini or Ollama backend answers. Exits non-zero when it does not.",
	RunE:  runCheckBackend,
}

var checkBackendSettings settingsFlags

func init() {
	checkBackendSettings.register(checkBackendCmd)
	rootCmd.AddCommand(checkBackendCmd)
}

func runCheckBackend(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := checkBackendSettings.resolve(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	availability := client.CheckAvailability(ctx)
	if err := availability.Unavailable(client.Model()); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Backend available: model=%s response_time=%v\n", client.Model(), availability.ResponseTime)
	return nil
}
