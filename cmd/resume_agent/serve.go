package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-assist/internal/server"
)

var serveSettings settingsFlags
var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that stores profiles, generates resumes and serves their renditions.`,
	RunE:  runServe,
}

func init() {
	serveSettings.register(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (defaults to ADDR or :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := serveSettings.resolve(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = serveAddr
	}

	database, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	client, err := newClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	gen, err := newService(cfg, client)
	if err != nil {
		return err
	}

	srv := server.New(gen, database, server.Config{
		Addr:            cfg.ListenAddr(),
		GenerateTimeout: seconds(cfg.GenerateTimeoutSeconds),
	})
	return srv.Start()
}
