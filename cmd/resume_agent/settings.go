package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-assist/internal/config"
	"github.com/jonathan/resume-assist/internal/db"
	"github.com/jonathan/resume-assist/internal/generation"
	"github.com/jonathan/resume-assist/internal/llm"
	"github.com/jonathan/resume-assist/internal/observability"
	"github.com/jonathan/resume-assist/internal/pdf"
)

// settingsFlags are shared by every command that talks to the backend
type settingsFlags struct {
	configPath  string
	provider    string
	model       string
	apiKey      string
	databaseURL string
	template    string
	verbose     bool
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.Flags().StringVar(&f.provider, "provider", "", "Generation backend: gemini or ollama (defaults to LLM_PROVIDER or gemini)")
	cmd.Flags().StringVar(&f.model, "model", "", "Model name override")
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	cmd.Flags().StringVar(&f.databaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "Custom LaTeX template for tex output")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed debug information")
}

// resolve layers flags over the config file over the environment, then validates
func (f *settingsFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if f.verbose {
			_, _ = fmt.Fprintf(os.Stderr, "Loaded config from: %s\n", f.configPath)
		}
	}

	changed := cmd.Flags().Changed
	if changed("provider") {
		cfg.Provider = f.provider
	}
	if changed("model") {
		cfg.Model = f.model
	}
	if changed("api-key") {
		cfg.APIKey = f.apiKey
	}
	if changed("db-url") {
		cfg.DatabaseURL = f.databaseURL
	}
	if changed("template") {
		cfg.Template = f.template
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newClient builds the configured generation backend client
func newClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		return nil, err
	}
	return llm.NewClient(ctx, llmCfg, cfg.APIKey)
}

// newService wires a generation service. client may be nil for export-only use.
func newService(cfg *config.Config, client llm.Client) (*generation.Service, error) {
	opts := generation.Options{
		BatchLimit:    cfg.BatchLimit,
		Verbose:       cfg.Verbose,
		LaTeXTemplate: cfg.Template,
	}
	if client != nil {
		llmCfg, err := cfg.LLMConfig()
		if err != nil {
			return nil, err
		}
		opts.Generate = llmCfg.Options()
	}
	if cfg.Verbose {
		opts.Printer = observability.NewPrinter(os.Stderr)
	}
	return generation.NewService(client, pdf.NewRenderer(cfg.PDFOptions()), opts), nil
}

// connectDB opens the document store, creating tables when missing
func connectDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("%s environment variable or --db-url flag is required", config.EnvDatabaseURL)
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// loadProfile reads the raw profile document from a file or from the store
func loadProfile(ctx context.Context, cfg *config.Config, path, userID string) (map[string]any, error) {
	switch {
	case path != "" && userID != "":
		return nil, fmt.Errorf("--profile and --user-id are mutually exclusive; provide only one")
	case path != "":
		var doc map[string]any
		if err := readJSONFile(path, &doc); err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, fmt.Errorf("profile file %s does not contain a JSON object", path)
		}
		return doc, nil
	case userID != "":
		database, err := connectDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		defer database.Close()
		doc, err := database.GetProfileDocument(ctx, userID)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, fmt.Errorf("no profile stored for user %s", userID)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("either --profile or --user-id must be provided")
	}
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeOutput writes to path, or to stdout when path is empty or "-".
// Binary formats refuse to go to a terminal.
func writeOutput(path string, data []byte, binary bool) error {
	if path == "" || path == "-" {
		if binary {
			return fmt.Errorf("binary output needs --out")
		}
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func isBinary(f generation.Format) bool {
	return f == generation.FormatDOCX || f == generation.FormatPDF
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// outputName names a per-role file, e.g. resume-data-analyst.pdf
func outputName(role, ext string) string {
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(role), "-"), "-")
	if slug == "" {
		slug = "untitled"
	}
	return "resume-" + slug + "." + ext
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
