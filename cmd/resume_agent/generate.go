package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-assist/internal/config"
	"github.com/jonathan/resume-assist/internal/generation"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate resumes for one or more target roles",
	Long: `Generates a resume per --role from a profile JSON file or a profile stored in the database,
then writes it in the requested format.

With a single role the output goes to --out (or stdout for text formats).
With several roles --out is a directory and each file is named after its role.`,
	RunE: runGenerate,
}

var (
	generateSettings settingsFlags
	generateProfile  string
	generateUserID   string
	generateRoles    []string
	generateExtra    string
	generateFormat   string
	generateOut      string
	generateSave     bool
)

func init() {
	generateSettings.register(generateCmd)
	generateCmd.Flags().StringVarP(&generateProfile, "profile", "p", "", "Path to profile JSON file (mutually exclusive with --user-id)")
	generateCmd.Flags().StringVarP(&generateUserID, "user-id", "u", "", "Load the profile stored for this user")
	generateCmd.Flags().StringSliceVarP(&generateRoles, "role", "r", nil, "Target role (repeatable)")
	generateCmd.Flags().StringVar(&generateExtra, "extra", "", "Additional requirements passed to the model")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", string(generation.FormatHTML), "Output format: "+formatList())
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output file, or directory when several roles are given")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "Store generated resumes in the database (requires --user-id)")

	_ = generateCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(generateCmd)
}

func formatList() string {
	names := make([]string, len(generation.Formats))
	for i, f := range generation.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	format, err := generation.ParseFormat(generateFormat)
	if err != nil {
		return err
	}
	roles := cleanRoles(generateRoles)
	if len(roles) == 0 {
		return fmt.Errorf("at least one non-empty --role is required")
	}
	if generateSave && generateUserID == "" {
		return fmt.Errorf("--save requires --user-id")
	}

	cfg, err := generateSettings.resolve(cmd)
	if err != nil {
		return err
	}
	doc, err := loadProfile(ctx, cfg, generateProfile, generateUserID)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	gen, err := newService(cfg, client)
	if err != nil {
		return err
	}

	req := generation.Request{ProfileDocument: doc, ExtraRequirements: generateExtra, UserID: generateUserID}
	var results []generation.Result
	if len(roles) == 1 {
		req.TargetRole = roles[0]
		results = []generation.Result{gen.GenerateResume(ctx, req)}
	} else {
		results = gen.GenerateBatch(ctx, req, roles)
	}

	if generateSave {
		if err := saveResults(ctx, cfg, results); err != nil {
			return err
		}
	}

	failed := 0
	for i, res := range results {
		if !res.Success {
			failed++
			fmt.Fprintf(os.Stderr, "Role %q failed (%s): %s\n", roles[i], res.ErrorKind, res.Error)
			continue
		}
		if len(res.Degraded) > 0 {
			fmt.Fprintf(os.Stderr, "Role %q: some sections did not fully parse: %s\n", roles[i], strings.Join(res.Degraded, ", "))
		}

		artifact, err := gen.Export(ctx, res.Resume, format)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Role %q: %s export failed (%s): %v\n", roles[i], format, generation.KindOf(err), err)
			continue
		}

		path := generateOut
		if len(roles) > 1 {
			path = filepath.Join(generateOut, outputName(roles[i], artifact.Extension))
		}
		if err := writeOutput(path, artifact.Data, isBinary(format)); err != nil {
			return err
		}
		if path != "" && path != "-" {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d resumes failed", failed, len(results))
	}
	return nil
}

// saveResults stores every successful record
func saveResults(ctx context.Context, cfg *config.Config, results []generation.Result) error {
	database, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	for _, res := range results {
		if !res.Success {
			continue
		}
		if err := database.SaveResume(ctx, res.Resume); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved resume %s (%s)\n", res.Resume.ID, res.Resume.Role)
	}
	return nil
}

// cleanRoles trims roles and drops empty and duplicate entries
func cleanRoles(roles []string) []string {
	seen := make(map[string]bool, len(roles))
	var out []string
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" || seen[strings.ToLower(r)] {
			continue
		}
		seen[strings.ToLower(r)] = true
		out = append(out, r)
	}
	return out
}
