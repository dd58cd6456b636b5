package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eldrige/skillsassess/internal/api"
	"github.com/eldrige/skillsassess/internal/app"
	"github.com/eldrige/skillsassess/internal/auth"
)

var rootCmd = &cobra.Command{
	Use:   "skillsassess",
	Short: "Skill assessment platform client",
	Long:  "SkillsAssess is a terminal client for taking skill assessments, tracking scores, and getting personalized skill recommendations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Backend base URL (overrides SKILLSASSESS_API_URL env var)")
	rootCmd.PersistentFlags().String("credentials", "", "Path to the credentials file (overrides SKILLSASSESS_CREDENTIALS env var)")
	rootCmd.PersistentFlags().String("token", "", "Bearer token to use instead of the credentials file")
	rootCmd.Flags().Duration("budget", 0, "Answering time per assessment (default 10m)")
	rootCmd.Flags().String("debug-log", "", "Append backend call logs to this file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// resolveConfig builds the client config from flags and environment.
func resolveConfig(cmd *cobra.Command) (api.Config, error) {
	cfg := api.ConfigFromEnv()
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.BaseURL = u
	}
	if err := cfg.Validate(); err != nil {
		return api.Config{}, err
	}
	return cfg, nil
}

// resolveCredentials loads the credential file using the --credentials
// flag first, then the default lookup. Not being signed in is not an
// error; the app degrades to anonymous browsing.
func resolveCredentials(cmd *cobra.Command) (*auth.Credentials, error) {
	if tok, _ := cmd.Flags().GetString("token"); tok != "" {
		return &auth.Credentials{BearerToken: tok}, nil
	}
	if p, _ := cmd.Flags().GetString("credentials"); p != "" {
		return auth.Load(p)
	}
	path, err := auth.DefaultPath()
	if err != nil {
		return nil, err
	}
	return auth.Load(path)
}

// runApp wires the backend client and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}

	creds, err := resolveCredentials(cmd)
	if err != nil && err != auth.ErrNotSignedIn {
		return fmt.Errorf("load credentials: %w", err)
	}
	if creds == nil {
		fmt.Fprintln(os.Stderr, "Not signed in: history and submissions will be unavailable.")
	}

	var tokens auth.TokenSource
	if creds != nil {
		tokens = creds
	}

	var svc api.Service = api.NewClient(cfg, tokens)
	if logPath, _ := cmd.Flags().GetString("debug-log"); logPath != "" {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		svc = api.WithLogging(svc, f)
	}

	budget, _ := cmd.Flags().GetDuration("budget")

	return app.Run(app.Options{
		Service: svc,
		Creds:   creds,
		Budget:  budget,
	})
}
