package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"postgen/pkg/config"
	"postgen/pkg/hook"
	"postgen/pkg/journal"
)

var (
	configPath  string
	projectDir  string
	journalPath string
	configVars  []string
)

var rootCmd = &cobra.Command{
	Use:   "postgen",
	Short: "Finish setting up a freshly generated project",
	Long: `Post-generation hook for the project template.

Initializes a git repository, writes the LICENSE file and prints the next
steps. Every step is best effort: failures are reported and the command
still exits successfully.

Examples:
  postgen
  postgen --config answers.yaml
  postgen --var use_github=y --var github_username=octo
  postgen --journal ~/.postgen/journal.db`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir, err := filepath.Abs(projectDir)
		if err != nil {
			return fmt.Errorf("failed to resolve project directory: %w", err)
		}

		opts := hook.Options{Dir: dir, Out: cmd.OutOrStdout()}

		if journalPath != "" {
			if withinDir(dir, journalPath) {
				log.WithField("journal", journalPath).
					Warn("journal disabled: it must live outside the project directory")
			} else if j, err := journal.Open(journalPath); err != nil {
				log.WithError(err).Warn("journal disabled")
			} else {
				defer j.Close()
				opts.Recorder = j
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		summary := hook.New(*cfg, opts).Run(ctx)
		if n := summary.Failures(); n > 0 {
			log.Debugf("%d step(s) did not complete", n)
		}
		return nil
	},
}

// withinDir reports whether path resolves to dir or somewhere below it.
// A path that cannot be resolved counts as inside.
func withinDir(dir, path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return true
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	vars, err := config.ParseVars(configVars)
	if err != nil {
		return nil, err
	}

	return cfg.WithVars(vars)
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath(), "Resolved template variables (YAML)")
	rootCmd.Flags().StringVarP(&projectDir, "dir", "C", ".", "Project directory")
	rootCmd.Flags().StringArrayVar(&configVars, "var", []string{}, "Template variable override (key=value, repeatable)")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "Record runs in this SQLite database (must be outside the project directory)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
