// Package commands wires the diarymd CLI.
package commands

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/diarymd-dev/diarymd/internal/buildinfo"
	"github.com/diarymd-dev/diarymd/internal/config"
	"github.com/diarymd-dev/diarymd/internal/logger"
)

// app carries state shared by all subcommands, resolved once before any
// command runs.
type app struct {
	configPath string
	verbose    bool

	cfg *config.Config
	log *logger.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "diarymd",
		Short:   "Markdown diary digests and bank reconciliation",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Resolve(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			level := log.WarnLevel
			if a.verbose {
				level = log.DebugLevel
			}
			a.log = logger.NewWithLevel(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newDigestCommand(a))
	rootCmd.AddCommand(newUpdateCommand(a))
	rootCmd.AddCommand(newReconcileCommand(a))

	return rootCmd
}

// diaryPaths resolves the effective diary list: explicit flags win over
// the configured defaults.
func (a *app) diaryPaths(flagPaths []string) ([]string, error) {
	if len(flagPaths) > 0 {
		return flagPaths, nil
	}
	if len(a.cfg.Diaries) > 0 {
		return a.cfg.Diaries, nil
	}
	return nil, fmt.Errorf("no diary files: pass --diary or set diaries in the config")
}
