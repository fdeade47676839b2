// Package cli implements the shimgen command tree. shimgen creates and
// manages shim executables: each shim is a copy of the shim binary next
// to a sidecar file describing the target program it launches.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kiennq/scoop-better-shimexe/internal/config"
	"github.com/kiennq/scoop-better-shimexe/pkg/logger"
)

// GlobalFlags are the flags shared by every subcommand.
type GlobalFlags struct {
	ConfigPath string
	ShimDir    string
	Verbose    bool
	Quiet      bool
}

var globalFlags GlobalFlags

type contextKey struct{}

// cliContext carries resolved configuration to the subcommands.
type cliContext struct {
	cfg     *config.Config
	shimDir string
}

// NewRootCmd assembles the shimgen command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shimgen",
		Short: "Generate and manage shim executables",
		Long: `shimgen creates lightweight launcher shims. A shim is a small
executable that reads a sidecar configuration file next to itself,
launches the real target program with the configured arguments and
environment, and relays the target's exit code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}

			configPath := globalFlags.ConfigPath
			if configPath == "" {
				var err error
				configPath, err = config.DefaultConfigPath()
				if err != nil {
					return err
				}
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logLevel := cfg.Log.Level
			if globalFlags.Verbose {
				logLevel = "debug"
			}
			if globalFlags.Quiet {
				logLevel = "error"
			}

			// Auto format: human output on a terminal, JSON when
			// redirected.
			format := cfg.Log.Format
			if format == "" || format == "auto" {
				format = "json"
				if term.IsTerminal(int(os.Stderr.Fd())) {
					format = "console"
				}
			}

			if err := logger.Init(logger.LogConfig{
				Level:  logLevel,
				Format: format,
				File:   cfg.Log.File,
			}); err != nil {
				return err
			}

			shimDir := globalFlags.ShimDir
			if shimDir == "" {
				shimDir = cfg.ShimDir
			}
			if shimDir == "" {
				shimDir, err = config.DefaultShimDir()
				if err != nil {
					return err
				}
			}
			shimDir, err = config.ExpandPath(shimDir)
			if err != nil {
				return err
			}

			cliCtx := &cliContext{cfg: cfg, shimDir: shimDir}
			cmd.SetContext(context.WithValue(cmd.Context(), contextKey{}, cliCtx))

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ShimDir, "dir", "d", "", "shim directory (overrides configuration)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "quiet mode")

	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewAddCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewInfoCmd())
	rootCmd.AddCommand(NewRemoveCmd())

	return rootCmd
}

// getCLIContext extracts the resolved context set by the root command.
func getCLIContext(cmd *cobra.Command) *cliContext {
	ctx := cmd.Context()
	if ctx == nil {
		return nil
	}
	cliCtx, ok := ctx.Value(contextKey{}).(*cliContext)
	if !ok {
		return nil
	}
	return cliCtx
}
