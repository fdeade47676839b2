package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kiennq/scoop-better-shimexe/internal/config"
)

// InitOptions holds init command options.
type InitOptions struct {
	Force bool
}

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize shimgen configuration",
		Long:  "Initialize the shimgen configuration directory and the shim directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunInit(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "overwrite existing configuration")

	return cmd
}

// RunInit writes a default configuration file and creates the shim
// directory.
func RunInit(opts *InitOptions) error {
	configDir, err := config.DefaultConfigDir()
	if err != nil {
		return fmt.Errorf("get config dir: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
	}

	shimDir, err := config.DefaultShimDir()
	if err != nil {
		return fmt.Errorf("get shim dir: %w", err)
	}

	for _, dir := range []string{configDir, shimDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	defaultConfig := map[string]any{
		"shim_dir":    shimDir,
		"shim_source": "",
		"log": map[string]any{
			"level":  "info",
			"format": "auto",
		},
	}

	data, err := yaml.Marshal(defaultConfig)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Initialized shimgen at %s\n", configDir)
	fmt.Printf("  Config: %s\n", configPath)
	fmt.Printf("  Shims: %s\n", shimDir)

	return nil
}
