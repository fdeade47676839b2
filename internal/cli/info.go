package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kiennq/scoop-better-shimexe/internal/cmdline"
	"github.com/kiennq/scoop-better-shimexe/internal/launch"
	"github.com/kiennq/scoop-better-shimexe/internal/shimfile"
)

// InfoReport is the full description of one shim.
type InfoReport struct {
	Name    string   `json:"name"`
	Shim    string   `json:"shim"`
	Sidecar string   `json:"sidecar"`
	Target  string   `json:"target"`
	Kind    string   `json:"kind"`
	Args    string   `json:"args,omitempty"`
	Env     []string `json:"env,omitempty"`
}

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "info <name>",
		Short: "Show the resolved configuration of a shim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunInfo(getCLIContext(cmd), args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}

// RunInfo prints what a shim would launch, including whether the
// target looks like a GUI or a console program.
func RunInfo(ctx *cliContext, name string, jsonOutput bool) error {
	shimPath := filepath.Join(ctx.shimDir, executableName(name))

	sidecar, err := shimfile.SidecarPath(shimPath)
	if err != nil {
		return err
	}

	cfg, err := shimfile.Load(shimPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no shim named %q in %s", name, ctx.shimDir)
		}
		return err
	}

	report := InfoReport{
		Name:    name,
		Shim:    shimPath,
		Sidecar: sidecar,
		Target:  cmdline.Unquote(cfg.TargetPath),
		Args:    cfg.DeclaredArgs,
	}
	report.Kind = classifyTarget(report.Target)
	for _, v := range cfg.Env {
		report.Env = append(report.Env, v.Name+"="+v.Value)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	shimNote := ""
	if _, err := os.Stat(shimPath); err != nil {
		shimNote = " (missing)"
	}

	fmt.Printf("Shim:    %s%s\n", shimPath, shimNote)
	fmt.Printf("Sidecar: %s\n", sidecar)
	fmt.Printf("Target:  %s (%s)\n", report.Target, report.Kind)
	if report.Args != "" {
		fmt.Printf("Args:    %s\n", report.Args)
	}
	if len(report.Env) > 0 {
		fmt.Println("Env:")
		for _, v := range report.Env {
			fmt.Printf("  %s\n", v)
		}
	}

	return nil
}

// classifyTarget reuses the launcher's executable inspection so info
// reports the same verdict the shim itself would reach.
func classifyTarget(path string) string {
	windowed, err := launch.NewSystem().Classify(path)
	switch {
	case err != nil:
		return "unknown"
	case windowed:
		return "gui"
	default:
		return "console"
	}
}
