package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kiennq/scoop-better-shimexe/internal/shimfile"
	"github.com/kiennq/scoop-better-shimexe/pkg/logger"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <name>...",
		Aliases: []string{"rm"},
		Short:   "Remove one or more shims",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunRemove(getCLIContext(cmd), args)
		},
	}

	return cmd
}

// RunRemove deletes each named shim and its sidecar from the shim
// directory.
func RunRemove(ctx *cliContext, names []string) error {
	for _, name := range names {
		if err := removeShim(ctx.shimDir, name); err != nil {
			return err
		}
		fmt.Printf("✓ Shim '%s' removed\n", name)
	}
	return nil
}

func removeShim(dir, name string) error {
	shimPath := filepath.Join(dir, executableName(name))
	sidecar, err := shimfile.SidecarPath(shimPath)
	if err != nil {
		return err
	}

	// The shim executable and its sidecar are removed together; a
	// shim is considered present when either file exists.
	removed := false
	for _, p := range []string{shimPath, sidecar} {
		switch err := os.Remove(p); {
		case err == nil:
			removed = true
		case !os.IsNotExist(err):
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	if !removed {
		return fmt.Errorf("no shim named %q in %s", name, dir)
	}

	logger.Debug().Str("shim", shimPath).Msg("shim removed")
	return nil
}
