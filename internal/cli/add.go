package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kiennq/scoop-better-shimexe/internal/config"
	"github.com/kiennq/scoop-better-shimexe/internal/shimfile"
	"github.com/kiennq/scoop-better-shimexe/pkg/logger"
)

// AddOptions holds add command options.
type AddOptions struct {
	Target string
	Name   string
	Args   string
	Env    []string
	Force  bool
}

// NewAddCmd creates the add command.
func NewAddCmd() *cobra.Command {
	opts := &AddOptions{}

	cmd := &cobra.Command{
		Use:   "add <target>",
		Short: "Create a shim for a target executable",
		Long: `Create a shim that launches the given target executable.
The shim binary is copied into the shim directory and a sidecar file
describing the target is written next to it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Target = args[0]
			return RunAdd(getCLIContext(cmd), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "shim name (defaults to the target's base name)")
	cmd.Flags().StringVarP(&opts.Args, "args", "a", "", "arguments always passed to the target")
	cmd.Flags().StringArrayVarP(&opts.Env, "env", "e", nil, "environment override NAME=VALUE (repeatable)")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "overwrite an existing shim")

	return cmd
}

// RunAdd creates the shim executable and its sidecar.
func RunAdd(ctx *cliContext, opts *AddOptions) error {
	target, err := filepath.Abs(opts.Target)
	if err != nil {
		return fmt.Errorf("resolve target: %w", err)
	}
	if _, err := os.Stat(target); err != nil {
		fmt.Printf("Warning: target %s is not accessible: %v\n", target, err)
	}

	name := opts.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(target), filepath.Ext(target))
	}

	shimPath := filepath.Join(ctx.shimDir, executableName(name))
	if _, err := os.Stat(shimPath); err == nil && !opts.Force {
		return fmt.Errorf("shim already exists at %s (use --force to overwrite)", shimPath)
	}

	env, err := parseEnvOverrides(opts.Env)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(ctx.shimDir, 0755); err != nil {
		return fmt.Errorf("create shim directory: %w", err)
	}

	source, err := shimSource(ctx.cfg.ShimSource)
	if err != nil {
		return err
	}
	if err := copyExecutable(source, shimPath); err != nil {
		return fmt.Errorf("copy shim executable: %w", err)
	}

	sidecar, err := shimfile.SidecarPath(shimPath)
	if err != nil {
		return err
	}
	if err := shimfile.Write(sidecar, &shimfile.Config{
		TargetPath:   target,
		DeclaredArgs: opts.Args,
		Env:          env,
	}); err != nil {
		return err
	}

	logger.Debug().Str("shim", shimPath).Str("target", target).Msg("shim created")

	fmt.Printf("✓ Shim '%s' created\n", name)
	fmt.Printf("  Shim:    %s\n", shimPath)
	fmt.Printf("  Sidecar: %s\n", sidecar)
	fmt.Printf("  Target:  %s\n", target)
	if opts.Args != "" {
		fmt.Printf("  Args:    %s\n", opts.Args)
	}
	for _, v := range env {
		fmt.Printf("  Env:     %s=%s\n", v.Name, v.Value)
	}

	return nil
}

// executableName appends the platform executable suffix to a shim name.
func executableName(name string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(name, ".exe") {
		return name + ".exe"
	}
	return name
}

// shimSource resolves the shim binary to copy: the configured path, or
// the shim executable shipped next to shimgen itself.
func shimSource(configured string) (string, error) {
	if configured != "" {
		return config.ExpandPath(configured)
	}

	self, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate shimgen: %w", err)
	}
	source := filepath.Join(filepath.Dir(self), executableName("shim"))
	if _, err := os.Stat(source); err != nil {
		return "", fmt.Errorf("shim executable not found at %s (set shim_source in configuration): %w", source, err)
	}
	return source, nil
}

func parseEnvOverrides(pairs []string) ([]shimfile.EnvVar, error) {
	var env []shimfile.EnvVar
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid environment override %q, want NAME=VALUE", p)
		}
		env = append(env, shimfile.EnvVar{Name: name, Value: value})
	}
	return env, nil
}

func copyExecutable(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
