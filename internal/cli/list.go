package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kiennq/scoop-better-shimexe/internal/cmdline"
	"github.com/kiennq/scoop-better-shimexe/internal/shimfile"
)

// ShimEntry describes one generated shim as shown by list and info.
type ShimEntry struct {
	Name   string   `json:"name"`
	Target string   `json:"target"`
	Args   string   `json:"args,omitempty"`
	Env    []string `json:"env,omitempty"`
}

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the shims in the shim directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunList(getCLIContext(cmd), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}

// RunList prints every shim found in the shim directory.
func RunList(ctx *cliContext, jsonOutput bool) error {
	shims, err := collectShims(ctx.shimDir)
	if err != nil {
		return fmt.Errorf("read shim directory: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(shims)
	}

	if len(shims) == 0 {
		fmt.Println("No shims found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTARGET\tARGS")
	fmt.Fprintln(w, "----\t------\t----")

	for _, s := range shims {
		args := s.Args
		if args == "" {
			args = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.Target, args)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d shims\n", len(shims))

	return nil
}

// collectShims reads every sidecar in dir. A missing directory yields
// an empty list; an unreadable sidecar is reported and skipped.
func collectShims(dir string) ([]ShimEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var shims []ShimEntry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".shim") {
			continue
		}

		entry, err := readShimEntry(dir, e.Name())
		if err != nil {
			fmt.Printf("Warning: skipping %s: %v\n", e.Name(), err)
			continue
		}
		shims = append(shims, entry)
	}
	return shims, nil
}

func readShimEntry(dir, sidecarName string) (ShimEntry, error) {
	f, err := os.Open(filepath.Join(dir, sidecarName))
	if err != nil {
		return ShimEntry{}, err
	}
	defer f.Close()

	cfg, err := shimfile.Parse(f, dir)
	if err != nil {
		return ShimEntry{}, err
	}

	entry := ShimEntry{
		Name:   strings.TrimSuffix(sidecarName, ".shim"),
		Target: cmdline.Unquote(cfg.TargetPath),
		Args:   cfg.DeclaredArgs,
	}
	for _, v := range cfg.Env {
		entry.Env = append(entry.Env, v.Name+"="+v.Value)
	}
	return entry, nil
}
