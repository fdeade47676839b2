package shimfile

import (
	"fmt"
	"os"
	"strings"
)

// Write renders cfg in sidecar form and writes it to path. Values are
// written verbatim; expansion and quoting happen at load time.
func Write(path string, cfg *Config) error {
	var b strings.Builder
	if cfg.TargetPath != "" {
		fmt.Fprintf(&b, "path%s%s\n", separator, cfg.TargetPath)
	}
	if cfg.DeclaredArgs != "" {
		fmt.Fprintf(&b, "args%s%s\n", separator, cfg.DeclaredArgs)
	}
	for _, v := range cfg.Env {
		fmt.Fprintf(&b, "%s%s%s\n", v.Name, separator, v.Value)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return nil
}
