// Package shimfile reads and writes the sidecar configuration that
// pairs with each shim executable. The sidecar is a line-oriented
// Unicode text file colocated with the shim by naming convention
// (app.exe -> app.shim). Each meaningful line is "key = value"; the
// keys path and args describe the target program, and any other key is
// an environment override applied to the child before launch.
package shimfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kiennq/scoop-better-shimexe/internal/cmdline"
	"github.com/kiennq/scoop-better-shimexe/internal/expand"
)

// Fixed maximum length of the shim executable's own path. Sidecar
// derivation refuses longer paths instead of truncating them.
const maxExePath = 260

// separator splits a sidecar line into key and raw value. Only the
// first occurrence counts; lines without it are ignored.
const separator = " = "

// EnvVar is one environment override from the sidecar, applied to the
// shim's own environment (and therefore inherited by the child) in file
// order. Duplicates are preserved; the later one wins when applied.
type EnvVar struct {
	Name  string
	Value string
}

// Config is the parsed sidecar, immutable once loaded.
type Config struct {
	// TargetPath is the program to launch, expanded and quoted if it
	// contains a space. Empty when the sidecar had no usable path line.
	TargetPath string

	// DeclaredArgs is the sidecar's argument text with the directory
	// placeholder expanded. Empty when absent.
	DeclaredArgs string

	// Env holds the environment overrides in file order.
	Env []EnvVar
}

// SidecarPath derives the sidecar location from the shim executable's
// own path by replacing the filename extension with .shim; extension-less
// executables gain the suffix. Paths at or beyond the fixed maximum are
// rejected.
func SidecarPath(exePath string) (string, error) {
	if len(exePath) >= maxExePath {
		return "", fmt.Errorf("%w: %d bytes", ErrPathTooLong, len(exePath))
	}

	base := exePath[strings.LastIndexAny(exePath, `\/`)+1:]
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return exePath[:len(exePath)-len(base)+i] + ".shim", nil
	}
	return exePath + ".shim", nil
}

// Load locates and parses the sidecar for the shim at exePath.
// The file is decoded Unicode-aware: UTF-8 by default, with UTF-8 and
// UTF-16 byte order marks honored.
func Load(exePath string) (*Config, error) {
	sidecar, err := SidecarPath(exePath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(sidecar)
	if err != nil {
		return nil, fmt.Errorf("open sidecar: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f, expand.Directory(exePath))
	if err != nil {
		return nil, fmt.Errorf("read sidecar %s: %w", sidecar, err)
	}
	return cfg, nil
}

// Parse reads sidecar text from r, expanding values against shimDir
// (the shim executable's containing directory).
func Parse(r io.Reader, shimDir string) (*Config, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	sc := bufio.NewScanner(transform.NewReader(r, dec))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	cfg := &Config{}
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")

		i := strings.Index(line, separator)
		if i < 0 {
			continue
		}
		key, raw := line[:i], line[i+len(separator):]

		switch key {
		case "":
			// tolerate stray separator lines
		case "path":
			v := expand.Dir(expand.Env(raw), shimDir)
			cfg.TargetPath = cmdline.QuoteIfNeeded(v)
		case "args":
			cfg.DeclaredArgs = expand.Dir(raw, shimDir)
		default:
			cfg.Env = append(cfg.Env, EnvVar{Name: key, Value: expand.Env(raw)})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}
