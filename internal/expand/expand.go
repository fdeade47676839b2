// Package expand implements the textual substitutions applied to sidecar
// configuration values: the shim-directory placeholder and %NAME%-style
// environment references.
package expand

import (
	"os"
	"strings"
)

// DirPlaceholder is the literal token that stands for the shim's own
// containing directory in configuration values.
const DirPlaceholder = "%~dp0"

// Dir replaces occurrences of DirPlaceholder in s with dir, scanning left
// to right. The scan resumes after each replacement, so replacement text
// is never expanded again.
func Dir(s, dir string) string {
	var b strings.Builder
	rest := s
	for {
		i := strings.Index(rest, DirPlaceholder)
		if i < 0 {
			if b.Len() == 0 {
				return s
			}
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:i])
		b.WriteString(dir)
		rest = rest[i+len(DirPlaceholder):]
	}
}

// Env expands %NAME% references in s against the process environment.
// Expansion is conservative: a name not present in the environment leaves
// the original token untouched, and %% is skipped without modification.
// The scan resumes after each replaced or skipped region, so a variable
// value containing % characters never triggers further substitution.
func Env(s string) string {
	var b strings.Builder
	rest := s
	for {
		start := strings.IndexByte(rest, '%')
		if start < 0 || start+1 >= len(rest) {
			break
		}
		end := strings.IndexByte(rest[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1

		name := rest[start+1 : end]
		if name == "" {
			// %% carries no reference; keep both delimiters.
			b.WriteString(rest[:end+1])
			rest = rest[end+1:]
			continue
		}

		value, ok := os.LookupEnv(name)
		if !ok {
			// Unresolved references stay verbatim.
			b.WriteString(rest[:end+1])
			rest = rest[end+1:]
			continue
		}

		b.WriteString(rest[:start])
		b.WriteString(value)
		rest = rest[end+1:]
	}
	if b.Len() == 0 {
		return s
	}
	b.WriteString(rest)
	return b.String()
}

// Directory returns the portion of exePath up to, but excluding, the
// final path separator. Both separator styles are recognized so sidecars
// written on either platform expand the same way.
func Directory(exePath string) string {
	i := strings.LastIndexAny(exePath, `\/`)
	if i < 0 {
		return exePath
	}
	return exePath[:i]
}
