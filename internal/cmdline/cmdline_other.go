//go:build !windows

package cmdline

import (
	"os"
	"strings"
)

// CallerArgs reconstructs the argument tail from os.Args. There is no
// raw command line to recover here, so each argument is re-quoted only
// when needed.
func CallerArgs() string {
	var b strings.Builder
	for _, arg := range os.Args[1:] {
		b.WriteString(" ")
		b.WriteString(QuoteIfNeeded(arg))
	}
	return b.String()
}
