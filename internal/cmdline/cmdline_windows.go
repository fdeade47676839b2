//go:build windows

package cmdline

import (
	"os"

	"golang.org/x/sys/windows"
)

// CallerArgs returns the raw argument tail of the current process,
// exactly as the operating system delivered it. Re-joining os.Args would
// lose the caller's original quoting.
func CallerArgs() string {
	full := windows.UTF16PtrToString(windows.GetCommandLine())
	return Tail(full, os.Args[0])
}
