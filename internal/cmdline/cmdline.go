// Package cmdline assembles the final command line handed to process
// creation and recovers the caller's own argument tail.
package cmdline

import "strings"

// QuoteIfNeeded wraps s in double quotes when it contains a space and
// does not already begin with one.
func QuoteIfNeeded(s string) string {
	if strings.Contains(s, " ") && !strings.HasPrefix(s, `"`) {
		return `"` + s + `"`
	}
	return s
}

// Unquote strips one balanced pair of surrounding double quotes.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// Assemble concatenates the target path, the configuration's declared
// arguments and the caller's raw argument tail into one command line.
// The pieces are adjacent raw text intended for direct handoff to
// process creation; no further escaping is applied.
func Assemble(path, declaredArgs, callerTail string) string {
	return path + " " + declaredArgs + callerTail
}

// Tail returns the remainder of the raw command line after the token
// naming the executable itself. The token's quoting is accounted for so
// the caller's arguments keep the exact quoting the OS delivered.
func Tail(full, argv0 string) string {
	skip := len(argv0)
	if strings.HasPrefix(full, `"`) {
		skip += 2
	}
	if skip >= len(full) {
		return ""
	}
	return full[skip:]
}
