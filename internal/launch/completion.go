package launch

// Completion selects how the shim finishes once the child is running.
type Completion int

const (
	// RelayExit waits for the child and adopts its exit code. Console
	// targets share the shim's console, so the shim stays alive until
	// they finish.
	RelayExit Completion = iota

	// DetachZero leaves the child running and exits 0 immediately.
	// Windowed targets are expected to run detached.
	DetachZero
)

// CompletionOf maps a launch result to its completion policy.
func CompletionOf(r *Result) Completion {
	if r.Windowed {
		return DetachZero
	}
	return RelayExit
}

func (c Completion) String() string {
	switch c {
	case RelayExit:
		return "relay-exit"
	case DetachZero:
		return "detach-zero"
	default:
		return "unknown"
	}
}
