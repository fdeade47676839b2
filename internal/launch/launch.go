// Package launch starts the target program and binds the shim's
// lifecycle to it.
//
// Process creation, privilege elevation, executable classification,
// console ownership, signal interception and containment are platform
// capabilities reached through the System interface, so the launch
// policy itself stays portable and testable against a fake.
package launch

import "github.com/kiennq/scoop-better-shimexe/internal/shimfile"

// Target describes one program to launch.
type Target struct {
	// CommandLine is the fully assembled command line handed to direct
	// process creation: quoted target path, declared arguments, then
	// the caller's forwarded arguments.
	CommandLine string

	// Path is the unquoted target path, used for classification and as
	// the file argument of an elevated shell launch.
	Path string

	// Params is the argument text without the target path, used as the
	// parameter string of an elevated shell launch.
	Params string

	// Env holds environment overrides applied before launch, in order.
	// Later duplicates overwrite earlier ones.
	Env []shimfile.EnvVar
}

// Result is the outcome of a successful launch.
type Result struct {
	// Process is the running child.
	Process Process

	// Thread is the child's primary thread, present only for direct
	// creation. Elevated shell launches yield no thread handle.
	Thread Thread

	// Windowed records whether the target was classified as a GUI
	// program. Windowed targets run detached and are not waited on.
	Windowed bool
}

// Process is a started child process.
type Process interface {
	// Wait blocks until the process exits and returns its exit code.
	Wait() (int, error)

	// Close releases the process handle without affecting the process.
	Close() error
}

// Thread is the primary thread of a directly created child, started
// suspended.
type Thread interface {
	Resume() error
	Close() error
}

// Containment is a process-grouping object that tears down its members
// when it is destroyed, so an abruptly killed shim does not leave an
// orphaned child behind. Closing it after the child has exited is
// harmless.
type Containment interface {
	Assign(Process) error
	Close() error
}

// System is the platform capability surface the launch policy runs on.
// Production code uses the implementation returned by NewSystem; tests
// substitute a fake.
type System interface {
	// StartSuspended creates a process from a full command line with
	// inherited standard handles, suspended until its primary thread
	// is resumed.
	StartSuspended(cmdline string) (Process, Thread, error)

	// StartElevated launches file with params through the platform
	// shell, which may prompt for elevation. No thread handle is
	// produced and the program opens in its own window.
	StartElevated(file, params string) (Process, error)

	// ElevationRequired reports whether err from StartSuspended means
	// the target needs elevated privileges.
	ElevationRequired(err error) bool

	// Classify reports whether the executable at path is a windowed
	// (GUI) program rather than a console one.
	Classify(path string) (windowed bool, err error)

	// ReleaseConsole detaches the shim from its console so a windowed
	// target does not keep a console window alive.
	ReleaseConsole() error

	// SuppressInterrupts makes the shim ignore interactive termination
	// signals so they reach the child instead.
	SuppressInterrupts() error

	// NewContainment creates a containment group with kill-on-close
	// semantics.
	NewContainment() (Containment, error)

	// SetEnv sets one variable in the shim's own environment, which the
	// child inherits.
	SetEnv(name, value string) error
}
