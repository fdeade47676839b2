//go:build !windows

package launch

import (
	"errors"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/mattn/go-shellwords"
)

type portableSystem struct{}

// NewSystem returns the portable capability surface. It approximates
// the Windows semantics: the command line is split into argv before
// exec, suspension and console release are no-ops, elevation is never
// reported, and containment rides on the process group set at spawn.
func NewSystem() System {
	return portableSystem{}
}

func (portableSystem) StartSuspended(cmdline string) (Process, Thread, error) {
	argv, err := shellwords.Parse(cmdline)
	if err != nil {
		return nil, nil, err
	}
	if len(argv) == 0 {
		return nil, nil, errors.New("empty command line")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = groupAttr()
	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}
	// The child is already running; suspension has no portable
	// equivalent, so the thread handle only satisfies the resume step.
	return &portableProcess{cmd: cmd}, noopThread{}, nil
}

func (portableSystem) StartElevated(file, params string) (Process, error) {
	return nil, errors.New("elevated launch is not supported on this platform")
}

func (portableSystem) ElevationRequired(err error) bool {
	return false
}

func (portableSystem) Classify(path string) (bool, error) {
	return classifyExecutable(path)
}

func (portableSystem) ReleaseConsole() error {
	return nil
}

func (portableSystem) SuppressInterrupts() error {
	signal.Ignore(os.Interrupt, syscall.SIGQUIT, syscall.SIGHUP, syscall.SIGTERM)
	return nil
}

func (portableSystem) NewContainment() (Containment, error) {
	return groupContainment{}, nil
}

func (portableSystem) SetEnv(name, value string) error {
	return os.Setenv(name, value)
}

type portableProcess struct {
	cmd *exec.Cmd
}

func (p *portableProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, err
	}
	return 0, nil
}

func (p *portableProcess) Close() error {
	return nil
}

type noopThread struct{}

func (noopThread) Resume() error { return nil }
func (noopThread) Close() error  { return nil }

// groupContainment is satisfied at spawn time: the child runs in its
// own process group and, where the platform supports it, dies with the
// shim. There is nothing to assign or release afterwards.
type groupContainment struct{}

func (groupContainment) Assign(Process) error { return nil }
func (groupContainment) Close() error         { return nil }
