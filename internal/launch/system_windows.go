//go:build windows

package launch

import (
	"errors"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	shell32           = windows.NewLazySystemDLL("shell32.dll")
	kernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procShellExecute  = shell32.NewProc("ShellExecuteExW")
	procSetCtrlHandle = kernel32.NewProc("SetConsoleCtrlHandler")
	procFreeConsole   = kernel32.NewProc("FreeConsole")
)

const seeMaskNoCloseProcess = 0x00000040

// shellExecuteInfo mirrors SHELLEXECUTEINFOW. x/sys/windows does not
// wrap ShellExecuteExW, so the struct is declared here.
type shellExecuteInfo struct {
	cbSize       uint32
	mask         uint32
	hwnd         windows.Handle
	verb         *uint16
	file         *uint16
	parameters   *uint16
	directory    *uint16
	show         int32
	instApp      windows.Handle
	idList       uintptr
	class        *uint16
	keyClass     windows.Handle
	hotKey       uint32
	icon         windows.Handle
	process      windows.Handle
}

// ctrlHandler swallows interactive termination events so they reach the
// child through normal console signal delivery instead of killing the
// shim first.
var ctrlHandler = windows.NewCallback(func(ctrlType uint32) uintptr {
	switch ctrlType {
	case windows.CTRL_C_EVENT,
		windows.CTRL_BREAK_EVENT,
		windows.CTRL_CLOSE_EVENT,
		windows.CTRL_LOGOFF_EVENT,
		windows.CTRL_SHUTDOWN_EVENT:
		return 1
	}
	return 0
})

type winSystem struct{}

// NewSystem returns the Windows capability surface: suspended
// CreateProcess launches, ShellExecuteEx elevation fallback, job-object
// containment and console ctrl-handler suppression.
func NewSystem() System {
	return winSystem{}
}

func (winSystem) StartSuspended(cmdline string) (Process, Thread, error) {
	cmd, err := windows.UTF16PtrFromString(cmdline)
	if err != nil {
		return nil, nil, err
	}

	var si windows.StartupInfo
	var pi windows.ProcessInformation
	if err := windows.GetStartupInfo(&si); err != nil {
		return nil, nil, err
	}

	err = windows.CreateProcess(nil, cmd, nil, nil, true,
		windows.CREATE_SUSPENDED, nil, nil, &si, &pi)
	if err != nil {
		return nil, nil, err
	}
	return &winProcess{handle: pi.Process}, &winThread{handle: pi.Thread}, nil
}

func (winSystem) StartElevated(file, params string) (Process, error) {
	filePtr, err := windows.UTF16PtrFromString(file)
	if err != nil {
		return nil, err
	}
	paramsPtr, err := windows.UTF16PtrFromString(params)
	if err != nil {
		return nil, err
	}

	sei := shellExecuteInfo{
		mask:       seeMaskNoCloseProcess,
		file:       filePtr,
		parameters: paramsPtr,
		show:       windows.SW_SHOW,
	}
	sei.cbSize = uint32(unsafe.Sizeof(sei))

	ret, _, callErr := procShellExecute.Call(uintptr(unsafe.Pointer(&sei)))
	if ret == 0 {
		return nil, callErr
	}
	return &winProcess{handle: sei.process}, nil
}

func (winSystem) ElevationRequired(err error) bool {
	return errors.Is(err, windows.ERROR_ELEVATION_REQUIRED)
}

func (winSystem) Classify(path string) (bool, error) {
	return classifyExecutable(path)
}

func (winSystem) ReleaseConsole() error {
	ret, _, err := procFreeConsole.Call()
	if ret == 0 {
		return err
	}
	return nil
}

func (winSystem) SuppressInterrupts() error {
	ret, _, err := procSetCtrlHandle.Call(ctrlHandler, 1)
	if ret == 0 {
		return err
	}
	return nil
}

func (winSystem) NewContainment() (Containment, error) {
	job, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		return nil, err
	}

	// Kill the whole group when the job handle is closed, but let
	// children deliberately break away without that counting as an
	// error.
	info := windows.JOBOBJECT_EXTENDED_LIMIT_INFORMATION{
		BasicLimitInformation: windows.JOBOBJECT_BASIC_LIMIT_INFORMATION{
			LimitFlags: windows.JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE |
				windows.JOB_OBJECT_LIMIT_SILENT_BREAKAWAY_OK,
		},
	}
	_, err = windows.SetInformationJobObject(job,
		windows.JobObjectExtendedLimitInformation,
		uintptr(unsafe.Pointer(&info)), uint32(unsafe.Sizeof(info)))
	if err != nil {
		windows.CloseHandle(job)
		return nil, err
	}
	return &jobContainment{job: job}, nil
}

func (winSystem) SetEnv(name, value string) error {
	return os.Setenv(name, value)
}

type winProcess struct {
	handle windows.Handle
}

func (p *winProcess) Wait() (int, error) {
	if _, err := windows.WaitForSingleObject(p.handle, windows.INFINITE); err != nil {
		return 0, err
	}
	var code uint32
	if err := windows.GetExitCodeProcess(p.handle, &code); err != nil {
		return 0, err
	}
	return int(code), nil
}

func (p *winProcess) Close() error {
	return windows.CloseHandle(p.handle)
}

type winThread struct {
	handle windows.Handle
}

func (t *winThread) Resume() error {
	_, err := windows.ResumeThread(t.handle)
	return err
}

func (t *winThread) Close() error {
	return windows.CloseHandle(t.handle)
}

type jobContainment struct {
	job windows.Handle
}

func (c *jobContainment) Assign(p Process) error {
	wp, ok := p.(*winProcess)
	if !ok {
		return errors.New("process was not created by this system")
	}
	return windows.AssignProcessToJobObject(c.job, wp.handle)
}

// Close destroys the job object. With kill-on-close set this tears down
// any still-running members, so it must only happen once waiting is
// over.
func (c *jobContainment) Close() error {
	return windows.CloseHandle(c.job)
}
