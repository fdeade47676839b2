//go:build linux

package launch

import "syscall"

func groupAttr() *syscall.SysProcAttr {
	// Own process group, and the kernel kills the child if the shim
	// dies without cleaning up.
	return &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGKILL,
	}
}
