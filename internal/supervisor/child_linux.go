//go:build linux

package supervisor

import "syscall"

// childSysProcAttr asks the kernel to SIGKILL the child if the supervisor
// itself dies without reaching teardown. Backstop only; the normal path is
// the poll loop's explicit Stop.
func childSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Pdeathsig: syscall.SIGKILL,
	}
}
