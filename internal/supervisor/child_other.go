//go:build !linux

package supervisor

import "syscall"

// childSysProcAttr is a no-op off Linux. There is no PR_SET_PDEATHSIG
// equivalent on macOS; the poll loop's explicit Stop is the only kill path.
func childSysProcAttr() *syscall.SysProcAttr {
	return nil
}
