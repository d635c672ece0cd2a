package supervisor

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
)

// ChildHandle is the ownership record for the spawned web server. Only the
// supervisor may signal or wait on the child.
type ChildHandle struct {
	PID      int
	LockPath string
}

// ChildManager launches, kills, and cleans up after the web server child
// process. The lock file is created by the server itself while running; the
// manager only checks its existence and removes it.
type ChildManager struct {
	binary   string
	args     []string
	lockPath string
}

func NewChildManager(binary string, args []string, lockPath string) *ChildManager {
	return &ChildManager{
		binary:   binary,
		args:     args,
		lockPath: lockPath,
	}
}

// Start spawns the web server. It fails fast when the lock file already
// exists: presence alone means another instance is running, the PID inside is
// not verified.
func (cm *ChildManager) Start() (*ChildHandle, error) {
	if _, err := os.Stat(cm.lockPath); err == nil {
		return nil, fmt.Errorf("lock file %s exists: web server already running", cm.lockPath)
	}

	cmd := exec.Command(cm.binary, cm.args...)
	cmd.SysProcAttr = childSysProcAttr()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start web server %s: %w", cm.binary, err)
	}

	// Reap the child when it exits so a kill never leaves a zombie behind.
	go cmd.Wait()

	return &ChildHandle{PID: cmd.Process.Pid, LockPath: cm.lockPath}, nil
}

// Stop kills the child unconditionally. The server holds no state worth a
// graceful-shutdown handshake.
func (cm *ChildManager) Stop(handle *ChildHandle) {
	if handle == nil {
		return
	}
	if err := syscall.Kill(handle.PID, syscall.SIGKILL); err != nil {
		slog.Debug("Kill failed, web server already gone", "pid", handle.PID, "error", err)
	}
}

// Cleanup removes the lock file. Absence is tolerated silently: the server
// may have removed it on its own, or a prior partial cleanup got there first.
func (cm *ChildManager) Cleanup() {
	if err := os.Remove(cm.lockPath); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove lock file", "path", cm.lockPath, "error", err)
	}
}
