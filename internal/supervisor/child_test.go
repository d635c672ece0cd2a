package supervisor

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildStartFailsWhenLockPresent(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "view.lock")
	require.NoError(t, os.WriteFile(lockPath, []byte("12345\n"), 0o644))

	manager := NewChildManager("/bin/sleep", []string{"60"}, lockPath)

	handle, err := manager.Start()
	assert.Nil(t, handle)
	assert.ErrorContains(t, err, "already running")
}

func TestChildStartFailsWhenBinaryMissing(t *testing.T) {
	dir := t.TempDir()
	manager := NewChildManager(filepath.Join(dir, "no-such-binary"), nil, filepath.Join(dir, "view.lock"))

	handle, err := manager.Start()
	assert.Nil(t, handle)
	assert.Error(t, err)
}

func TestChildStartStopKillsProcess(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "view.lock")
	manager := NewChildManager("/bin/sleep", []string{"60"}, lockPath)

	handle, err := manager.Start()
	require.NoError(t, err)
	require.Greater(t, handle.PID, 0)

	manager.Stop(handle)

	// The reaper goroutine needs a moment before the PID disappears.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if syscall.Kill(handle.PID, 0) != nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("process %d still alive after Stop", handle.PID)
}

func TestChildStopNilHandle(t *testing.T) {
	manager := NewChildManager("/bin/sleep", nil, filepath.Join(t.TempDir(), "view.lock"))

	// Must not panic when there is nothing to stop.
	manager.Stop(nil)
}

func TestChildCleanupRemovesLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "view.lock")
	require.NoError(t, os.WriteFile(lockPath, []byte("12345\n"), 0o644))

	manager := NewChildManager("/bin/sleep", nil, lockPath)
	manager.Cleanup()

	_, err := os.Stat(lockPath)
	assert.True(t, os.IsNotExist(err))
}

func TestChildCleanupToleratesAbsentLock(t *testing.T) {
	manager := NewChildManager("/bin/sleep", nil, filepath.Join(t.TempDir(), "view.lock"))

	// Already absent is not an error; calling twice must also be fine.
	manager.Cleanup()
	manager.Cleanup()
}
