package supervisor

import (
	"strings"

	"github.com/mtlynch/collectd-view/internal/procinfo"
)

// RootPID is the identifier of the system's initial process. A chain member
// whose parent is RootPID has been reparented to init, which only happens
// after the process that used to own it exited.
const RootPID = 1

// maxAncestryDepth bounds the walk. Each step strictly ascends toward pid 1,
// so any real chain is far shorter than this.
const maxAncestryDepth = 512

// SessionMonitor decides whether the SSH session that owns this process has
// ended, by walking the process ancestry through an Inspector.
type SessionMonitor struct {
	inspector procinfo.Inspector
}

func NewSessionMonitor(inspector procinfo.Inspector) *SessionMonitor {
	return &SessionMonitor{inspector: inspector}
}

// SessionClosed walks the ancestor chain starting at pid and reports whether
// the owning remote session has closed.
//
// An SSH connection creates a process chain rooted in a per-connection sshd
// instance. When that instance exits, its surviving descendants are
// reparented to init. So the walk ascends until it either reaches an sshd
// ancestor (session still connected) or finds a link whose parent is already
// init (connection torn down).
//
// Every inconclusive observation returns false: a vanished process, a record
// with no name, a record with no parent. In a restricted namespace the chain
// legitimately ends at the visibility boundary, and killing the server on a
// transient read failure would be worse than one extra poll cycle.
func (m *SessionMonitor) SessionClosed(pid int32) bool {
	for depth := 0; depth < maxAncestryDepth; depth++ {
		rec, ok := m.inspector.Lookup(pid)
		if !ok {
			return false
		}
		if rec.Name == "" {
			return false
		}
		if rec.PPID < 0 {
			return false
		}

		if strings.Contains(rec.Name, "sshd") || rec.PPID == RootPID {
			// Reparent-to-init is the authoritative closure signal. An sshd
			// ancestor that still has a non-init parent means the
			// connection's daemon instance is alive.
			return rec.PPID == RootPID
		}

		pid = rec.PPID
	}
	return false
}
