// Package procinfo provides read-only snapshots of OS processes.
//
// A Record is a point-in-time view of one process. Absence of a process is a
// normal outcome (it exited between polls), reported as ok=false rather than
// an error.
package procinfo

// Record is a read-only snapshot of one OS process. Name is empty and PPID is
// negative when the respective field could not be determined.
type Record struct {
	PID  int32
	PPID int32
	Name string
}

// Inspector looks up process records by PID. Implementations must treat a
// missing process as (Record{}, false), never as a panic or error.
type Inspector interface {
	Lookup(pid int32) (Record, bool)
}
