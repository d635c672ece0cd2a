package procinfo

import (
	"github.com/shirou/gopsutil/v3/process"
)

// SystemInspector reads live process records from the OS process table.
type SystemInspector struct{}

func NewSystemInspector() *SystemInspector {
	return &SystemInspector{}
}

// Lookup reads the process-status record for pid. In a restricted execution
// context (e.g. a container namespace) PIDs outside our own descendant tree
// are simply not visible; that surfaces here as ok=false, same as an exited
// process.
func (si *SystemInspector) Lookup(pid int32) (Record, bool) {
	proc, err := process.NewProcess(pid)
	if err != nil {
		return Record{}, false
	}

	rec := Record{PID: pid, PPID: -1}

	if name, err := proc.Name(); err == nil {
		rec.Name = name
	}
	if ppid, err := proc.Ppid(); err == nil {
		rec.PPID = ppid
	}

	return rec, true
}
