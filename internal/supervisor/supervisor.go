// Package supervisor implements the session-bound lifecycle around the
// collectd debug web server: it starts the server, polls the process ancestry
// to detect the owning SSH session's death, and guarantees the server is
// killed and its lock file removed on every exit path.
package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mtlynch/collectd-view/internal/db"
	"github.com/mtlynch/collectd-view/internal/netaddr"
	"github.com/mtlynch/collectd-view/internal/policy"
	"github.com/mtlynch/collectd-view/internal/procinfo"
)

// Config carries every fixed path and interval the supervisor uses. All
// values are explicit so tests can point them at temporary locations.
type Config struct {
	PolicyPath   string
	LockPath     string
	ServerBinary string
	ServerArgs   []string
	PollInterval time.Duration
}

// childController is what the loop needs from the child process manager.
type childController interface {
	Start() (*ChildHandle, error)
	Stop(*ChildHandle)
	Cleanup()
}

// Supervisor ties resolver, policy writer, child manager, and session monitor
// together into the INIT / RUNNING / TERMINATING lifecycle.
type Supervisor struct {
	cfg      Config
	resolver *netaddr.Resolver
	writer   *policy.Writer
	child    childController
	monitor  *SessionMonitor
	database *db.DB
	ownPID   int32
	logger   *slog.Logger
}

// New creates a supervisor. The inspector is injected so tests can substitute
// synthetic process tables; everything else is derived from cfg.
func New(cfg Config, inspector procinfo.Inspector) *Supervisor {
	return &Supervisor{
		cfg:      cfg,
		resolver: netaddr.NewResolver(),
		writer:   policy.NewWriter(cfg.PolicyPath),
		child:    NewChildManager(cfg.ServerBinary, cfg.ServerArgs, cfg.LockPath),
		monitor:  NewSessionMonitor(inspector),
		ownPID:   int32(os.Getpid()),
		logger:   slog.Default(),
	}
}

// SetDatabase attaches an event-log database. Optional; without it events go
// to the logger only.
func (s *Supervisor) SetDatabase(database *db.DB) {
	s.database = database
}

// Run executes the full lifecycle and returns nil on every clean detection
// path. A non-nil error means INIT failed and no child is left running.
func (s *Supervisor) Run(ctx context.Context) error {
	// INIT: policy first, then child. The policy file must be durable before
	// the server can possibly read it.
	addresses := s.resolver.Resolve()
	s.logger.Info("Resolved host addresses", "addresses", addresses)

	if err := s.writer.Write(addresses); err != nil {
		s.logEvent("error", err.Error())
		return err
	}

	handle, err := s.child.Start()
	if err != nil {
		s.logEvent("error", err.Error())
		return err
	}
	s.logger.Info("Web server started", "pid", handle.PID, "policy", s.cfg.PolicyPath)
	s.logEvent("start", fmt.Sprintf("web server started, pid %d", handle.PID))

	// Termination is driven solely by the poll loop. A HUP forwarded by the
	// disconnecting terminal must not race our walk over a process tree that
	// is still tearing down.
	signal.Ignore(syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)

	// TERMINATING: Stop and Cleanup run together on every way out of the
	// loop below, including a panic.
	defer func() {
		s.child.Stop(handle)
		s.child.Cleanup()
		s.logEvent("stop", fmt.Sprintf("web server pid %d killed, lock file removed", handle.PID))
		s.logger.Info("Web server terminated", "pid", handle.PID)
	}()

	lockRemoved := s.watchLock(ctx)

	// RUNNING
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Supervisor context cancelled, shutting down")
			return nil

		case <-lockRemoved:
			s.logger.Info("Lock file removed, web server exited on its own")
			return nil

		case <-ticker.C:
			if _, ok := s.monitor.inspector.Lookup(s.ownPID); !ok {
				// Our own record is gone; the supervising context has
				// disappeared. Anomalous but handled.
				s.logger.Info("Own process record unreadable, shutting down", "pid", s.ownPID)
				return nil
			}
			if s.monitor.SessionClosed(s.ownPID) {
				s.logger.Info("SSH session closed, shutting down")
				s.logEvent("session_closed", "owning SSH session ended")
				return nil
			}
		}
	}
}

// watchLock returns a channel that receives once when the lock file is
// removed, meaning the server exited by itself. Best effort: if the watcher
// cannot be created the channel stays silent and the poll loop remains the
// only detection path.
func (s *Supervisor) watchLock(ctx context.Context) <-chan struct{} {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Warn("Lock file watcher unavailable, relying on polling", "error", err)
		return nil
	}
	if err := watcher.Add(filepath.Dir(s.cfg.LockPath)); err != nil {
		s.logger.Warn("Cannot watch lock directory, relying on polling", "error", err)
		watcher.Close()
		return nil
	}

	removed := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name == s.cfg.LockPath && event.Op.Has(fsnotify.Remove) {
					removed <- struct{}{}
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return removed
}

func (s *Supervisor) logEvent(eventType, details string) {
	if s.database == nil {
		return
	}
	if err := s.database.LogSupervisorEvent(eventType, details); err != nil {
		s.logger.Warn("Failed to record supervisor event", "type", eventType, "error", err)
	}
}
