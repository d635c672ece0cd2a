// Package policy renders and writes the web server's access-control artifact.
package policy

import (
	"fmt"
	"os"
)

// Writer renders a deny-by-default access policy that allow-lists a set of
// host addresses, and writes it to the path the web server reads it from.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Render produces an Apache-style access block. The server denies every
// client except the space-separated addresses given, which are the host's own
// addresses: the debug UI is reachable only from the machine itself.
func Render(addresses string) string {
	return fmt.Sprintf(`# Generated by collectd-view. Do not edit; rewritten on every run.
Order deny,allow
Deny from all
Allow from %s
`, addresses)
}

// Write renders the policy for addresses and writes it to the configured
// path, overwriting any prior content so a stale allow-list never survives a
// restart. The file must be in place before the web server starts.
func (w *Writer) Write(addresses string) error {
	if err := os.WriteFile(w.path, []byte(Render(addresses)), 0o644); err != nil {
		return fmt.Errorf("failed to write access policy %s: %w", w.path, err)
	}
	return nil
}
