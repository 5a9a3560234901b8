// Package audit implements the append-only plain-text log that records
// each significant relay event as a timestamped line.
package audit

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Log appends human-readable audit lines to a single file. Write
// failures are reported to the application log and swallowed; auditing
// must never take the relay down.
type Log struct {
	mu   sync.Mutex
	path string
	log  *slog.Logger
}

// New creates an audit log writing to the file at path. The file is
// created on first append.
func New(path string, log *slog.Logger) *Log {
	return &Log{
		path: path,
		log:  log.With("component", "audit"),
	}
}

// Append writes one "[timestamp] message" line, timestamped in UTC.
func (l *Log) Append(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("[%s] %s\n", time.Now().UTC().Format(time.RFC3339), message)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.log.Error("failed to open audit log", "path", l.path, "error", err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		l.log.Error("failed to write audit log", "path", l.path, "error", err)
	}
}

// Appendf formats a message and appends it.
func (l *Log) Appendf(format string, args ...any) {
	l.Append(fmt.Sprintf(format, args...))
}
