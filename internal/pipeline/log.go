// Copyright Electionwire Media, 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// RunLogger writes timestamped lines to a console writer and, when
// configured, appends the same lines to a log file so cron runs leave a
// trail.
type RunLogger struct {
	out  io.Writer
	file *os.File
}

// NewRunLogger creates a logger teeing to out and logFile. An empty
// logFile means console only. The log file's directory is created when
// missing.
func NewRunLogger(out io.Writer, logFile string) (*RunLogger, error) {
	l := &RunLogger{out: out}
	if out == nil {
		l.out = io.Discard
	}
	if logFile == "" {
		return l, nil
	}

	if dir := filepath.Dir(logFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	l.file = f
	return l, nil
}

// Printf writes one timestamped line.
func (l *RunLogger) Printf(format string, args ...any) {
	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), fmt.Sprintf(format, args...))
	io.WriteString(l.out, line)
	if l.file != nil {
		io.WriteString(l.file, line)
	}
}

// Close releases the log file, if any.
func (l *RunLogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
