/*
Copyright © 2025 Roadsight Authors
SPDX-License-Identifier: Apache-2.0
*/
package journal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/roadsight/roadsync/pkg/route"
)

const timeLayout = "2006-01-02 15:04:05"

// Journal appends run records to a text destination. The zero value is not
// usable; create one with Open or New.
type Journal struct {
	out      io.Writer
	closer   io.Closer
	fallback io.Writer
	runID    string
	now      func() time.Time

	// degraded is set after the first failed write so the fallback notice
	// is reported once, not per row.
	degraded bool
}

// Open creates a Journal appending to the file at path. If the file cannot
// be opened the journal degrades to the fallback writer (stderr) instead of
// failing: logging never aborts a run.
func Open(path, runID string) *Journal {
	j := New(nil, runID)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Error("failed to open log file, falling back to stderr", "error", err, "path", path)
		j.degraded = true
		return j
	}

	j.out = f
	j.closer = f
	return j
}

// New creates a Journal writing to out, mainly for tests. A nil out leaves
// the journal writing to the fallback only.
func New(out io.Writer, runID string) *Journal {
	return &Journal{
		out:      out,
		fallback: os.Stderr,
		runID:    runID,
		now:      time.Now,
	}
}

// Start records the beginning of a run.
func (j *Journal) Start(input string) {
	j.write(fmt.Sprintf("run=%s started input=%q", j.runID, input))
}

// Record appends one line for an attempted row.
func (j *Journal) Record(o route.Outcome) {
	line := fmt.Sprintf("run=%s line=%d outcome=%s", j.runID, o.Line, o.Kind)
	if o.Name != "" {
		line += fmt.Sprintf(" route=%q", o.Name)
	}
	if o.RouteID != "" && o.RouteID != o.Name {
		line += fmt.Sprintf(" id=%q", o.RouteID)
	}
	if o.Reason != "" {
		line += fmt.Sprintf(" reason=%s", o.Reason)
	}
	if o.Detail != "" {
		line += fmt.Sprintf(" detail=%q", o.Detail)
	}
	j.write(line)
}

// Summary records the final counts for the run.
func (j *Journal) Summary(created, rejected, failed, skipped int) {
	j.write(fmt.Sprintf("run=%s finished created=%d rejected=%d failed=%d skipped=%d",
		j.runID, created, rejected, failed, skipped))
}

// Close releases the underlying file handle, if any.
func (j *Journal) Close() error {
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}

func (j *Journal) write(msg string) {
	entry := fmt.Sprintf("[%s] %s\n", j.now().Format(timeLayout), msg)

	if j.out != nil {
		if _, err := io.WriteString(j.out, entry); err == nil {
			return
		} else if !j.degraded {
			j.degraded = true
			slog.Error("journal write failed, falling back to stderr", "error", err)
		}
	}

	fmt.Fprint(j.fallback, entry)
}
