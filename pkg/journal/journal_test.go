package journal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadsight/roadsync/pkg/route"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestRecordFormats(t *testing.T) {
	var buf bytes.Buffer
	j := New(&buf, "run-1")
	j.now = fixedClock

	j.Record(route.Outcome{
		Kind: route.OutcomeCreated,
		Line: 2,
		Name: "r-main-street-2",
	})
	j.Record(route.Outcome{
		Kind:   route.OutcomeRejected,
		Line:   3,
		Reason: route.ReasonMalformedCoordinate,
		Detail: `origin "abc": expected "lat,lon"`,
	})
	j.Record(route.Outcome{
		Kind:   route.OutcomeSkipped,
		Line:   4,
		Name:   "r-4",
		Reason: route.ReasonCapReached,
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, `[2025-06-01 12:00:00] run=run-1 line=2 outcome=created route="r-main-street-2"`, lines[0])
	assert.Contains(t, lines[1], "outcome=rejected")
	assert.Contains(t, lines[1], "reason=malformed_coordinate")
	assert.Contains(t, lines[2], "reason=cap_reached")
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	j := New(&buf, "run-1")
	j.now = fixedClock

	j.Summary(2, 1, 1, 3)

	assert.Contains(t, buf.String(), "finished created=2 rejected=1 failed=1 skipped=3")
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0644))

	j := Open(path, "run-2")
	j.Start("input.csv")
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "existing\n"))
	assert.Contains(t, string(data), "run=run-2 started")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteFailureFallsBack(t *testing.T) {
	var fallback bytes.Buffer
	j := New(failingWriter{}, "run-3")
	j.now = fixedClock
	j.fallback = &fallback

	j.Record(route.Outcome{Kind: route.OutcomeCreated, Line: 2, Name: "r-2"})
	j.Record(route.Outcome{Kind: route.OutcomeFailed, Line: 3, Name: "r-3", Reason: route.ReasonUnknown})

	lines := strings.Split(strings.TrimSpace(fallback.String()), "\n")
	assert.Len(t, lines, 2, "records land on the fallback writer")
}

func TestOpenUnwritablePathFallsBack(t *testing.T) {
	var fallback bytes.Buffer
	j := Open(filepath.Join(t.TempDir(), "missing", "run.log"), "run-4")
	j.fallback = &fallback

	j.Start("input.csv")
	assert.Contains(t, fallback.String(), "run=run-4 started")
}
