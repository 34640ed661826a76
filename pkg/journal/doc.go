// Package journal records one line per attempted row to an append-only text
// file, the run's audit trail.
//
// Journal writes are best-effort and side-channel only: a write failure is
// reported to stderr and the run keeps going. The final summary line makes
// the created/rejected/failed/skipped counts of a run derivable by scanning
// the file.
package journal
