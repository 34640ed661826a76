// Package runner drives a roadsync run: it walks the input rows in file
// order, maps each one to a route-creation request, submits it against the
// external API, and records every outcome in the journal.
//
// Processing is strictly sequential. A run holds exactly one piece of
// mutable state, the State counters, and the created count enforces the
// configured route cap deterministically. When the cap is reached the run
// keeps scanning: remaining valid rows are recorded as skipped and malformed
// rows are still reported, so the journal always covers the whole input.
//
// One bad row never stops a run. Only configuration errors, an unusable
// header, and cancellation end processing early.
package runner
