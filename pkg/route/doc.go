// Package route defines the roadsync domain model: coordinates, route
// creation requests, per-row outcomes, and the mapper that converts raw CSV
// rows into requests.
//
// The mapper is a pure function over a row and the configured coordinate
// layout. Malformed rows never abort a run: they produce a typed Rejection
// (malformed coordinate, missing column) and the pipeline moves on to the
// next row.
package route
