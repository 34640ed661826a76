/*
Copyright © 2025 Roadsight Authors
SPDX-License-Identifier: Apache-2.0
*/
package route

import (
	"fmt"
	"math"
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"latitude" yaml:"latitude"`
	Lon float64 `json:"longitude" yaml:"longitude"`
}

// Validate checks that the coordinate is finite and within latitude
// [-90,90] and longitude [-180,180].
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return fmt.Errorf("latitude %v is not a finite number", c.Lat)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return fmt.Errorf("longitude %v is not a finite number", c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90,90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180,180]", c.Lon)
	}
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%v,%v)", c.Lat, c.Lon)
}

// Request is a single route-creation request derived from one CSV row.
type Request struct {
	Origin      Coordinate
	Destination Coordinate

	// Name is the selected route ID sent to the API.
	Name string

	// Line is the 1-based CSV line the request was derived from.
	Line int
}

// OutcomeKind classifies the result of attempting one row.
type OutcomeKind string

const (
	// OutcomeCreated means the external API accepted the route.
	OutcomeCreated OutcomeKind = "created"
	// OutcomeRejected means the row never became a valid request.
	OutcomeRejected OutcomeKind = "rejected"
	// OutcomeFailed means the external API call did not succeed.
	OutcomeFailed OutcomeKind = "failed"
	// OutcomeSkipped means the route cap was already reached.
	OutcomeSkipped OutcomeKind = "skipped"
)

// Row-level rejection reasons.
const (
	ReasonMalformedCoordinate = "malformed_coordinate"
	ReasonMissingColumn       = "missing_column"
)

// Submission failure reasons, classified from the external API response.
const (
	ReasonRateLimited    = "rate_limited"
	ReasonInvalidRequest = "invalid_request"
	ReasonAuthFailure    = "auth_failure"
	ReasonTimeout        = "timeout"
	ReasonUnknown        = "unknown"
)

// Skip reasons.
const (
	// ReasonCapReached marks rows skipped after the cap was hit.
	ReasonCapReached = "cap_reached"
	// ReasonDryRun marks rows mapped but not submitted in a dry run.
	ReasonDryRun = "dry_run"
)

// ReasonUnreadableRow marks rows the CSV reader could not parse at all.
const ReasonUnreadableRow = "unreadable_row"

// Outcome is the result of attempting one row. It is created by the
// submitter, consumed once by the journal, and not retained.
type Outcome struct {
	Kind OutcomeKind

	// Line is the 1-based CSV line that produced this outcome.
	Line int

	// Name is the selected route ID, empty for rejected rows.
	Name string

	// RouteID is the identifier returned by the API for created routes.
	RouteID string

	// Reason qualifies non-created outcomes.
	Reason string

	// Detail carries human-readable failure detail.
	Detail string
}
