/*
Copyright © 2025 Roadsight Authors
SPDX-License-Identifier: Apache-2.0
*/
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultLogFile is the journal destination when log_file is not set.
	DefaultLogFile = "route_creator_log.txt"
	// DefaultRequestTimeout bounds a single route-creation call.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultRequestInterval paces consecutive route-creation calls.
	DefaultRequestInterval = 200 * time.Millisecond
)

// Layout identifies the configured coordinate layout of the input CSV.
type Layout string

const (
	// LayoutCombined reads one "lat,lon" field per endpoint.
	LayoutCombined Layout = "combined_coordinates"
	// LayoutSeparate reads four distinct lat/lon columns.
	LayoutSeparate Layout = "separate_coordinates"
)

// CombinedColumns names the CSV columns holding combined coordinate fields.
type CombinedColumns struct {
	Origin      string `yaml:"origin_coord_column"`
	Destination string `yaml:"destination_coord_column"`
}

// SeparateColumns names the four CSV columns holding split coordinates.
type SeparateColumns struct {
	OriginLat      string `yaml:"origin_lat_column"`
	OriginLon      string `yaml:"origin_lon_column"`
	DestinationLat string `yaml:"destination_lat_column"`
	DestinationLon string `yaml:"destination_lon_column"`
}

// Format describes how route endpoints are found in a CSV row. Exactly one
// layout variant is active; only the column set matching Layout is valid.
type Format struct {
	Layout     Layout
	NameColumn string
	Combined   CombinedColumns
	Separate   SeparateColumns
}

// Config is the validated, read-only configuration for a single run.
type Config struct {
	GoogleProjectID string
	CSVFormat       Format
	RouteNamePrefix string
	LogFile         string

	// MetricsFile is where run metrics are written in the Prometheus text
	// format at the end of a run. Empty disables the dump.
	MetricsFile string

	// MaxRoutes caps the number of routes created in one run. Zero means
	// unbounded.
	MaxRoutes int

	RequestTimeout  time.Duration
	RequestInterval time.Duration

	// MaxAttempts is the per-call HTTP attempt budget (1 = no retries).
	MaxAttempts int
}

// Capped reports whether a route-creation cap is configured.
func (c *Config) Capped() bool {
	return c.MaxRoutes > 0
}

type rawFormat struct {
	NameColumn string           `yaml:"segment_name_column"`
	Combined   *CombinedColumns `yaml:"combined_coordinates"`
	Separate   *SeparateColumns `yaml:"separate_coordinates"`
}

type rawConfig struct {
	GoogleProjectID string     `yaml:"google_project_id"`
	CSVFormat       *rawFormat `yaml:"csv_format"`
	RouteNamePrefix string     `yaml:"route_name_prefix"`
	LogFile         string     `yaml:"log_file"`
	MetricsFile     string     `yaml:"metrics_file"`
	MaxRoutes       *int       `yaml:"max_routes_to_create"`
	RequestTimeout  string     `yaml:"request_timeout"`
	RequestInterval string     `yaml:"request_interval"`
	MaxAttempts     *int       `yaml:"max_attempts"`
}

// Load reads and validates the configuration file at path. The returned
// Config is never mutated afterward; loading the same file twice yields
// equal values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, wrapError(KindMissing, err, "configuration file %q not found", path)
		}
		return nil, wrapError(KindMissing, err, "configuration file %q not readable", path)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, wrapError(KindMalformed, err, "parsing %q", path)
	}

	return build(&raw)
}

func build(raw *rawConfig) (*Config, error) {
	if raw.GoogleProjectID == "" {
		return nil, newError(KindInvalidValue, "google_project_id is required")
	}

	format, err := buildFormat(raw.CSVFormat)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GoogleProjectID: raw.GoogleProjectID,
		CSVFormat:       *format,
		RouteNamePrefix: raw.RouteNamePrefix,
		LogFile:         raw.LogFile,
		MetricsFile:     raw.MetricsFile,
		RequestTimeout:  DefaultRequestTimeout,
		RequestInterval: DefaultRequestInterval,
		MaxAttempts:     1,
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}

	if raw.MaxRoutes != nil {
		if *raw.MaxRoutes <= 0 {
			return nil, newError(KindInvalidValue,
				"max_routes_to_create must be a positive integer, got %d", *raw.MaxRoutes)
		}
		cfg.MaxRoutes = *raw.MaxRoutes
	}

	if raw.RequestTimeout != "" {
		d, err := time.ParseDuration(raw.RequestTimeout)
		if err != nil || d <= 0 {
			return nil, newError(KindInvalidValue, "request_timeout %q is not a positive duration", raw.RequestTimeout)
		}
		cfg.RequestTimeout = d
	}

	if raw.RequestInterval != "" {
		d, err := time.ParseDuration(raw.RequestInterval)
		if err != nil || d < 0 {
			return nil, newError(KindInvalidValue, "request_interval %q is not a duration", raw.RequestInterval)
		}
		cfg.RequestInterval = d
	}

	if raw.MaxAttempts != nil {
		if *raw.MaxAttempts < 1 {
			return nil, newError(KindInvalidValue, "max_attempts must be at least 1, got %d", *raw.MaxAttempts)
		}
		cfg.MaxAttempts = *raw.MaxAttempts
	}

	return cfg, nil
}

func buildFormat(raw *rawFormat) (*Format, error) {
	if raw == nil {
		return nil, newError(KindInvalidLayout, "csv_format is required")
	}

	switch {
	case raw.Combined != nil && raw.Separate != nil:
		return nil, newError(KindInvalidLayout,
			"csv_format selects both combined_coordinates and separate_coordinates")
	case raw.Combined != nil:
		if raw.Combined.Origin == "" || raw.Combined.Destination == "" {
			return nil, newError(KindInvalidLayout,
				"combined_coordinates requires origin_coord_column and destination_coord_column")
		}
		return &Format{
			Layout:     LayoutCombined,
			NameColumn: raw.NameColumn,
			Combined:   *raw.Combined,
		}, nil
	case raw.Separate != nil:
		s := raw.Separate
		if s.OriginLat == "" || s.OriginLon == "" || s.DestinationLat == "" || s.DestinationLon == "" {
			return nil, newError(KindInvalidLayout,
				"separate_coordinates requires origin_lat_column, origin_lon_column, destination_lat_column and destination_lon_column")
		}
		return &Format{
			Layout:     LayoutSeparate,
			NameColumn: raw.NameColumn,
			Separate:   *s,
		}, nil
	default:
		return nil, newError(KindInvalidLayout,
			"csv_format must select combined_coordinates or separate_coordinates")
	}
}
