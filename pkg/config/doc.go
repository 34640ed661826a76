// Package config loads and validates the roadsync run configuration.
//
// Configuration is a YAML document read once at startup and held read-only
// for the lifetime of a run:
//
//	google_project_id: my-project
//	route_name_prefix: "slc-"
//	log_file: route_creator_log.txt
//	max_routes_to_create: 100
//	csv_format:
//	  segment_name_column: name
//	  combined_coordinates:
//	    origin_coord_column: origin
//	    destination_coord_column: destination
//
// The csv_format block selects exactly one coordinate layout: either
// combined_coordinates (one "lat,lon" field per endpoint) or
// separate_coordinates (four distinct lat/lon columns). Selecting both or
// neither is a layout error.
//
// Load failures are reported as *config.Error values carrying a Kind
// (Missing, Malformed, InvalidLayout, InvalidValue) that callers can match
// with errors.As.
package config
