package route

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/roadsight/roadsync/pkg/config"
)

// Row is one raw CSV data row with its 1-based line number.
type Row struct {
	Line   int
	Fields []string
}

// Rejection explains why a row did not become a Request.
type Rejection struct {
	Reason string
	Detail string
}

func (r *Rejection) String() string {
	return fmt.Sprintf("%s: %s", r.Reason, r.Detail)
}

// Accepts "lat,lon" with or without surrounding parentheses, e.g.
// "37.77,-122.41" or "(37.77, -122.41)".
var coordPattern = regexp.MustCompile(`^\s*\(?\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*\)?\s*$`)

// Mapper converts raw rows into route-creation requests using column indexes
// resolved once against the CSV header.
type Mapper struct {
	layout config.Layout
	prefix string

	// Resolved column indexes. nameIdx is -1 when no name column is
	// configured.
	nameIdx int

	// combined layout
	originIdx, destIdx int

	// separate layout
	originLatIdx, originLonIdx, destLatIdx, destLonIdx int
}

// NewMapper resolves the configured column names against the CSV header.
// A configured column absent from the header makes the whole input unusable
// and is returned as an error rather than a per-row rejection.
func NewMapper(cfg *config.Config, header []string) (*Mapper, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	resolve := func(name string) (int, error) {
		idx, ok := cols[name]
		if !ok {
			return 0, fmt.Errorf("column %q not found in CSV header", name)
		}
		return idx, nil
	}

	m := &Mapper{
		layout:  cfg.CSVFormat.Layout,
		prefix:  cfg.RouteNamePrefix,
		nameIdx: -1,
	}

	if name := cfg.CSVFormat.NameColumn; name != "" {
		idx, err := resolve(name)
		if err != nil {
			return nil, err
		}
		m.nameIdx = idx
	}

	var err error
	switch cfg.CSVFormat.Layout {
	case config.LayoutCombined:
		if m.originIdx, err = resolve(cfg.CSVFormat.Combined.Origin); err != nil {
			return nil, err
		}
		if m.destIdx, err = resolve(cfg.CSVFormat.Combined.Destination); err != nil {
			return nil, err
		}
	case config.LayoutSeparate:
		sep := cfg.CSVFormat.Separate
		if m.originLatIdx, err = resolve(sep.OriginLat); err != nil {
			return nil, err
		}
		if m.originLonIdx, err = resolve(sep.OriginLon); err != nil {
			return nil, err
		}
		if m.destLatIdx, err = resolve(sep.DestinationLat); err != nil {
			return nil, err
		}
		if m.destLonIdx, err = resolve(sep.DestinationLon); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown coordinate layout %q", cfg.CSVFormat.Layout)
	}

	return m, nil
}

// Map converts one raw row into a Request. Malformed rows return a Rejection
// instead of an error so the caller can continue with the next row.
func (m *Mapper) Map(row Row) (*Request, *Rejection) {
	var origin, dest Coordinate
	var rej *Rejection

	switch m.layout {
	case config.LayoutCombined:
		origin, dest, rej = m.mapCombined(row)
	default:
		origin, dest, rej = m.mapSeparate(row)
	}
	if rej != nil {
		return nil, rej
	}

	return &Request{
		Origin:      origin,
		Destination: dest,
		Name:        m.name(row),
		Line:        row.Line,
	}, nil
}

func (m *Mapper) mapCombined(row Row) (Coordinate, Coordinate, *Rejection) {
	var zero Coordinate

	originField, rej := field(row, m.originIdx)
	if rej != nil {
		return zero, zero, rej
	}
	destField, rej := field(row, m.destIdx)
	if rej != nil {
		return zero, zero, rej
	}

	origin, err := ParseCoordinate(originField)
	if err != nil {
		return zero, zero, malformed("origin %q: %v", originField, err)
	}
	dest, err := ParseCoordinate(destField)
	if err != nil {
		return zero, zero, malformed("destination %q: %v", destField, err)
	}
	return origin, dest, nil
}

func (m *Mapper) mapSeparate(row Row) (Coordinate, Coordinate, *Rejection) {
	var zero Coordinate

	values := make([]float64, 4)
	for i, idx := range []int{m.originLatIdx, m.originLonIdx, m.destLatIdx, m.destLonIdx} {
		raw, rej := field(row, idx)
		if rej != nil {
			return zero, zero, rej
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return zero, zero, malformed("value %q is not numeric", raw)
		}
		values[i] = v
	}

	origin := Coordinate{Lat: values[0], Lon: values[1]}
	dest := Coordinate{Lat: values[2], Lon: values[3]}
	if err := origin.Validate(); err != nil {
		return zero, zero, malformed("origin: %v", err)
	}
	if err := dest.Validate(); err != nil {
		return zero, zero, malformed("destination: %v", err)
	}
	return origin, dest, nil
}

// name builds the selected route ID: prefix + slug of the name column value
// + line number, or prefix + line number when no usable name exists.
// Uniqueness across a run is not guaranteed here.
func (m *Mapper) name(row Row) string {
	if m.nameIdx >= 0 && m.nameIdx < len(row.Fields) {
		if slug := Slug(row.Fields[m.nameIdx]); slug != "" {
			return fmt.Sprintf("%s%s-%d", m.prefix, slug, row.Line)
		}
	}
	return fmt.Sprintf("%s%d", m.prefix, row.Line)
}

// ParseCoordinate parses a combined "lat,lon" field, tolerating the
// parenthesized form, and validates the coordinate ranges.
func ParseCoordinate(s string) (Coordinate, error) {
	match := coordPattern.FindStringSubmatch(s)
	if match == nil {
		return Coordinate{}, fmt.Errorf("expected \"lat,lon\"")
	}

	lat, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("latitude %q is not numeric", match[1])
	}
	lon, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("longitude %q is not numeric", match[2])
	}

	c := Coordinate{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

func field(row Row, idx int) (string, *Rejection) {
	if idx >= len(row.Fields) {
		return "", &Rejection{
			Reason: ReasonMissingColumn,
			Detail: fmt.Sprintf("row has %d fields, column %d required", len(row.Fields), idx+1),
		}
	}
	return row.Fields[idx], nil
}

func malformed(format string, args ...any) *Rejection {
	return &Rejection{
		Reason: ReasonMalformedCoordinate,
		Detail: fmt.Sprintf(format, args...),
	}
}
