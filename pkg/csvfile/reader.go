/*
Copyright © 2025 Roadsight Authors
SPDX-License-Identifier: Apache-2.0
*/
package csvfile

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/roadsight/roadsync/pkg/route"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source reads data rows lazily from a CSV file. Close must be called when
// done.
type Source struct {
	file   *os.File
	reader *csv.Reader
	header []string
}

// Open opens the CSV file at path and reads its header row. A leading UTF-8
// byte order mark is stripped before the header is parsed.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	br := bufio.NewReader(f)
	if lead, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(lead, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	r := csv.NewReader(br)
	// Ragged rows are delivered as-is; short rows are rejected per row
	// downstream instead of aborting the read.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		f.Close()
		if err == io.EOF {
			return nil, fmt.Errorf("input file %q is empty", path)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	return &Source{file: f, reader: r, header: header}, nil
}

// Header returns the column names from the first line of the file.
func (s *Source) Header() []string {
	return s.header
}

// Next returns the next data row, or io.EOF when the input is exhausted.
// When a row cannot be parsed, the returned Row still carries the offending
// line number so the caller can report it.
func (s *Source) Next() (route.Row, error) {
	fields, err := s.reader.Read()
	if err != nil {
		if err == io.EOF {
			return route.Row{}, io.EOF
		}
		var row route.Row
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			row.Line = perr.Line
		}
		return row, fmt.Errorf("failed to read CSV row: %w", err)
	}

	line, _ := s.reader.FieldPos(0)
	return route.Row{Line: line, Fields: fields}, nil
}

// Close releases the underlying file handle.
func (s *Source) Close() error {
	return s.file.Close()
}
