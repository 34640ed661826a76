// Package csvfile reads roadsync input files: header-addressed CSV documents
// with one candidate route per data row.
//
// The first line is always the header; data rows start at line 2. Rows are
// delivered lazily in file order with their 1-based line number so failures
// can be reported against the source file. Ragged rows are passed through
// as-is; short rows are the mapper's concern, not a read error.
package csvfile
