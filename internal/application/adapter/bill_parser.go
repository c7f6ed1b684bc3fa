package adapter

import "github.com/bill-center/backend/internal/domain/entity"

// ParseResult is the outcome of parsing one spreadsheet.
// Every non-blank data row ends up in exactly one of Rows or Errors.
type ParseResult struct {
	Rows   []*entity.ParsedRow
	Errors []string
	Total  int
}

// BillParser converts raw spreadsheet bytes of one source format into candidate rows.
type BillParser interface {
	// Source returns the identifier the parser is registered under.
	Source() string

	// Parse reads the first sheet of the file. Row failures are collected, not returned.
	Parse(data []byte) (*ParseResult, error)
}

// ParserRegistry resolves parsers by source identifier.
type ParserRegistry interface {
	// Get returns the parser for source or domainerror.ErrUnsupportedSource.
	Get(source string) (BillParser, error)

	// Sources lists the registered source identifiers.
	Sources() []string
}
