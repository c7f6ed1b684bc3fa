package valueobject

import (
	"errors"
	"strings"
	"time"
)

// LedgerDateLayout is the canonical textual form of a ledger date.
const LedgerDateLayout = "2006-01-02"

// ErrUnparseableDate is returned when none of the accepted layouts match.
var ErrUnparseableDate = errors.New("unparseable date")

var ledgerDateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"2006.1.2",
	"20060102",
}

// ParseLedgerDate parses the date forms exported by bill-keeping apps into a UTC day.
func ParseLedgerDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrUnparseableDate
	}

	for _, layout := range ledgerDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrUnparseableDate
}

// FormatLedgerDate renders a date as YYYY-MM-DD.
func FormatLedgerDate(t time.Time) string {
	return t.Format(LedgerDateLayout)
}
