// Package valueobject contains domain value objects for the Bill Center system.
package valueobject

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fingerprint is the (date, amount, remark) triple used to detect duplicate ledger rows.
// Two rows with equal fingerprints are treated as the same transaction, which also
// suppresses legitimately repeated identical purchases.
type Fingerprint struct {
	Date   time.Time
	Amount decimal.Decimal
	Remark string
}

// NewFingerprint builds a Fingerprint with the date truncated to a UTC calendar day.
func NewFingerprint(date time.Time, amount decimal.Decimal, remark string) Fingerprint {
	y, m, d := date.Date()
	return Fingerprint{
		Date:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Amount: amount,
		Remark: remark,
	}
}

// Key returns a comparable string form of the fingerprint.
func (f Fingerprint) Key() string {
	return FormatLedgerDate(f.Date) + "|" + f.Amount.String() + "|" + f.Remark
}
