package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParsedRow is a candidate ledger row produced from a spreadsheet.
// It lives only for the duration of one import and is enriched in place
// by the resolver and the enrichment step before being committed.
type ParsedRow struct {
	Date            string // YYYY-MM-DD when the source provided a date-serial
	Direction       Direction
	Amount          decimal.Decimal
	Discount        decimal.Decimal
	SettledAmount   decimal.Decimal
	SettledOverride *decimal.Decimal
	Remark          string
	CategoryName    string
	SubCategoryName string
	TagNames        []string

	CategoryID *uuid.UUID
	TagIDs     []uuid.UUID
	Advice     *EnrichmentAdvice

	// Rejected is set when the submitted values cannot be committed; the row then fails on its own.
	Rejected error
}

// NewParsedRow creates a ParsedRow and derives its settled amount.
func NewParsedRow(date string, direction Direction, amount, discount decimal.Decimal, remark string) *ParsedRow {
	return &ParsedRow{
		Date:          date,
		Direction:     direction,
		Amount:        amount,
		Discount:      discount,
		SettledAmount: SettledAmount(amount, discount),
		Remark:        remark,
	}
}

// NeedsCategory reports whether no category has been assigned yet.
func (r *ParsedRow) NeedsCategory() bool {
	return r.CategoryID == nil
}

// NeedsTags reports whether no tag has been assigned yet.
func (r *ParsedRow) NeedsTags() bool {
	return len(r.TagIDs) == 0
}

// NeedsEnrichment reports whether the row is still missing a category or all tags.
func (r *ParsedRow) NeedsEnrichment() bool {
	return r.NeedsCategory() || r.NeedsTags()
}

// Reject marks the row as failed. The first reason wins.
func (r *ParsedRow) Reject(err error) {
	if r.Rejected == nil {
		r.Rejected = err
	}
}

// AddTagIDs appends tag IDs that are not already present on the row.
func (r *ParsedRow) AddTagIDs(ids ...uuid.UUID) {
	r.TagIDs = uniqueIDs(append(r.TagIDs, ids...))
}

// EffectiveSettledAmount returns the override when present, otherwise amount - discount.
func (r *ParsedRow) EffectiveSettledAmount() decimal.Decimal {
	if r.SettledOverride != nil {
		return *r.SettledOverride
	}
	return SettledAmount(r.Amount, r.Discount)
}
