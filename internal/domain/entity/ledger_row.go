package entity

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/bill-center/backend/internal/domain/error"
)

// MaxRemarkLength is the longest remark, in characters, a ledger row may carry.
const MaxRemarkLength = 500

// LedgerRow represents a persisted income or expense entry.
type LedgerRow struct {
	ID                uuid.UUID
	Date              time.Time
	Direction         Direction
	Amount            decimal.Decimal
	Discount          decimal.Decimal
	SettledAmount     decimal.Decimal
	SettledOverridden bool
	Remark            string
	SourceTag         string
	CategoryID        *uuid.UUID
	TagIDs            []uuid.UUID
	ImportBatchID     *uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// LedgerRowParams holds the values needed to build a LedgerRow.
type LedgerRowParams struct {
	Date          time.Time
	Direction     Direction
	Amount        decimal.Decimal
	Discount      decimal.Decimal
	SettledAmount *decimal.Decimal // Explicit override, nil means amount - discount
	Remark        string
	SourceTag     string
	CategoryID    *uuid.UUID
	TagIDs        []uuid.UUID
	ImportBatchID *uuid.UUID
}

// NewLedgerRow validates the params and creates a new LedgerRow entity.
func NewLedgerRow(params LedgerRowParams) (*LedgerRow, error) {
	if params.Date.IsZero() {
		return nil, domainerror.ErrInvalidLedgerDate
	}
	if !params.Direction.IsValid() {
		return nil, domainerror.ErrInvalidDirection
	}
	if utf8.RuneCountInString(params.Remark) > MaxRemarkLength {
		return nil, domainerror.ErrLedgerRemarkTooLong
	}

	now := time.Now().UTC()
	row := &LedgerRow{
		ID:            uuid.New(),
		Date:          params.Date,
		Direction:     params.Direction,
		Remark:        params.Remark,
		SourceTag:     params.SourceTag,
		CategoryID:    params.CategoryID,
		TagIDs:        uniqueIDs(params.TagIDs),
		ImportBatchID: params.ImportBatchID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := row.SetAmounts(params.Amount, params.Discount, params.SettledAmount); err != nil {
		return nil, err
	}

	return row, nil
}

// SetAmounts updates amount and discount and derives the settled amount.
// When override is nil the settled amount is recomputed as amount - discount.
func (r *LedgerRow) SetAmounts(amount, discount decimal.Decimal, override *decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.ErrInvalidLedgerAmount
	}
	if discount.IsNegative() {
		return domainerror.ErrInvalidLedgerDiscount
	}

	r.Amount = amount
	r.Discount = discount
	if override != nil {
		r.SettledAmount = *override
		r.SettledOverridden = true
	} else {
		r.SettledAmount = SettledAmount(amount, discount)
		r.SettledOverridden = false
	}
	r.UpdatedAt = time.Now().UTC()

	return nil
}

// SettledAmount returns the amount left after deducting the discount.
func SettledAmount(amount, discount decimal.Decimal) decimal.Decimal {
	return amount.Sub(discount)
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
