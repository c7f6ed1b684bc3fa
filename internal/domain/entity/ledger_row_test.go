package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/bill-center/backend/internal/domain/error"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewLedgerRow(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	override := dec("80")

	tests := []struct {
		name            string
		params          LedgerRowParams
		expectedErr     error
		expectedSettled string
		expectOverride  bool
	}{
		{
			name:            "settled amount is amount minus discount",
			params:          LedgerRowParams{Date: date, Direction: DirectionExpense, Amount: dec("100"), Discount: dec("12.5")},
			expectedSettled: "87.5",
		},
		{
			name:            "zero discount",
			params:          LedgerRowParams{Date: date, Direction: DirectionIncome, Amount: dec("42"), Discount: decimal.Zero},
			expectedSettled: "42",
		},
		{
			name:            "explicit override wins",
			params:          LedgerRowParams{Date: date, Direction: DirectionExpense, Amount: dec("100"), Discount: dec("10"), SettledAmount: &override},
			expectedSettled: "80",
			expectOverride:  true,
		},
		{
			name:        "zero amount rejected",
			params:      LedgerRowParams{Date: date, Direction: DirectionExpense, Amount: decimal.Zero},
			expectedErr: domainerror.ErrInvalidLedgerAmount,
		},
		{
			name:        "negative discount rejected",
			params:      LedgerRowParams{Date: date, Direction: DirectionExpense, Amount: dec("10"), Discount: dec("-1")},
			expectedErr: domainerror.ErrInvalidLedgerDiscount,
		},
		{
			name:        "unknown direction rejected",
			params:      LedgerRowParams{Date: date, Direction: "TRANSFER", Amount: dec("10")},
			expectedErr: domainerror.ErrInvalidDirection,
		},
		{
			name:            "remark at the limit accepted",
			params:          LedgerRowParams{Date: date, Direction: DirectionExpense, Amount: dec("10"), Remark: strings.Repeat("备", MaxRemarkLength)},
			expectedSettled: "10",
		},
		{
			name:        "remark over the limit rejected",
			params:      LedgerRowParams{Date: date, Direction: DirectionExpense, Amount: dec("10"), Remark: strings.Repeat("a", MaxRemarkLength+1)},
			expectedErr: domainerror.ErrLedgerRemarkTooLong,
		},
		{
			name:        "missing date rejected",
			params:      LedgerRowParams{Direction: DirectionExpense, Amount: dec("10")},
			expectedErr: domainerror.ErrInvalidLedgerDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := NewLedgerRow(tt.params)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !row.SettledAmount.Equal(dec(tt.expectedSettled)) {
				t.Errorf("expected settled %s, got %s", tt.expectedSettled, row.SettledAmount)
			}
			if row.SettledOverridden != tt.expectOverride {
				t.Errorf("expected override flag %v, got %v", tt.expectOverride, row.SettledOverridden)
			}
		})
	}
}

func TestLedgerRowSetAmountsRecomputes(t *testing.T) {
	override := dec("1")
	row, err := NewLedgerRow(LedgerRowParams{
		Date:          time.Now(),
		Direction:     DirectionExpense,
		Amount:        dec("10"),
		Discount:      dec("2"),
		SettledAmount: &override,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := row.SetAmounts(dec("20"), dec("5"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !row.SettledAmount.Equal(dec("15")) {
		t.Errorf("expected settled 15 after recompute, got %s", row.SettledAmount)
	}
	if row.SettledOverridden {
		t.Errorf("expected override flag to be cleared")
	}
}

func TestNewLedgerRowDeduplicatesTags(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	row, err := NewLedgerRow(LedgerRowParams{
		Date:      time.Now(),
		Direction: DirectionExpense,
		Amount:    dec("1"),
		TagIDs:    []uuid.UUID{a, b, a},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(row.TagIDs) != 2 || row.TagIDs[0] != a || row.TagIDs[1] != b {
		t.Errorf("expected [a b], got %v", row.TagIDs)
	}
}

func TestParsedRowNeeds(t *testing.T) {
	row := NewParsedRow("2024-01-01", DirectionExpense, dec("10"), dec("3"), "lunch")
	if !row.SettledAmount.Equal(dec("7")) {
		t.Errorf("expected settled 7, got %s", row.SettledAmount)
	}
	if !row.NeedsEnrichment() {
		t.Errorf("expected fresh row to need enrichment")
	}

	id := uuid.New()
	row.CategoryID = &id
	if !row.NeedsEnrichment() {
		t.Errorf("expected row without tags to still need enrichment")
	}

	tag := uuid.New()
	row.AddTagIDs(tag, tag)
	if row.NeedsEnrichment() {
		t.Errorf("expected fully classified row to not need enrichment")
	}
	if len(row.TagIDs) != 1 {
		t.Errorf("expected one tag id, got %d", len(row.TagIDs))
	}
}
