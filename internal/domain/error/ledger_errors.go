package error

import "errors"

// Ledger row domain errors.
var (
	// ErrInvalidLedgerDate is returned when a ledger row has no usable date.
	ErrInvalidLedgerDate = errors.New("invalid ledger date")

	// ErrInvalidLedgerAmount is returned when the amount is not strictly positive.
	ErrInvalidLedgerAmount = errors.New("amount must be greater than zero")

	// ErrInvalidLedgerDiscount is returned when the discount is negative.
	ErrInvalidLedgerDiscount = errors.New("discount must not be negative")

	// ErrInvalidDirection is returned when the direction is neither INCOME nor EXPENSE.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrLedgerRemarkTooLong is returned when the remark exceeds MaxRemarkLength characters.
	ErrLedgerRemarkTooLong = errors.New("remark too long")

	// ErrInvalidReference is returned when a category or tag id is not a valid UUID.
	ErrInvalidReference = errors.New("invalid category or tag id")
)
