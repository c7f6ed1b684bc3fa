package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/domain/entity"
	"github.com/bill-center/backend/internal/domain/valueobject"
)

// LedgerRowRepository defines the interface for ledger row persistence operations.
type LedgerRowRepository interface {
	// Create persists a ledger row together with its tag links as one unit of work.
	Create(ctx context.Context, row *entity.LedgerRow) error

	// ExistsByFingerprint checks if a live ledger row has the same date, amount and remark.
	ExistsByFingerprint(ctx context.Context, fingerprint valueobject.Fingerprint) (bool, error)

	// CountByCategoryIDs counts live ledger rows assigned to any of the categories.
	CountByCategoryIDs(ctx context.Context, categoryIDs []uuid.UUID) (int64, error)

	// CountByTagIDs counts live ledger rows linked to any of the tags.
	CountByTagIDs(ctx context.Context, tagIDs []uuid.UUID) (int64, error)
}
