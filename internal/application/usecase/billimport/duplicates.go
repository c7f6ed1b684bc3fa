package billimport

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	"github.com/bill-center/backend/internal/domain/valueobject"
)

// DefaultWorkers is the per-invocation concurrency used when none is configured.
const DefaultWorkers = 4

// DuplicateDetector flags rows whose (date, amount, remark) already exists in the ledger.
type DuplicateDetector struct {
	ledgerRepo adapter.LedgerRowRepository
	workers    int
}

// NewDuplicateDetector creates a new DuplicateDetector instance.
func NewDuplicateDetector(ledgerRepo adapter.LedgerRowRepository, workers int) *DuplicateDetector {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &DuplicateDetector{
		ledgerRepo: ledgerRepo,
		workers:    workers,
	}
}

// Detect returns one flag per row. A row whose date cannot be parsed is never a
// duplicate; it fails later when committed. Any store error aborts detection.
func (d *DuplicateDetector) Detect(ctx context.Context, rows []*entity.ParsedRow) ([]bool, error) {
	flags := make([]bool, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for i, row := range rows {
		date, err := valueobject.ParseLedgerDate(row.Date)
		if err != nil {
			continue
		}
		fingerprint := valueobject.NewFingerprint(date, row.Amount, row.Remark)

		g.Go(func() error {
			exists, err := d.ledgerRepo.ExistsByFingerprint(gctx, fingerprint)
			if err != nil {
				return fmt.Errorf("failed to check duplicate for %s: %w", fingerprint.Key(), err)
			}
			flags[i] = exists
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return flags, nil
}
