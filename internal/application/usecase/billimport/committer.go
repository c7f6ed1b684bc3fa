package billimport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	domainerror "github.com/bill-center/backend/internal/domain/error"
	"github.com/bill-center/backend/internal/domain/valueobject"
)

// ImportSummary is the result of committing one upload.
// Total always equals Success + Duplicates + Failed.
type ImportSummary struct {
	BatchID    uuid.UUID
	Total      int
	Success    int
	Duplicates int
	Failed     int
	Errors     []string
}

// CommitInput holds the rows of one upload and their duplicate flags.
type CommitInput struct {
	FileName   string
	SourceTag  string
	Rows       []*entity.ParsedRow
	Duplicates []bool
}

// Committer persists non-duplicate rows under a new import batch.
type Committer struct {
	ledgerRepo adapter.LedgerRowRepository
	batchRepo  adapter.ImportBatchRepository
	workers    int
}

// NewCommitter creates a new Committer instance.
func NewCommitter(ledgerRepo adapter.LedgerRowRepository, batchRepo adapter.ImportBatchRepository, workers int) *Committer {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Committer{
		ledgerRepo: ledgerRepo,
		batchRepo:  batchRepo,
		workers:    workers,
	}
}

// Commit creates the batch, writes every non-duplicate row as its own unit of work
// and then records the final counts. A failing row is reported and does not stop the others.
func (c *Committer) Commit(ctx context.Context, input CommitInput) (*ImportSummary, error) {
	unique := make([]*entity.ParsedRow, 0, len(input.Rows))
	for i, row := range input.Rows {
		if i < len(input.Duplicates) && input.Duplicates[i] {
			continue
		}
		unique = append(unique, row)
	}
	duplicates := len(input.Rows) - len(unique)

	batch := entity.NewImportBatch(input.FileName, input.SourceTag, len(input.Rows), len(unique), duplicates)
	if err := c.batchRepo.Create(ctx, batch); err != nil {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeImportStoreFailure,
			"failed to create import batch",
			err,
		)
	}

	rowErrors := make([]string, len(unique))
	var (
		mu      sync.Mutex
		success int
	)

	g := new(errgroup.Group)
	g.SetLimit(c.workers)
	for i, row := range unique {
		g.Go(func() error {
			if err := c.commitRow(ctx, row, input.SourceTag, batch.ID); err != nil {
				slog.Warn("Failed to import ledger row",
					"batchID", batch.ID, "date", row.Date, "amount", row.Amount.String(), "error", err)
				rowErrors[i] = fmt.Sprintf("import failed: %s %s - %v", row.Date, row.Amount.String(), err)
				return nil
			}
			mu.Lock()
			success++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	errs := make([]string, 0)
	for _, e := range rowErrors {
		if e != "" {
			errs = append(errs, e)
		}
	}

	if err := c.batchRepo.UpdateCounts(ctx, batch.ID, success, len(input.Rows)-success); err != nil {
		slog.Error("Failed to update import batch counts",
			"batchID", batch.ID, "success", success, "error", err)
	}

	return &ImportSummary{
		BatchID:    batch.ID,
		Total:      len(input.Rows),
		Success:    success,
		Duplicates: duplicates,
		Failed:     len(errs),
		Errors:     errs,
	}, nil
}

func (c *Committer) commitRow(ctx context.Context, row *entity.ParsedRow, sourceTag string, batchID uuid.UUID) error {
	if row.Rejected != nil {
		return row.Rejected
	}
	date, err := valueobject.ParseLedgerDate(row.Date)
	if err != nil {
		return fmt.Errorf("%w %q", domainerror.ErrInvalidLedgerDate, strings.TrimSpace(row.Date))
	}

	ledgerRow, err := entity.NewLedgerRow(entity.LedgerRowParams{
		Date:          date,
		Direction:     row.Direction,
		Amount:        row.Amount,
		Discount:      row.Discount,
		SettledAmount: row.SettledOverride,
		Remark:        row.Remark,
		SourceTag:     sourceTag,
		CategoryID:    row.CategoryID,
		TagIDs:        row.TagIDs,
		ImportBatchID: &batchID,
	})
	if err != nil {
		return err
	}

	if err := c.ledgerRepo.Create(ctx, ledgerRow); err != nil {
		return fmt.Errorf("%w: %w", domainerror.ErrRowCommit, err)
	}
	return nil
}
