package billimport

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bill-center/backend/internal/domain/entity"
	domainerror "github.com/bill-center/backend/internal/domain/error"
)

func TestDuplicateDetector_Detect(t *testing.T) {
	ledger := newFakeLedgerRepo()
	ledger.seed("2024-01-01", "10.00", "coffee")

	rows := []*entity.ParsedRow{
		newRow("2024-01-01", "10", "coffee", entity.DirectionExpense),
		newRow("2024/1/1", "10.0", "coffee", entity.DirectionExpense),
		newRow("2024-01-01", "10", "tea", entity.DirectionExpense),
		newRow("2024-01-02", "10", "coffee", entity.DirectionExpense),
		newRow("not a date", "10", "coffee", entity.DirectionExpense),
	}

	flags, err := NewDuplicateDetector(ledger, 2).Detect(context.Background(), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []bool{true, true, false, false, false}
	for i := range expected {
		if flags[i] != expected[i] {
			t.Errorf("row %d: expected duplicate=%v, got %v", i, expected[i], flags[i])
		}
	}
}

func TestDuplicateDetector_StoreError(t *testing.T) {
	ledger := newFakeLedgerRepo()
	ledger.existsErr = errors.New("connection reset")

	_, err := NewDuplicateDetector(ledger, 0).Detect(context.Background(), []*entity.ParsedRow{
		newRow("2024-01-01", "10", "coffee", entity.DirectionExpense),
	})
	if err == nil {
		t.Fatal("expected the store error to be returned")
	}
}

func TestCommitter_Commit(t *testing.T) {
	ledger := newFakeLedgerRepo()
	ledger.failRemark = "broken"
	batches := newFakeBatchRepo()

	rows := []*entity.ParsedRow{
		newRow("2024-01-01", "10", "ok-1", entity.DirectionExpense),
		newRow("2024-01-02", "20", "dup", entity.DirectionExpense),
		newRow("2024-01-03", "30", "broken", entity.DirectionExpense),
		newRow("someday", "40", "bad date", entity.DirectionExpense),
		newRow("2024-01-05", "50", "ok-2", entity.DirectionIncome),
	}
	override := mustDecimal("45")
	rows[4].SettledOverride = &override

	summary, err := NewCommitter(ledger, batches, 3).Commit(context.Background(), CommitInput{
		FileName:   "bills.xlsx",
		SourceTag:  "YIMU",
		Rows:       rows,
		Duplicates: []bool{false, true, false, false, false},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Total != 5 || summary.Success != 2 || summary.Duplicates != 1 || summary.Failed != 2 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if summary.Total != summary.Success+summary.Duplicates+summary.Failed {
		t.Errorf("summary does not add up: %+v", summary)
	}
	if len(summary.Errors) != 2 ||
		!strings.HasPrefix(summary.Errors[0], "import failed: 2024-01-03 30 - ") ||
		!strings.HasPrefix(summary.Errors[1], "import failed: someday 40 - ") {
		t.Errorf("unexpected errors %v", summary.Errors)
	}

	batch := batches.batches[summary.BatchID]
	if batch == nil {
		t.Fatal("expected the batch to be stored")
	}
	if batch.TotalCount != 5 || batch.SuccessCount != 2 || batch.FailCount != 3 {
		t.Errorf("unexpected batch counts %+v", batch)
	}

	if len(ledger.rows) != 2 {
		t.Fatalf("expected 2 committed rows, got %d", len(ledger.rows))
	}
	for _, row := range ledger.rows {
		if row.ImportBatchID == nil || *row.ImportBatchID != summary.BatchID {
			t.Errorf("expected row %s to be linked to the batch", row.Remark)
		}
		if row.SourceTag != "YIMU" {
			t.Errorf("expected source tag YIMU, got %s", row.SourceTag)
		}
		if row.Remark == "ok-2" && (!row.SettledOverridden || row.SettledAmount.String() != "45") {
			t.Errorf("expected the override to be kept, got %s", row.SettledAmount)
		}
	}
}

func TestCommitter_BatchCreateFailure(t *testing.T) {
	ledger := newFakeLedgerRepo()
	batches := newFakeBatchRepo()
	batches.createErr = errors.New("disk full")

	_, err := NewCommitter(ledger, batches, 1).Commit(context.Background(), CommitInput{
		Rows:       []*entity.ParsedRow{newRow("2024-01-01", "10", "a", entity.DirectionExpense)},
		Duplicates: []bool{false},
	})

	var importErr *domainerror.ImportError
	if !errors.As(err, &importErr) || importErr.Code != domainerror.ErrCodeImportStoreFailure {
		t.Errorf("expected store failure, got %v", err)
	}
	if len(ledger.rows) != 0 {
		t.Errorf("expected no rows written")
	}
}

func TestCommitter_UpdateCountsFailureKeepsSummary(t *testing.T) {
	ledger := newFakeLedgerRepo()
	batches := newFakeBatchRepo()
	batches.updateErr = errors.New("timeout")

	summary, err := NewCommitter(ledger, batches, 1).Commit(context.Background(), CommitInput{
		Rows:       []*entity.ParsedRow{newRow("2024-01-01", "10", "a", entity.DirectionExpense)},
		Duplicates: []bool{false},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Success != 1 {
		t.Errorf("expected 1 success, got %d", summary.Success)
	}
}

func TestCommitter_RejectedRowFailsAlone(t *testing.T) {
	ledger := newFakeLedgerRepo()
	batches := newFakeBatchRepo()

	rejected := newRow("2024-01-02", "20", "bad id", entity.DirectionExpense)
	rejected.Reject(domainerror.ErrInvalidReference)
	long := newRow("2024-01-03", "30", strings.Repeat("r", entity.MaxRemarkLength+1), entity.DirectionExpense)

	summary, err := NewCommitter(ledger, batches, 2).Commit(context.Background(), CommitInput{
		Rows:       []*entity.ParsedRow{newRow("2024-01-01", "10", "ok", entity.DirectionExpense), rejected, long},
		Duplicates: []bool{false, false, false},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Success != 1 || summary.Failed != 2 || len(summary.Errors) != 2 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if !strings.Contains(summary.Errors[0], domainerror.ErrInvalidReference.Error()) ||
		!strings.Contains(summary.Errors[1], domainerror.ErrLedgerRemarkTooLong.Error()) {
		t.Errorf("unexpected errors %v", summary.Errors)
	}
	if len(ledger.rows) != 1 {
		t.Errorf("expected 1 committed row, got %d", len(ledger.rows))
	}
}
