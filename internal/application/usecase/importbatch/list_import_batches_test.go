package importbatch

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/domain/entity"
)

type mockBatchRepo struct {
	total  int64
	offset int
	limit  int
}

func (m *mockBatchRepo) Create(_ context.Context, _ *entity.ImportBatch) error { return nil }

func (m *mockBatchRepo) UpdateCounts(_ context.Context, _ uuid.UUID, _, _ int) error { return nil }

func (m *mockBatchRepo) List(_ context.Context, offset, limit int) ([]*entity.ImportBatchWithStats, int64, error) {
	m.offset = offset
	m.limit = limit
	return []*entity.ImportBatchWithStats{}, m.total, nil
}

func TestListImportBatchesUseCase_Execute(t *testing.T) {
	tests := []struct {
		name           string
		input          ListImportBatchesInput
		total          int64
		expectedOffset int
		expectedLimit  int
		expectedPages  int
	}{
		{name: "defaults", input: ListImportBatchesInput{}, total: 0, expectedOffset: 0, expectedLimit: 20, expectedPages: 0},
		{name: "third page", input: ListImportBatchesInput{Page: 3, PageSize: 10}, total: 25, expectedOffset: 20, expectedLimit: 10, expectedPages: 3},
		{name: "page size clamped", input: ListImportBatchesInput{Page: 1, PageSize: 500}, total: 101, expectedOffset: 0, expectedLimit: 100, expectedPages: 2},
		{name: "negative page", input: ListImportBatchesInput{Page: -2, PageSize: 5}, total: 5, expectedOffset: 0, expectedLimit: 5, expectedPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBatchRepo{total: tt.total}
			out, err := NewListImportBatchesUseCase(repo).Execute(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.offset != tt.expectedOffset || repo.limit != tt.expectedLimit {
				t.Errorf("expected offset %d limit %d, got %d %d", tt.expectedOffset, tt.expectedLimit, repo.offset, repo.limit)
			}
			if out.TotalPages != tt.expectedPages {
				t.Errorf("expected %d pages, got %d", tt.expectedPages, out.TotalPages)
			}
		})
	}
}
