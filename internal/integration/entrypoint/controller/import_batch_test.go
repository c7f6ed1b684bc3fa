package controller

import (
	"net/http"
	"testing"

	"github.com/bill-center/backend/internal/integration/entrypoint/dto"
)

func TestImportBatchController_List(t *testing.T) {
	api := newTestAPI(t, apiOptions{})

	for _, remark := range []string{"first", "second", "third"} {
		body := map[string]any{
			"file_name": remark + ".csv",
			"rows": []map[string]any{
				{"date": "2024-05-01", "type": "EXPENSE", "amount": "9.90", "discount": "0", "remark": remark},
			},
		}
		if status := api.do(t, http.MethodPost, "/api/v1/bills/upload/confirm", body, nil); status != http.StatusOK {
			t.Fatalf("import %s failed: %d", remark, status)
		}
	}

	var resp dto.ImportBatchListResponse
	if status := api.do(t, http.MethodGet, "/api/v1/import-batches?page=1&page_size=2", nil, &resp); status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if resp.Pagination.Total != 3 || resp.Pagination.TotalPages != 2 || resp.Pagination.PageSize != 2 {
		t.Errorf("unexpected pagination %+v", resp.Pagination)
	}
	if len(resp.Batches) != 2 {
		t.Fatalf("expected 2 batches on the first page, got %d", len(resp.Batches))
	}
	for _, b := range resp.Batches {
		if b.Source != "YIMU" || b.TotalCount != 1 || b.SuccessCount != 1 || b.RowCount != 1 {
			t.Errorf("unexpected batch %+v", b)
		}
	}

	var fallback dto.ImportBatchListResponse
	if status := api.do(t, http.MethodGet, "/api/v1/import-batches?page=abc", nil, &fallback); status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if fallback.Pagination.Page != 1 || len(fallback.Batches) != 3 {
		t.Errorf("expected defaults to apply, got %+v", fallback.Pagination)
	}
}
