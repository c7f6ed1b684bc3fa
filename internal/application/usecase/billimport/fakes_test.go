package billimport

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/application/adapter"
	"github.com/bill-center/backend/internal/domain/entity"
	domainerror "github.com/bill-center/backend/internal/domain/error"
	"github.com/bill-center/backend/internal/domain/valueobject"
)

type fakeCategoryRepo struct {
	categories []*entity.Category
	err        error
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.categories = append(r.categories, category)
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) FindAll(_ context.Context, _ adapter.CategoryFilter) ([]*entity.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.categories, nil
}

func (r *fakeCategoryRepo) ExistsSibling(_ context.Context, _ string, _ entity.Direction, _ *uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeCategoryRepo) SoftDeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	return int64(len(ids)), nil
}

type fakeTagRepo struct {
	mu        sync.Mutex
	tags      []*entity.Tag
	created   []*entity.Tag
	createErr error
	// raceWinner is returned by FindRootByName after Create reports a name collision.
	raceWinner *entity.Tag
}

func (r *fakeTagRepo) Create(_ context.Context, tag *entity.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.tags = append(r.tags, tag)
	r.created = append(r.created, tag)
	return nil
}

func (r *fakeTagRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tags {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domainerror.ErrTagNotFound
}

func (r *fakeTagRepo) FindAll(_ context.Context) ([]*entity.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.Tag(nil), r.tags...), nil
}

func (r *fakeTagRepo) FindRootByName(_ context.Context, name string) (*entity.Tag, error) {
	if r.raceWinner != nil && r.raceWinner.Name == name {
		return r.raceWinner, nil
	}
	return nil, domainerror.ErrTagNotFound
}

func (r *fakeTagRepo) ExistsSibling(_ context.Context, _ string, _ *uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeTagRepo) SoftDeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	return int64(len(ids)), nil
}

type fakeLedgerRepo struct {
	mu       sync.Mutex
	rows     []*entity.LedgerRow
	existing map[string]bool
	// failRemark makes Create fail for rows with this remark.
	failRemark string
	existsErr  error
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{existing: make(map[string]bool)}
}

func (r *fakeLedgerRepo) seed(date, amount, remark string) {
	d, _ := valueobject.ParseLedgerDate(date)
	r.existing[valueobject.NewFingerprint(d, mustDecimal(amount), remark).Key()] = true
}

func (r *fakeLedgerRepo) Create(_ context.Context, row *entity.LedgerRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failRemark != "" && row.Remark == r.failRemark {
		return errors.New("foreign key constraint failed")
	}
	r.rows = append(r.rows, row)
	r.existing[valueobject.NewFingerprint(row.Date, row.Amount, row.Remark).Key()] = true
	return nil
}

func (r *fakeLedgerRepo) ExistsByFingerprint(_ context.Context, fingerprint valueobject.Fingerprint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	return r.existing[fingerprint.Key()], nil
}

func (r *fakeLedgerRepo) CountByCategoryIDs(_ context.Context, _ []uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *fakeLedgerRepo) CountByTagIDs(_ context.Context, _ []uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeBatchRepo struct {
	mu        sync.Mutex
	batches   map[uuid.UUID]*entity.ImportBatch
	createErr error
	updateErr error
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: make(map[uuid.UUID]*entity.ImportBatch)}
}

func (r *fakeBatchRepo) Create(_ context.Context, batch *entity.ImportBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	copied := *batch
	r.batches[batch.ID] = &copied
	return nil
}

func (r *fakeBatchRepo) UpdateCounts(_ context.Context, id uuid.UUID, successCount, failCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	b, ok := r.batches[id]
	if !ok {
		return errors.New("batch not found")
	}
	b.SuccessCount = successCount
	b.FailCount = failCount
	return nil
}

func (r *fakeBatchRepo) List(_ context.Context, _, _ int) ([]*entity.ImportBatchWithStats, int64, error) {
	return nil, 0, nil
}

type fakeCompletion struct {
	reply     string
	err       error
	available bool
	calls     int
	prompts   []string
}

func (c *fakeCompletion) Complete(_ context.Context, prompt string) (string, error) {
	c.calls++
	c.prompts = append(c.prompts, prompt)
	return c.reply, c.err
}

func (c *fakeCompletion) IsAvailable() bool {
	return c.available
}
