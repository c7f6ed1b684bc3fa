package tag

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/domain/entity"
	domainerror "github.com/bill-center/backend/internal/domain/error"
	"github.com/bill-center/backend/internal/domain/valueobject"
)

type mockTagRepo struct {
	tags      []*entity.Tag
	deleted   []uuid.UUID
	createErr error
}

func (m *mockTagRepo) Create(_ context.Context, tag *entity.Tag) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.tags = append(m.tags, tag)
	return nil
}

func (m *mockTagRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Tag, error) {
	for _, t := range m.tags {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domainerror.ErrTagNotFound
}

func (m *mockTagRepo) FindAll(_ context.Context) ([]*entity.Tag, error) {
	return m.tags, nil
}

func (m *mockTagRepo) FindRootByName(_ context.Context, name string) (*entity.Tag, error) {
	for _, t := range m.tags {
		if t.ParentID == nil && t.Name == name {
			return t, nil
		}
	}
	return nil, domainerror.ErrTagNotFound
}

func (m *mockTagRepo) ExistsSibling(_ context.Context, name string, parentID *uuid.UUID) (bool, error) {
	for _, t := range m.tags {
		sameParent := (t.ParentID == nil && parentID == nil) ||
			(t.ParentID != nil && parentID != nil && *t.ParentID == *parentID)
		if t.Name == name && sameParent {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTagRepo) SoftDeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	m.deleted = append(m.deleted, ids...)
	return int64(len(ids)), nil
}

type mockLedgerRepo struct {
	count int64
}

func (m *mockLedgerRepo) Create(_ context.Context, _ *entity.LedgerRow) error { return nil }

func (m *mockLedgerRepo) ExistsByFingerprint(_ context.Context, _ valueobject.Fingerprint) (bool, error) {
	return false, nil
}

func (m *mockLedgerRepo) CountByCategoryIDs(_ context.Context, _ []uuid.UUID) (int64, error) {
	return 0, nil
}

func (m *mockLedgerRepo) CountByTagIDs(_ context.Context, _ []uuid.UUID) (int64, error) {
	return m.count, nil
}

func seedTags() (*mockTagRepo, *entity.Tag, *entity.Tag, *entity.Tag) {
	travel := entity.NewTag("travel", nil, 0, entity.DefaultTagColor)
	flights := entity.NewTag("flights", &travel.ID, 0, entity.DefaultTagColor)
	business := entity.NewTag("business", &flights.ID, 0, entity.DefaultTagColor)
	return &mockTagRepo{tags: []*entity.Tag{travel, flights, business}}, travel, flights, business
}

func TestCreateTagUseCase_Execute(t *testing.T) {
	tests := []struct {
		name         string
		input        func(travel *entity.Tag) CreateTagInput
		createErr    error
		expectedCode domainerror.TagErrorCode
	}{
		{
			name:  "root tag",
			input: func(_ *entity.Tag) CreateTagInput { return CreateTagInput{Name: "food"} },
		},
		{
			name:  "child tag",
			input: func(travel *entity.Tag) CreateTagInput { return CreateTagInput{Name: "hotels", ParentID: &travel.ID} },
		},
		{
			name:         "duplicate root",
			input:        func(_ *entity.Tag) CreateTagInput { return CreateTagInput{Name: "travel"} },
			expectedCode: domainerror.ErrCodeTagNameExists,
		},
		{
			name:         "store unique index",
			input:        func(_ *entity.Tag) CreateTagInput { return CreateTagInput{Name: "food"} },
			createErr:    domainerror.ErrTagNameExists,
			expectedCode: domainerror.ErrCodeTagNameExists,
		},
		{
			name: "unknown parent",
			input: func(_ *entity.Tag) CreateTagInput {
				id := uuid.New()
				return CreateTagInput{Name: "x", ParentID: &id}
			},
			expectedCode: domainerror.ErrCodeParentTagNotFound,
		},
		{
			name:         "missing name",
			input:        func(_ *entity.Tag) CreateTagInput { return CreateTagInput{} },
			expectedCode: domainerror.ErrCodeMissingTagFields,
		},
		{
			name:         "bad color",
			input:        func(_ *entity.Tag) CreateTagInput { return CreateTagInput{Name: "x", Color: "#12"} },
			expectedCode: domainerror.ErrCodeInvalidTagColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, travel, _, _ := seedTags()
			repo.createErr = tt.createErr

			out, err := NewCreateTagUseCase(repo).Execute(context.Background(), tt.input(travel))

			if tt.expectedCode != "" {
				var tagErr *domainerror.TagError
				if !errors.As(err, &tagErr) || tagErr.Code != tt.expectedCode {
					t.Errorf("expected code %s, got %v", tt.expectedCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Tag.Color != entity.DefaultTagColor {
				t.Errorf("expected default color, got %s", out.Tag.Color)
			}
		})
	}
}

func TestListTagsUseCase_Execute(t *testing.T) {
	repo, travel, flights, business := seedTags()

	out, err := NewListTagsUseCase(repo).Execute(context.Background(), ListTagsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Tree) != 1 || out.Tree[0].Item.ID != travel.ID {
		t.Fatalf("expected a single root")
	}
	child := out.Tree[0].Children[0]
	if child.Item.ID != flights.ID || child.Children[0].Item.ID != business.ID {
		t.Errorf("unexpected tree shape")
	}
}

func TestDeleteTagUseCase_Execute(t *testing.T) {
	t.Run("cascades", func(t *testing.T) {
		repo, travel, flights, business := seedTags()

		out, err := NewDeleteTagUseCase(repo, &mockLedgerRepo{}).Execute(context.Background(), DeleteTagInput{TagID: travel.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Deleted != 3 {
			t.Errorf("expected 3 deleted, got %d", out.Deleted)
		}
		expected := []uuid.UUID{travel.ID, flights.ID, business.ID}
		for i, id := range expected {
			if repo.deleted[i] != id {
				t.Errorf("position %d: expected %s, got %s", i, id, repo.deleted[i])
			}
		}
	})

	t.Run("in use", func(t *testing.T) {
		repo, travel, _, _ := seedTags()

		_, err := NewDeleteTagUseCase(repo, &mockLedgerRepo{count: 1}).Execute(context.Background(), DeleteTagInput{TagID: travel.ID})
		if !errors.Is(err, domainerror.ErrTagInUse) {
			t.Errorf("expected ErrTagInUse, got %v", err)
		}
		if len(repo.deleted) != 0 {
			t.Error("expected nothing to be deleted")
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo, _, _, _ := seedTags()

		_, err := NewDeleteTagUseCase(repo, &mockLedgerRepo{}).Execute(context.Background(), DeleteTagInput{TagID: uuid.New()})
		if !errors.Is(err, domainerror.ErrTagNotFound) {
			t.Errorf("expected ErrTagNotFound, got %v", err)
		}
	})
}
