package billimport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bill-center/backend/internal/domain/entity"
)

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newRow(date, amount, remark string, direction entity.Direction) *entity.ParsedRow {
	return entity.NewParsedRow(date, direction, mustDecimal(amount), decimal.Zero, remark)
}

func newCategory(name string, direction entity.Direction, parent *entity.Category) *entity.Category {
	var parentID *uuid.UUID
	if parent != nil {
		parentID = &parent.ID
	}
	return entity.NewCategory(name, direction, parentID, 0, entity.DefaultCategoryIcon, entity.DefaultCategoryColor)
}

func newTag(name string) *entity.Tag {
	return entity.NewTag(name, nil, 0, entity.DefaultTagColor)
}
