package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bill-center/backend/internal/domain/entity"
)

// LedgerRowModel represents the ledger_rows table in the database.
type LedgerRowModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Date              time.Time       `gorm:"type:date;not null;index:idx_ledger_rows_fingerprint,priority:1"`
	Direction         string          `gorm:"type:varchar(10);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null;index:idx_ledger_rows_fingerprint,priority:2"`
	Discount          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	SettledAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SettledOverridden bool            `gorm:"not null;default:false"`
	Remark            string          `gorm:"type:varchar(500);not null;default:''"`
	SourceTag         string          `gorm:"type:varchar(20);not null"`
	CategoryID        *uuid.UUID      `gorm:"type:uuid;index"`
	ImportBatchID     *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
	DeletedAt         gorm.DeletedAt  `gorm:"index"`

	Tags []LedgerRowTagModel `gorm:"foreignKey:LedgerRowID"`
}

// TableName returns the table name for the LedgerRowModel.
func (LedgerRowModel) TableName() string {
	return "ledger_rows"
}

// LedgerRowTagModel represents the ledger_row_tags join table.
type LedgerRowTagModel struct {
	LedgerRowID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID       uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the LedgerRowTagModel.
func (LedgerRowTagModel) TableName() string {
	return "ledger_row_tags"
}

// ToEntity converts a LedgerRowModel to a domain LedgerRow entity.
// Tag IDs are only populated when the Tags association was preloaded.
func (m *LedgerRowModel) ToEntity() *entity.LedgerRow {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	var tagIDs []uuid.UUID
	for _, link := range m.Tags {
		tagIDs = append(tagIDs, link.TagID)
	}

	return &entity.LedgerRow{
		ID:                m.ID,
		Date:              m.Date,
		Direction:         entity.Direction(m.Direction),
		Amount:            m.Amount,
		Discount:          m.Discount,
		SettledAmount:     m.SettledAmount,
		SettledOverridden: m.SettledOverridden,
		Remark:            m.Remark,
		SourceTag:         m.SourceTag,
		CategoryID:        m.CategoryID,
		TagIDs:            tagIDs,
		ImportBatchID:     m.ImportBatchID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}

// LedgerRowFromEntity creates a LedgerRowModel from a domain LedgerRow entity.
// Tag links are built separately with TagLinksFromEntity.
func LedgerRowFromEntity(row *entity.LedgerRow) *LedgerRowModel {
	var deletedAt gorm.DeletedAt
	if row.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *row.DeletedAt, Valid: true}
	}

	return &LedgerRowModel{
		ID:                row.ID,
		Date:              row.Date,
		Direction:         string(row.Direction),
		Amount:            row.Amount,
		Discount:          row.Discount,
		SettledAmount:     row.SettledAmount,
		SettledOverridden: row.SettledOverridden,
		Remark:            row.Remark,
		SourceTag:         row.SourceTag,
		CategoryID:        row.CategoryID,
		ImportBatchID:     row.ImportBatchID,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}

// TagLinksFromEntity builds the join rows for a ledger row's tag set.
func TagLinksFromEntity(row *entity.LedgerRow) []LedgerRowTagModel {
	links := make([]LedgerRowTagModel, 0, len(row.TagIDs))
	for _, tagID := range row.TagIDs {
		links = append(links, LedgerRowTagModel{
			LedgerRowID: row.ID,
			TagID:       tagID,
			CreatedAt:   row.CreatedAt,
		})
	}
	return links
}
