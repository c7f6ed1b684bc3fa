package persistence

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bill-center/backend/internal/domain/entity"
	"github.com/bill-center/backend/internal/integration/persistence/model"
)

// newTestDB opens an isolated in-memory database with every model migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", value, err)
	}
	return d
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newLedgerRow(t *testing.T, date time.Time, amount, remark string, categoryID *uuid.UUID, tagIDs ...uuid.UUID) *entity.LedgerRow {
	t.Helper()
	row, err := entity.NewLedgerRow(entity.LedgerRowParams{
		Date:       date,
		Direction:  entity.DirectionExpense,
		Amount:     mustDecimal(t, amount),
		Discount:   decimal.Zero,
		Remark:     remark,
		SourceTag:  "YIMU",
		CategoryID: categoryID,
		TagIDs:     tagIDs,
	})
	if err != nil {
		t.Fatalf("failed to build ledger row: %v", err)
	}
	return row
}
