package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ledger/backend/internal/domain/inventory"
	"github.com/ledger/backend/internal/infrastructure/persistence/models"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.BillingPlanModel{},
		&models.ClientOverrideModel{},
		&models.AssetOverrideModel{},
		&models.UserOverrideModel{},
		&models.ManualAssetModel{},
		&models.ManualUserModel{},
		&models.CustomLineItemModel{},
		&models.InvoiceModel{},
		&inventory.Company{},
		&inventory.Asset{},
		&inventory.Contact{},
		&inventory.Ticket{},
		&inventory.SyncRun{},
	))
	return db
}
