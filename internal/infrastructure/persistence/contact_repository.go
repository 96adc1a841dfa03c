package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ledger/backend/internal/domain/inventory"
)

// GormContactRepository implements inventory.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByAccount lists the contacts of one company
func (r *GormContactRepository) FindByAccount(ctx context.Context, accountNumber string) ([]inventory.Contact, error) {
	var contacts []inventory.Contact
	if err := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("id ASC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// ReplaceAll swaps the contact snapshot
func (r *GormContactRepository) ReplaceAll(ctx context.Context, contacts []inventory.Contact) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(contacts) == 0 {
			return tx.Where("1 = 1").Delete(&inventory.Contact{}).Error
		}

		ids := make([]int64, 0, len(contacts))
		for _, c := range contacts {
			ids = append(ids, c.ID)
		}
		if err := tx.Where("id NOT IN ?", ids).Delete(&inventory.Contact{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&contacts).Error
	})
}
