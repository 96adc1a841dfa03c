package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ledger/backend/internal/domain/inventory"
	"github.com/ledger/backend/internal/domain/shared"
)

// GormCompanyRepository implements inventory.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByAccount finds a company by account number
func (r *GormCompanyRepository) FindByAccount(ctx context.Context, accountNumber string) (*inventory.Company, error) {
	var company inventory.Company
	if err := r.db.WithContext(ctx).First(&company, "account_number = ?", accountNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindAllActive lists all active companies ordered by name
func (r *GormCompanyRepository) FindAllActive(ctx context.Context) ([]inventory.Company, error) {
	var companies []inventory.Company
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// ReplaceAll swaps the company snapshot: rows are upserted by upstream id and
// rows absent from the new snapshot are removed
func (r *GormCompanyRepository) ReplaceAll(ctx context.Context, companies []inventory.Company) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(companies) == 0 {
			return tx.Where("1 = 1").Delete(&inventory.Company{}).Error
		}

		ids := make([]int64, 0, len(companies))
		for _, c := range companies {
			ids = append(ids, c.ID)
		}
		if err := tx.Where("id NOT IN ?", ids).Delete(&inventory.Company{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&companies).Error
	})
}

// CountByPlanName counts active companies referencing a plan name
func (r *GormCompanyRepository) CountByPlanName(ctx context.Context, planName string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Company{}).
		Where("plan_name = ? AND active = ?", planName, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
