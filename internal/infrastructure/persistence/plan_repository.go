package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/infrastructure/persistence/models"
)

// GormPlanRepository implements billing.PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.BillingPlan, error) {
	var model models.BillingPlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByName finds a plan by its name, preferring the most recently updated
// term variant when several exist
func (r *GormPlanRepository) FindByName(ctx context.Context, name string) (*billing.BillingPlan, error) {
	var model models.BillingPlanModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("updated_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll lists plans with filtering
func (r *GormPlanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.BillingPlan, error) {
	var rows []models.BillingPlanModel
	query := r.db.WithContext(ctx).Order("name ASC, term ASC")
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	plans := make([]billing.BillingPlan, 0, len(rows))
	for i := range rows {
		plan, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, nil
}

// FindAllByName loads the plan catalog for one contract term keyed by plan name
func (r *GormPlanRepository) FindAllByName(ctx context.Context, term billing.ContractTerm) (map[string]*billing.BillingPlan, error) {
	var rows []models.BillingPlanModel
	if err := r.db.WithContext(ctx).Where("term = ?", term.String()).Find(&rows).Error; err != nil {
		return nil, err
	}

	catalog := make(map[string]*billing.BillingPlan, len(rows))
	for i := range rows {
		plan, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		catalog[plan.Name] = plan
	}
	return catalog, nil
}

// Save creates or updates a plan
func (r *GormPlanRepository) Save(ctx context.Context, plan *billing.BillingPlan) error {
	var model models.BillingPlanModel
	model.FromDomain(plan)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a plan, refusing while any client override or company
// snapshot still references its name
func (r *GormPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.BillingPlanModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Table("client_overrides").Where("plan_name = ?", model.Name).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return shared.ErrPlanInUse
		}
		if err := tx.Table("companies").Where("plan_name = ? AND active = ?", model.Name, true).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return shared.ErrPlanInUse
		}

		result := tx.Delete(&models.BillingPlanModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("plan %s disappeared during delete", id)
		}
		return nil
	})
}

// Count counts plans with filtering
func (r *GormPlanRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BillingPlanModel{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
