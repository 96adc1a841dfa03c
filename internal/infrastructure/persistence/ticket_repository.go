package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ledger/backend/internal/domain/inventory"
)

// GormTicketRepository implements inventory.TicketRepository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// FindByAccountAndWindow lists tickets whose last activity falls in [from, to)
func (r *GormTicketRepository) FindByAccountAndWindow(ctx context.Context, accountNumber string, from, to time.Time) ([]inventory.Ticket, error) {
	var tickets []inventory.Ticket
	if err := r.db.WithContext(ctx).
		Where("account_number = ? AND last_activity_at >= ? AND last_activity_at < ?", accountNumber, from, to).
		Order("last_activity_at ASC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// SumHours totals the hours of tickets whose last activity falls in [from, to)
func (r *GormTicketRepository) SumHours(ctx context.Context, accountNumber string, from, to time.Time) (decimal.Decimal, error) {
	var total sql.NullString
	if err := r.db.WithContext(ctx).
		Model(&inventory.Ticket{}).
		Select("SUM(hours)").
		Where("account_number = ? AND last_activity_at >= ? AND last_activity_at < ?", accountNumber, from, to).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(total.String)
}

// ReplaceForAccount swaps one company's ticket snapshot
func (r *GormTicketRepository) ReplaceForAccount(ctx context.Context, accountNumber string, tickets []inventory.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(tickets) == 0 {
			return tx.Where("account_number = ?", accountNumber).Delete(&inventory.Ticket{}).Error
		}

		ids := make([]int64, 0, len(tickets))
		for _, t := range tickets {
			ids = append(ids, t.ID)
		}
		if err := tx.Where("account_number = ? AND id NOT IN ?", accountNumber, ids).
			Delete(&inventory.Ticket{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&tickets).Error
	})
}
