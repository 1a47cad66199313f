package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/chabatake/backend/internal/domain/ledger"
	"github.com/chabatake/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInventoryBalanceRepository implements InventoryBalanceRepository using GORM
type GormInventoryBalanceRepository struct {
	db *gorm.DB
}

// NewGormInventoryBalanceRepository creates a new GormInventoryBalanceRepository
func NewGormInventoryBalanceRepository(db *gorm.DB) *GormInventoryBalanceRepository {
	return &GormInventoryBalanceRepository{db: db}
}

// FindByBatchID finds the balance owned by a production batch
func (r *GormInventoryBalanceRepository) FindByBatchID(ctx context.Context, batchID uint) (*ledger.InventoryBalance, error) {
	var balance ledger.InventoryBalance
	if err := r.db.WithContext(ctx).
		First(&balance, "production_batch_id = ?", batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &balance, nil
}

// FindAll returns every balance, most recently updated first
func (r *GormInventoryBalanceRepository) FindAll(ctx context.Context) ([]ledger.InventoryBalance, error) {
	var balances []ledger.InventoryBalance
	if err := r.db.WithContext(ctx).
		Order("last_updated DESC, id DESC").
		Find(&balances).Error; err != nil {
		return nil, err
	}
	return balances, nil
}

// Save creates or updates a balance
func (r *GormInventoryBalanceRepository) Save(ctx context.Context, balance *ledger.InventoryBalance) error {
	return r.db.WithContext(ctx).Save(balance).Error
}

// Deduct decrements a batch's balance with a guard in the WHERE clause so a
// concurrent deduction can never drive the balance below zero. Zero rows
// affected means the balance is missing or too small.
func (r *GormInventoryBalanceRepository) Deduct(ctx context.Context, batchID uint, quantity decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&ledger.InventoryBalance{}).
		Where("production_batch_id = ? AND quantity >= ?", batchID, quantity).
		Updates(map[string]interface{}{
			"quantity":     gorm.Expr("quantity - ?", quantity),
			"last_updated": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Ensure GormInventoryBalanceRepository implements InventoryBalanceRepository
var _ ledger.InventoryBalanceRepository = (*GormInventoryBalanceRepository)(nil)
