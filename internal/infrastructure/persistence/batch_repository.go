package persistence

import (
	"context"
	"errors"

	"github.com/chabatake/backend/internal/domain/ledger"
	"github.com/chabatake/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductionBatchRepository implements ProductionBatchRepository using GORM
type GormProductionBatchRepository struct {
	db *gorm.DB
}

// NewGormProductionBatchRepository creates a new GormProductionBatchRepository
func NewGormProductionBatchRepository(db *gorm.DB) *GormProductionBatchRepository {
	return &GormProductionBatchRepository{db: db}
}

// FindByID finds a production batch by its ID
func (r *GormProductionBatchRepository) FindByID(ctx context.Context, id uint) (*ledger.ProductionBatch, error) {
	var batch ledger.ProductionBatch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindAll returns every production batch, most recent production date first
func (r *GormProductionBatchRepository) FindAll(ctx context.Context) ([]ledger.ProductionBatch, error) {
	var batches []ledger.ProductionBatch
	if err := r.db.WithContext(ctx).
		Order("production_date DESC, id DESC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// Save creates or updates a production batch
func (r *GormProductionBatchRepository) Save(ctx context.Context, batch *ledger.ProductionBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// UpdateQuality updates only the quality columns of a batch and reports how
// many rows matched. A missing batch is not an error here; the caller decides
// what zero rows means.
func (r *GormProductionBatchRepository) UpdateQuality(ctx context.Context, id uint, grade ledger.QualityGrade, notes string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&ledger.ProductionBatch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quality_grade": string(grade),
			"quality_notes": notes,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Count counts all production batches
func (r *GormProductionBatchRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.ProductionBatch{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormProductionBatchRepository implements ProductionBatchRepository
var _ ledger.ProductionBatchRepository = (*GormProductionBatchRepository)(nil)
