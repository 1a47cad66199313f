package persistence

import (
	"context"
	"errors"

	"github.com/chabatake/backend/internal/domain/ledger"
	"github.com/chabatake/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uint) (*ledger.Shipment, error) {
	var shipment ledger.Shipment
	if err := r.db.WithContext(ctx).First(&shipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// FindAll returns every shipment, most recent shipment date first
func (r *GormShipmentRepository) FindAll(ctx context.Context) ([]ledger.Shipment, error) {
	var shipments []ledger.Shipment
	if err := r.db.WithContext(ctx).
		Order("shipment_date DESC, id DESC").
		Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// Save creates a shipment row
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *ledger.Shipment) error {
	return r.db.WithContext(ctx).Save(shipment).Error
}

// Count counts all shipments
func (r *GormShipmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.Shipment{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormShipmentRepository implements ShipmentRepository
var _ ledger.ShipmentRepository = (*GormShipmentRepository)(nil)
