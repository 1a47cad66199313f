package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductionBatchRepository defines persistence for production batches
type ProductionBatchRepository interface {
	// FindByID finds a batch by its identifier
	FindByID(ctx context.Context, id uint) (*ProductionBatch, error)

	// FindAll returns every batch, most recent production date first
	FindAll(ctx context.Context) ([]ProductionBatch, error)

	// Save creates or updates a batch
	Save(ctx context.Context, batch *ProductionBatch) error

	// UpdateQuality updates only the quality grade and notes of a batch and
	// returns the number of rows updated (zero when the batch does not exist)
	UpdateQuality(ctx context.Context, id uint, grade QualityGrade, notes string) (int64, error)

	// Count counts all batches
	Count(ctx context.Context) (int64, error)
}

// InventoryBalanceRepository defines persistence for per-batch inventory balances
type InventoryBalanceRepository interface {
	// FindByBatchID finds the balance owned by a batch
	FindByBatchID(ctx context.Context, batchID uint) (*InventoryBalance, error)

	// FindAll returns every balance, most recently updated first
	FindAll(ctx context.Context) ([]InventoryBalance, error)

	// Save creates or updates a balance
	Save(ctx context.Context, balance *InventoryBalance) error

	// Deduct atomically decrements a batch's balance by the given quantity,
	// guarded so the balance can never go negative. It returns the number of
	// rows updated: zero means the balance is missing or insufficient.
	Deduct(ctx context.Context, batchID uint, quantity decimal.Decimal) (int64, error)
}

// ShipmentRepository defines persistence for shipments
type ShipmentRepository interface {
	// FindByID finds a shipment by its identifier
	FindByID(ctx context.Context, id uint) (*Shipment, error)

	// FindAll returns every shipment, most recent shipment date first
	FindAll(ctx context.Context) ([]Shipment, error)

	// Save creates a shipment row
	Save(ctx context.Context, shipment *Shipment) error

	// Count counts all shipments
	Count(ctx context.Context) (int64, error)
}
