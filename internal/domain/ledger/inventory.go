package ledger

import (
	"time"

	"github.com/chabatake/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryBalance tracks the remaining unshipped quantity of a single
// production batch. Exactly one balance row exists per batch; it is created
// together with the batch and mutated only by shipment operations.
//
// Invariant: 0 <= Quantity <= the batch's produced quantity.
type InventoryBalance struct {
	shared.BaseEntity
	ProductionBatchID uint            `gorm:"not null;uniqueIndex"`
	Quantity          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LastUpdated       time.Time       `gorm:"not null"`

	ProductionBatch *ProductionBatch `gorm:"foreignKey:ProductionBatchID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (InventoryBalance) TableName() string {
	return "inventory_balances"
}

// NewInventoryBalance creates the opening balance for a freshly recorded
// batch: quantity on hand equals the produced quantity.
func NewInventoryBalance(batch *ProductionBatch) *InventoryBalance {
	return &InventoryBalance{
		ProductionBatchID: batch.ID,
		Quantity:          batch.Quantity,
		LastUpdated:       time.Now(),
	}
}

// CanFulfill reports whether the balance covers the requested quantity.
func (b *InventoryBalance) CanFulfill(quantity decimal.Decimal) bool {
	return b.Quantity.GreaterThanOrEqual(quantity)
}

// Deduct removes a shipped quantity from the balance. The caller must
// persist the change in the same unit of work as the shipment row.
func (b *InventoryBalance) Deduct(quantity decimal.Decimal) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	if !b.CanFulfill(quantity) {
		return shared.ErrInsufficientStock
	}
	b.Quantity = b.Quantity.Sub(quantity)
	b.LastUpdated = time.Now()
	return nil
}

// HasStock reports whether any quantity remains on hand.
func (b *InventoryBalance) HasStock() bool {
	return b.Quantity.GreaterThan(decimal.Zero)
}
