package ledger

import (
	"strings"
	"time"

	"github.com/chabatake/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Shipment records a transfer of quantity from a batch's inventory to a
// customer. Shipments are immutable once recorded and never deleted.
type Shipment struct {
	shared.BaseEntity
	ProductionBatchID uint            `gorm:"not null;index"`
	ShipmentDate      time.Time       `gorm:"type:date;not null;index"`
	Quantity          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CustomerName      string          `gorm:"type:varchar(100);not null"`
	CustomerContact   string          `gorm:"type:varchar(100)"`

	ProductionBatch *ProductionBatch `gorm:"foreignKey:ProductionBatchID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment validates inputs and creates a shipment row for the given
// batch. The shipment date defaults to today when zero. Stock sufficiency is
// not checked here; that is the accounting service's job against the batch's
// inventory balance.
func NewShipment(batchID uint, shipmentDate time.Time, quantity decimal.Decimal, customerName, customerContact string) (*Shipment, error) {
	if batchID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "production batch reference is required")
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "customer name is required")
	}
	if shipmentDate.IsZero() {
		shipmentDate = time.Now()
	}

	return &Shipment{
		ProductionBatchID: batchID,
		ShipmentDate:      DateOf(shipmentDate),
		Quantity:          quantity,
		CustomerName:      strings.TrimSpace(customerName),
		CustomerContact:   strings.TrimSpace(customerContact),
	}, nil
}
