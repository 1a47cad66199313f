package accounting

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordProductionInput carries the caller-supplied fields for recording a
// production batch. ProductionDate may be zero, in which case the batch is
// dated today. QualityGrade is optional.
type RecordProductionInput struct {
	TeaCategory    string
	Quantity       decimal.Decimal
	ProductionDate time.Time
	QualityGrade   *string
}

// RecordShipmentInput carries the caller-supplied fields for recording a
// shipment against an existing batch. ShipmentDate may be zero, in which
// case the shipment is dated today.
type RecordShipmentInput struct {
	BatchID         uint
	Quantity        decimal.Decimal
	CustomerName    string
	ShipmentDate    time.Time
	CustomerContact string
}
