package report

import (
	"context"
	"time"

	"github.com/chabatake/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// InventoryRow is a read model for the current-stock report: one row per
// production batch that still has quantity on hand.
type InventoryRow struct {
	BatchID        uint               `json:"batch_id"`
	TeaCategory    ledger.TeaCategory `json:"tea_category"`
	ProductionDate time.Time          `json:"production_date"`
	CurrentStock   decimal.Decimal    `json:"current_stock"`
	QualityGrade   *string            `json:"quality_grade,omitempty"`
	LastUpdated    time.Time          `json:"last_updated"`
}

// ShipmentRow is a read model for shipment history entries.
type ShipmentRow struct {
	ShipmentDate    time.Time          `json:"shipment_date"`
	TeaCategory     ledger.TeaCategory `json:"tea_category"`
	Quantity        decimal.Decimal    `json:"quantity"`
	CustomerName    string             `json:"customer_name"`
	CustomerContact string             `json:"customer_contact,omitempty"`
}

// QualityRow is a read model for the quality report. CurrentStock is null
// for batches whose inventory balance row is missing.
type QualityRow struct {
	ProductionDate time.Time           `json:"production_date"`
	TeaCategory    ledger.TeaCategory  `json:"tea_category"`
	Quantity       decimal.Decimal     `json:"quantity"`
	QualityGrade   *string             `json:"quality_grade,omitempty"`
	QualityNotes   string              `json:"quality_notes,omitempty"`
	CurrentStock   decimal.NullDecimal `json:"current_stock"`
}

// SummaryRow aggregates production, shipment and stock figures per tea
// category. Categories without batches do not appear.
type SummaryRow struct {
	TeaCategory             ledger.TeaCategory `json:"tea_category"`
	TotalProductions        int64              `json:"total_productions"`
	TotalProductionQuantity decimal.Decimal    `json:"total_production_quantity"`
	TotalShipments          int64              `json:"total_shipments"`
	TotalShipmentQuantity   decimal.Decimal    `json:"total_shipment_quantity"`
	CurrentStock            decimal.Decimal    `json:"current_stock"`
	QualityAPercentage      decimal.Decimal    `json:"quality_a_percentage"`
}

// DateRange is an optional inclusive [Start, End] calendar-date filter.
// Either bound may be nil, leaving that side of the range open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// LedgerReportRepository defines the read-only aggregate queries the report
// service composes. Every call re-reads current ledger state; there is no
// cached materialized view.
type LedgerReportRepository interface {
	// InventoryReport returns one row per batch with remaining stock,
	// most recently updated first
	InventoryReport(ctx context.Context) ([]InventoryRow, error)

	// ShipmentHistory returns shipments joined with their batch's category,
	// optionally restricted by shipment date, most recent first
	ShipmentHistory(ctx context.Context, dates DateRange) ([]ShipmentRow, error)

	// QualityReport returns all batches left-joined with their balance,
	// optionally restricted by production date, most recent first
	QualityReport(ctx context.Context, dates DateRange) ([]QualityRow, error)

	// Summary returns per-category production/shipment/stock aggregates
	Summary(ctx context.Context) ([]SummaryRow, error)
}
