package persistence

import (
	"context"

	"github.com/chabatake/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormLedgerReportRepository implements LedgerReportRepository using GORM
type GormLedgerReportRepository struct {
	db *gorm.DB
}

// NewGormLedgerReportRepository creates a new GormLedgerReportRepository
func NewGormLedgerReportRepository(db *gorm.DB) *GormLedgerReportRepository {
	return &GormLedgerReportRepository{db: db}
}

// InventoryReport returns one row per batch with remaining stock, most
// recently updated first
func (r *GormLedgerReportRepository) InventoryReport(ctx context.Context) ([]report.InventoryRow, error) {
	var rows []report.InventoryRow
	if err := r.db.WithContext(ctx).
		Table("inventory_balances ib").
		Select(`
			ib.production_batch_id as batch_id,
			pb.tea_category,
			pb.production_date,
			ib.quantity as current_stock,
			pb.quality_grade,
			ib.last_updated
		`).
		Joins("JOIN production_batches pb ON pb.id = ib.production_batch_id").
		Where("ib.quantity > 0").
		Order("ib.last_updated DESC, ib.production_batch_id DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ShipmentHistory returns shipments joined with their batch's category,
// optionally restricted to an inclusive shipment-date range
func (r *GormLedgerReportRepository) ShipmentHistory(ctx context.Context, dates report.DateRange) ([]report.ShipmentRow, error) {
	var rows []report.ShipmentRow
	query := r.db.WithContext(ctx).
		Table("shipments s").
		Select(`
			s.shipment_date,
			pb.tea_category,
			s.quantity,
			s.customer_name,
			s.customer_contact
		`).
		Joins("JOIN production_batches pb ON pb.id = s.production_batch_id")

	if dates.Start != nil {
		query = query.Where("s.shipment_date >= ?", *dates.Start)
	}
	if dates.End != nil {
		query = query.Where("s.shipment_date <= ?", *dates.End)
	}

	if err := query.
		Order("s.shipment_date DESC, s.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// QualityReport returns all batches left-joined with their balance so a batch
// without a balance row still appears, optionally restricted to an inclusive
// production-date range
func (r *GormLedgerReportRepository) QualityReport(ctx context.Context, dates report.DateRange) ([]report.QualityRow, error) {
	var rows []report.QualityRow
	query := r.db.WithContext(ctx).
		Table("production_batches pb").
		Select(`
			pb.production_date,
			pb.tea_category,
			pb.quantity,
			pb.quality_grade,
			pb.quality_notes,
			ib.quantity as current_stock
		`).
		Joins("LEFT JOIN inventory_balances ib ON ib.production_batch_id = pb.id")

	if dates.Start != nil {
		query = query.Where("pb.production_date >= ?", *dates.Start)
	}
	if dates.End != nil {
		query = query.Where("pb.production_date <= ?", *dates.End)
	}

	if err := query.
		Order("pb.production_date DESC, pb.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Summary returns per-category production, shipment and stock aggregates.
// Shipment figures come from correlated subqueries so the GROUP BY over
// batches cannot multiply shipment rows.
func (r *GormLedgerReportRepository) Summary(ctx context.Context) ([]report.SummaryRow, error) {
	var rows []report.SummaryRow
	if err := r.db.WithContext(ctx).
		Table("production_batches pb").
		Select(`
			pb.tea_category,
			COUNT(pb.id) as total_productions,
			COALESCE(SUM(pb.quantity), 0) as total_production_quantity,
			COALESCE((
				SELECT COUNT(s.id)
				FROM shipments s
				JOIN production_batches b ON b.id = s.production_batch_id
				WHERE b.tea_category = pb.tea_category
			), 0) as total_shipments,
			COALESCE((
				SELECT SUM(s.quantity)
				FROM shipments s
				JOIN production_batches b ON b.id = s.production_batch_id
				WHERE b.tea_category = pb.tea_category
			), 0) as total_shipment_quantity,
			COALESCE((
				SELECT SUM(ib.quantity)
				FROM inventory_balances ib
				JOIN production_batches b ON b.id = ib.production_batch_id
				WHERE b.tea_category = pb.tea_category
			), 0) as current_stock,
			ROUND(SUM(CASE WHEN pb.quality_grade = 'A' THEN 1.0 ELSE 0.0 END) * 100.0 / COUNT(pb.id), 2) as quality_a_percentage
		`).
		Group("pb.tea_category").
		Order("pb.tea_category ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Ensure GormLedgerReportRepository implements LedgerReportRepository
var _ report.LedgerReportRepository = (*GormLedgerReportRepository)(nil)
