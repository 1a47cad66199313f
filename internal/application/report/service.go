package report

import (
	"context"
	"time"

	"github.com/chabatake/backend/internal/domain/report"
	"github.com/chabatake/backend/internal/domain/shared"
)

// Service exposes the read-only ledger reports. Every call queries current
// ledger state; nothing is cached.
type Service struct {
	repo report.LedgerReportRepository
}

// NewService creates a new report Service.
func NewService(repo report.LedgerReportRepository) *Service {
	return &Service{repo: repo}
}

// Inventory returns one row per batch with remaining stock.
func (s *Service) Inventory(ctx context.Context) ([]report.InventoryRow, error) {
	return s.repo.InventoryReport(ctx)
}

// ShipmentHistory returns shipment history, optionally restricted to an
// inclusive date range. One-sided bounds are honored.
func (s *Service) ShipmentHistory(ctx context.Context, start, end *time.Time) ([]report.ShipmentRow, error) {
	dates, err := makeRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.repo.ShipmentHistory(ctx, dates)
}

// Quality returns all batches with their quality fields and remaining
// stock, optionally restricted by production date.
func (s *Service) Quality(ctx context.Context, start, end *time.Time) ([]report.QualityRow, error) {
	dates, err := makeRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.repo.QualityReport(ctx, dates)
}

// Summary returns per-category aggregates across the three tables.
func (s *Service) Summary(ctx context.Context) ([]report.SummaryRow, error) {
	return s.repo.Summary(ctx)
}

func makeRange(start, end *time.Time) (report.DateRange, error) {
	if start != nil && end != nil && end.Before(*start) {
		return report.DateRange{}, shared.NewDomainError("INVALID_INPUT", "end date precedes start date")
	}
	return report.DateRange{Start: start, End: end}, nil
}
