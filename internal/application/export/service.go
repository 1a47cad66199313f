package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/chabatake/backend/internal/domain/ledger"
)

// File names produced by ExportAll, one per ledger table.
const (
	ProductionFile = "production.csv"
	ShipmentFile   = "shipment.csv"
	InventoryFile  = "inventory.csv"
)

const dateLayout = "2006-01-02"

// Service dumps the three ledger tables verbatim, including internal
// identifiers, to delimited text files with a header row per table.
type Service struct {
	batchRepo    ledger.ProductionBatchRepository
	balanceRepo  ledger.InventoryBalanceRepository
	shipmentRepo ledger.ShipmentRepository
}

// NewService creates a new export Service.
func NewService(
	batchRepo ledger.ProductionBatchRepository,
	balanceRepo ledger.InventoryBalanceRepository,
	shipmentRepo ledger.ShipmentRepository,
) *Service {
	return &Service{
		batchRepo:    batchRepo,
		balanceRepo:  balanceRepo,
		shipmentRepo: shipmentRepo,
	}
}

// Result lists the files written by an export.
type Result struct {
	Files []string `json:"files"`
}

// ExportAll writes production.csv, shipment.csv and inventory.csv into dir,
// creating the directory if needed. Files are overwritten.
func (s *Service) ExportAll(ctx context.Context, dir string) (*Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	batches, err := s.batchRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	shipments, err := s.shipmentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := s.balanceRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	files := []struct {
		name  string
		write func(w *csv.Writer) error
	}{
		{ProductionFile, func(w *csv.Writer) error { return writeProduction(w, batches) }},
		{ShipmentFile, func(w *csv.Writer) error { return writeShipments(w, shipments) }},
		{InventoryFile, func(w *csv.Writer) error { return writeInventory(w, balances) }},
	}

	result := &Result{Files: make([]string, 0, len(files))}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}
	return result, nil
}

func writeFile(path string, write func(w *csv.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := write(w); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeProduction(w *csv.Writer, batches []ledger.ProductionBatch) error {
	if err := w.Write([]string{"id", "tea_category", "production_date", "quantity", "quality_grade", "quality_notes", "created_at"}); err != nil {
		return err
	}
	for _, b := range batches {
		grade := ""
		if b.QualityGrade != nil {
			grade = b.QualityGrade.String()
		}
		record := []string{
			formatID(b.ID),
			b.TeaCategory.String(),
			b.ProductionDate.Format(dateLayout),
			b.Quantity.StringFixed(2),
			grade,
			b.QualityNotes,
			b.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeShipments(w *csv.Writer, shipments []ledger.Shipment) error {
	if err := w.Write([]string{"id", "production_batch_id", "shipment_date", "quantity", "customer_name", "customer_contact", "created_at"}); err != nil {
		return err
	}
	for _, s := range shipments {
		record := []string{
			formatID(s.ID),
			formatID(s.ProductionBatchID),
			s.ShipmentDate.Format(dateLayout),
			s.Quantity.StringFixed(2),
			s.CustomerName,
			s.CustomerContact,
			s.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeInventory(w *csv.Writer, balances []ledger.InventoryBalance) error {
	if err := w.Write([]string{"id", "production_batch_id", "quantity", "last_updated"}); err != nil {
		return err
	}
	for _, b := range balances {
		record := []string{
			formatID(b.ID),
			formatID(b.ProductionBatchID),
			b.Quantity.StringFixed(2),
			b.LastUpdated.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
