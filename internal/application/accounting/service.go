package accounting

import (
	"context"
	"errors"

	"github.com/chabatake/backend/internal/domain/ledger"
	"github.com/chabatake/backend/internal/domain/shared"
)

// Service implements the stock-accounting workflow: recording production
// batches with their opening inventory, applying shipments against the
// inventory balance, and updating quality checks.
//
// Both write operations run inside a TransactionScope so a batch is never
// persisted without its balance and a shipment is never persisted without
// the matching inventory decrement.
type Service struct {
	scope TransactionScope
}

// NewService creates a new accounting Service.
func NewService(scope TransactionScope) *Service {
	return &Service{scope: scope}
}

// RecordProduction validates the input and atomically creates one production
// batch together with its opening inventory balance. It returns the new
// batch identifier.
func (s *Service) RecordProduction(ctx context.Context, in RecordProductionInput) (uint, error) {
	category, err := ledger.ParseTeaCategory(in.TeaCategory)
	if err != nil {
		return 0, err
	}

	var grade *ledger.QualityGrade
	if in.QualityGrade != nil {
		g, err := ledger.ParseQualityGrade(*in.QualityGrade)
		if err != nil {
			return 0, err
		}
		grade = &g
	}

	batch, err := ledger.NewProductionBatch(category, in.ProductionDate, in.Quantity, grade)
	if err != nil {
		return 0, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Batches().Save(ctx, batch); err != nil {
			return err
		}
		return repos.Balances().Save(ctx, ledger.NewInventoryBalance(batch))
	})
	if err != nil {
		return 0, err
	}

	return batch.ID, nil
}

// UpdateQualityCheck updates only the quality grade and notes of an existing
// batch. It returns the number of rows updated; a missing batch yields zero
// rather than an error.
func (s *Service) UpdateQualityCheck(ctx context.Context, batchID uint, grade string, notes string) (int64, error) {
	g, err := ledger.ParseQualityGrade(grade)
	if err != nil {
		return 0, err
	}

	var updated int64
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		n, err := repos.Batches().UpdateQuality(ctx, batchID, g, notes)
		if err != nil {
			return err
		}
		updated = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// RecordShipment validates the shipment against current inventory and, only
// when stock suffices, atomically inserts the shipment row and decrements
// the batch's balance. On any failure no partial effect remains. It returns
// the new shipment identifier.
func (s *Service) RecordShipment(ctx context.Context, in RecordShipmentInput) (uint, error) {
	shipment, err := ledger.NewShipment(in.BatchID, in.ShipmentDate, in.Quantity, in.CustomerName, in.CustomerContact)
	if err != nil {
		return 0, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.Batches().FindByID(ctx, in.BatchID); err != nil {
			return err
		}

		// Sufficiency check before any write.
		balance, err := repos.Balances().FindByBatchID(ctx, in.BatchID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrInsufficientStock
			}
			return err
		}
		if !balance.CanFulfill(shipment.Quantity) {
			return shared.ErrInsufficientStock
		}

		if err := repos.Shipments().Save(ctx, shipment); err != nil {
			return err
		}

		// The decrement is guarded in SQL so a shipment racing past the
		// check above still cannot drive the balance negative; zero rows
		// updated rolls back the shipment insert with it.
		rows, err := repos.Balances().Deduct(ctx, in.BatchID, shipment.Quantity)
		if err != nil {
			return err
		}
		if rows == 0 {
			return shared.ErrInsufficientStock
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return shipment.ID, nil
}
