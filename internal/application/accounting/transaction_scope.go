package accounting

import (
	"context"

	"github.com/chabatake/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the ledger repositories.
// All repository operations performed inside Execute share one database
// transaction and are committed or rolled back as a unit.
type TransactionScope interface {
	// Execute runs the given function within a transaction. If the function
	// returns an error the transaction is rolled back, otherwise committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the ledger repositories scoped to the
// current transaction.
type TransactionalRepositories interface {
	// Batches returns the production batch repository
	Batches() ledger.ProductionBatchRepository
	// Balances returns the inventory balance repository
	Balances() ledger.InventoryBalanceRepository
	// Shipments returns the shipment repository
	Shipments() ledger.ShipmentRepository
}

// NoOpTransactionScope runs the function directly against the given
// repositories without a real transaction. Useful in unit tests.
type NoOpTransactionScope struct {
	batchRepo    ledger.ProductionBatchRepository
	balanceRepo  ledger.InventoryBalanceRepository
	shipmentRepo ledger.ShipmentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	batchRepo ledger.ProductionBatchRepository,
	balanceRepo ledger.InventoryBalanceRepository,
	shipmentRepo ledger.ShipmentRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		batchRepo:    batchRepo,
		balanceRepo:  balanceRepo,
		shipmentRepo: shipmentRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Batches returns the production batch repository.
func (s *NoOpTransactionScope) Batches() ledger.ProductionBatchRepository {
	return s.batchRepo
}

// Balances returns the inventory balance repository.
func (s *NoOpTransactionScope) Balances() ledger.InventoryBalanceRepository {
	return s.balanceRepo
}

// Shipments returns the shipment repository.
func (s *NoOpTransactionScope) Shipments() ledger.ShipmentRepository {
	return s.shipmentRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
