package persistence

import (
	"context"

	"github.com/chabatake/backend/internal/application/accounting"
	"github.com/chabatake/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormTransactionScope implements accounting.TransactionScope using GORM
// transactions. Every repository handed to the callback is bound to the
// same transaction, so a returned error rolls back all writes together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos accounting.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Batches() ledger.ProductionBatchRepository {
	return NewGormProductionBatchRepository(r.tx)
}

func (r *gormTransactionalRepositories) Balances() ledger.InventoryBalanceRepository {
	return NewGormInventoryBalanceRepository(r.tx)
}

func (r *gormTransactionalRepositories) Shipments() ledger.ShipmentRepository {
	return NewGormShipmentRepository(r.tx)
}

// Ensure interfaces are implemented
var (
	_ accounting.TransactionScope          = (*GormTransactionScope)(nil)
	_ accounting.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
