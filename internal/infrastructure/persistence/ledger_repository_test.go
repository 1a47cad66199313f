package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/chabatake/backend/internal/application/accounting"
	"github.com/chabatake/backend/internal/domain/ledger"
	"github.com/chabatake/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&ledger.ProductionBatch{},
		&ledger.InventoryBalance{},
		&ledger.Shipment{},
	)
	require.NoError(t, err)

	return db
}

func mustCreateBatch(t *testing.T, db *gorm.DB, category ledger.TeaCategory, quantity string, date time.Time) *ledger.ProductionBatch {
	t.Helper()

	batch, err := ledger.NewProductionBatch(category, date, decimal.RequireFromString(quantity), nil)
	require.NoError(t, err)
	require.NoError(t, NewGormProductionBatchRepository(db).Save(context.Background(), batch))

	balance := ledger.NewInventoryBalance(batch)
	require.NoError(t, NewGormInventoryBalanceRepository(db).Save(context.Background(), balance))

	return batch
}

func TestGormProductionBatchRepository(t *testing.T) {
	t.Run("save assigns sequential IDs", func(t *testing.T) {
		db := setupLedgerTestDB(t)

		first := mustCreateBatch(t, db, ledger.CategorySencha, "100", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
		second := mustCreateBatch(t, db, ledger.CategoryMatcha, "25.5", time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, uint(1), first.ID)
		assert.Equal(t, uint(2), second.ID)
	})

	t.Run("find by id round-trips fields", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormProductionBatchRepository(db)

		created := mustCreateBatch(t, db, ledger.CategoryGyokuro, "12.75", time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))

		found, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.CategoryGyokuro, found.TeaCategory)
		assert.True(t, found.Quantity.Equal(decimal.RequireFromString("12.75")))
		assert.Nil(t, found.QualityGrade)
	})

	t.Run("find by id returns ErrNotFound for missing batch", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormProductionBatchRepository(db)

		found, err := repo.FindByID(context.Background(), 999)
		assert.Nil(t, found)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("find all orders by production date descending", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormProductionBatchRepository(db)

		older := mustCreateBatch(t, db, ledger.CategorySencha, "10", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		newer := mustCreateBatch(t, db, ledger.CategorySencha, "20", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

		batches, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, batches, 2)
		assert.Equal(t, newer.ID, batches[0].ID)
		assert.Equal(t, older.ID, batches[1].ID)
	})

	t.Run("update quality sets grade and notes", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormProductionBatchRepository(db)

		batch := mustCreateBatch(t, db, ledger.CategoryHojicha, "30", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

		rows, err := repo.UpdateQuality(context.Background(), batch.ID, ledger.GradeA, "excellent aroma")
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		found, err := repo.FindByID(context.Background(), batch.ID)
		require.NoError(t, err)
		require.NotNil(t, found.QualityGrade)
		assert.Equal(t, ledger.GradeA, *found.QualityGrade)
		assert.Equal(t, "excellent aroma", found.QualityNotes)
	})

	t.Run("update quality reports zero rows for missing batch", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormProductionBatchRepository(db)

		rows, err := repo.UpdateQuality(context.Background(), 42, ledger.GradeB, "")
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})
}

func TestGormInventoryBalanceRepository_Deduct(t *testing.T) {
	t.Run("deducts within available stock", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormInventoryBalanceRepository(db)

		batch := mustCreateBatch(t, db, ledger.CategorySencha, "100", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

		rows, err := repo.Deduct(context.Background(), batch.ID, decimal.RequireFromString("40"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		balance, err := repo.FindByBatchID(context.Background(), batch.ID)
		require.NoError(t, err)
		assert.True(t, balance.Quantity.Equal(decimal.RequireFromString("60")),
			"expected 60, got %s", balance.Quantity)
	})

	t.Run("refuses to deduct past zero", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormInventoryBalanceRepository(db)

		batch := mustCreateBatch(t, db, ledger.CategorySencha, "100", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

		rows, err := repo.Deduct(context.Background(), batch.ID, decimal.RequireFromString("1000"))
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)

		balance, err := repo.FindByBatchID(context.Background(), batch.ID)
		require.NoError(t, err)
		assert.True(t, balance.Quantity.Equal(decimal.RequireFromString("100")))
	})

	t.Run("deducting exactly the balance leaves zero", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormInventoryBalanceRepository(db)

		batch := mustCreateBatch(t, db, ledger.CategoryMatcha, "5.25", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

		rows, err := repo.Deduct(context.Background(), batch.ID, decimal.RequireFromString("5.25"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		balance, err := repo.FindByBatchID(context.Background(), batch.ID)
		require.NoError(t, err)
		assert.True(t, balance.Quantity.IsZero())
	})

	t.Run("reports zero rows for unknown batch", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormInventoryBalanceRepository(db)

		rows, err := repo.Deduct(context.Background(), 999, decimal.RequireFromString("1"))
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})
}

func TestGormShipmentRepository(t *testing.T) {
	t.Run("save and find all ordered by shipment date", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormShipmentRepository(db)

		batch := mustCreateBatch(t, db, ledger.CategorySencha, "100", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

		older, err := ledger.NewShipment(batch.ID, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("10"), "Customer A", "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), older))

		newer, err := ledger.NewShipment(batch.ID, time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("20"), "Customer B", "b@example.com")
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), newer))

		shipments, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, shipments, 2)
		assert.Equal(t, "Customer B", shipments[0].CustomerName)
		assert.Equal(t, "Customer A", shipments[1].CustomerName)

		count, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("find by id returns ErrNotFound for missing shipment", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormShipmentRepository(db)

		found, err := repo.FindByID(context.Background(), 7)
		assert.Nil(t, found)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormTransactionScope(t *testing.T) {
	t.Run("commits all writes together", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		scope := NewGormTransactionScope(db)

		err := scope.Execute(context.Background(), func(repos accounting.TransactionalRepositories) error {
			batch, err := ledger.NewProductionBatch(ledger.CategorySencha, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("50"), nil)
			if err != nil {
				return err
			}
			if err := repos.Batches().Save(context.Background(), batch); err != nil {
				return err
			}
			return repos.Balances().Save(context.Background(), ledger.NewInventoryBalance(batch))
		})
		require.NoError(t, err)

		count, err := NewGormProductionBatchRepository(db).Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		balances, err := NewGormInventoryBalanceRepository(db).FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.True(t, balances[0].Quantity.Equal(decimal.RequireFromString("50")))
	})

	t.Run("rolls back every write when the callback fails", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		scope := NewGormTransactionScope(db)

		err := scope.Execute(context.Background(), func(repos accounting.TransactionalRepositories) error {
			batch, err := ledger.NewProductionBatch(ledger.CategorySencha, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("50"), nil)
			if err != nil {
				return err
			}
			if err := repos.Batches().Save(context.Background(), batch); err != nil {
				return err
			}
			return shared.ErrInsufficientStock
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		count, err := NewGormProductionBatchRepository(db).Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

// TestShipmentLifecycle walks the produce-ship-reject sequence end to end
// against a real store: 100 kg produced, 40 shipped, then an oversized
// shipment attempt that must leave everything unchanged.
func TestShipmentLifecycle(t *testing.T) {
	db := setupLedgerTestDB(t)
	ctx := context.Background()

	batchRepo := NewGormProductionBatchRepository(db)
	balanceRepo := NewGormInventoryBalanceRepository(db)
	shipmentRepo := NewGormShipmentRepository(db)

	batch := mustCreateBatch(t, db, ledger.CategorySencha, "100", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	// Ship 40 of 100.
	shipment, err := ledger.NewShipment(batch.ID, time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("40"), "Customer A", "")
	require.NoError(t, err)
	require.NoError(t, shipmentRepo.Save(ctx, shipment))

	rows, err := balanceRepo.Deduct(ctx, batch.ID, decimal.RequireFromString("40"))
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	balance, err := balanceRepo.FindByBatchID(ctx, batch.ID)
	require.NoError(t, err)
	assert.True(t, balance.Quantity.Equal(decimal.RequireFromString("60")))

	// An oversized deduction must not change the balance.
	rows, err = balanceRepo.Deduct(ctx, batch.ID, decimal.RequireFromString("1000"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	balance, err = balanceRepo.FindByBatchID(ctx, batch.ID)
	require.NoError(t, err)
	assert.True(t, balance.Quantity.Equal(decimal.RequireFromString("60")))

	count, err := shipmentRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = batchRepo.FindByID(ctx, batch.ID)
	require.NoError(t, err)
}
