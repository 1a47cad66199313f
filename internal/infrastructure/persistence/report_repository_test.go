package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/chabatake/backend/internal/domain/ledger"
	"github.com/chabatake/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

// seedReportFixtures loads two sencha batches (one graded A, one ungraded),
// one matcha batch, and a 40 kg shipment against the first sencha batch.
func seedReportFixtures(t *testing.T, db *gorm.DB) (senchaA, senchaPlain, matcha *ledger.ProductionBatch) {
	t.Helper()
	ctx := context.Background()

	senchaA = mustCreateBatch(t, db, ledger.CategorySencha, "100", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	_, err := NewGormProductionBatchRepository(db).UpdateQuality(ctx, senchaA.ID, ledger.GradeA, "spring pick")
	require.NoError(t, err)

	senchaPlain = mustCreateBatch(t, db, ledger.CategorySencha, "50", time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC))
	matcha = mustCreateBatch(t, db, ledger.CategoryMatcha, "20", time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC))

	shipment, err := ledger.NewShipment(senchaA.ID, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("40"), "Customer A", "")
	require.NoError(t, err)
	require.NoError(t, NewGormShipmentRepository(db).Save(ctx, shipment))

	rows, err := NewGormInventoryBalanceRepository(db).Deduct(ctx, senchaA.ID, decimal.RequireFromString("40"))
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	return senchaA, senchaPlain, matcha
}

func TestGormLedgerReportRepository_InventoryReport(t *testing.T) {
	t.Run("lists batches with stock and their grades", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormLedgerReportRepository(db)

		senchaA, _, _ := seedReportFixtures(t, db)

		rows, err := repo.InventoryReport(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 3)

		byBatch := make(map[uint]report.InventoryRow, len(rows))
		for _, row := range rows {
			byBatch[row.BatchID] = row
		}

		shipped := byBatch[senchaA.ID]
		assert.Equal(t, ledger.CategorySencha, shipped.TeaCategory)
		assert.True(t, shipped.CurrentStock.Equal(decimal.RequireFromString("60")))
		require.NotNil(t, shipped.QualityGrade)
		assert.Equal(t, "A", *shipped.QualityGrade)
	})

	t.Run("omits batches with zero stock", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormLedgerReportRepository(db)

		batch := mustCreateBatch(t, db, ledger.CategoryHojicha, "10", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
		rows, err := NewGormInventoryBalanceRepository(db).Deduct(context.Background(), batch.ID, decimal.RequireFromString("10"))
		require.NoError(t, err)
		require.Equal(t, int64(1), rows)

		result, err := repo.InventoryReport(context.Background())
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestGormLedgerReportRepository_ShipmentHistory(t *testing.T) {
	t.Run("joins shipments with their batch category", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormLedgerReportRepository(db)

		seedReportFixtures(t, db)

		rows, err := repo.ShipmentHistory(context.Background(), report.DateRange{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, ledger.CategorySencha, rows[0].TeaCategory)
		assert.Equal(t, "Customer A", rows[0].CustomerName)
		assert.True(t, rows[0].Quantity.Equal(decimal.RequireFromString("40")))
	})

	t.Run("filters by inclusive date range", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormLedgerReportRepository(db)

		seedReportFixtures(t, db)

		inRange, err := repo.ShipmentHistory(context.Background(), report.DateRange{
			Start: timePtr(time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)),
			End:   timePtr(time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)),
		})
		require.NoError(t, err)
		assert.Len(t, inRange, 1)

		before, err := repo.ShipmentHistory(context.Background(), report.DateRange{
			End: timePtr(time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC)),
		})
		require.NoError(t, err)
		assert.Empty(t, before)

		after, err := repo.ShipmentHistory(context.Background(), report.DateRange{
			Start: timePtr(time.Date(2024, 4, 16, 0, 0, 0, 0, time.UTC)),
		})
		require.NoError(t, err)
		assert.Empty(t, after)
	})
}

func TestGormLedgerReportRepository_QualityReport(t *testing.T) {
	t.Run("includes batches without a balance row", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormLedgerReportRepository(db)
		ctx := context.Background()

		// A batch saved without its balance, as if the balance row were lost.
		orphan, err := ledger.NewProductionBatch(ledger.CategoryGyokuro, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("8"), nil)
		require.NoError(t, err)
		require.NoError(t, NewGormProductionBatchRepository(db).Save(ctx, orphan))

		rows, err := repo.QualityReport(ctx, report.DateRange{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, ledger.CategoryGyokuro, rows[0].TeaCategory)
		assert.False(t, rows[0].CurrentStock.Valid)
	})

	t.Run("filters by production date and orders most recent first", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormLedgerReportRepository(db)

		seedReportFixtures(t, db)

		rows, err := repo.QualityReport(context.Background(), report.DateRange{
			Start: timePtr(time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)),
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, ledger.CategorySencha, rows[0].TeaCategory)
		assert.Equal(t, ledger.CategoryMatcha, rows[1].TeaCategory)
		assert.True(t, rows[0].CurrentStock.Valid)
	})
}

func TestGormLedgerReportRepository_Summary(t *testing.T) {
	t.Run("aggregates per category", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormLedgerReportRepository(db)

		seedReportFixtures(t, db)

		rows, err := repo.Summary(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 2)

		byCategory := make(map[ledger.TeaCategory]report.SummaryRow, len(rows))
		for _, row := range rows {
			byCategory[row.TeaCategory] = row
		}

		sencha := byCategory[ledger.CategorySencha]
		assert.Equal(t, int64(2), sencha.TotalProductions)
		assert.True(t, sencha.TotalProductionQuantity.Equal(decimal.RequireFromString("150")))
		assert.Equal(t, int64(1), sencha.TotalShipments)
		assert.True(t, sencha.TotalShipmentQuantity.Equal(decimal.RequireFromString("40")))
		assert.True(t, sencha.CurrentStock.Equal(decimal.RequireFromString("110")))
		assert.True(t, sencha.QualityAPercentage.Equal(decimal.RequireFromString("50")),
			"expected 50, got %s", sencha.QualityAPercentage)

		matcha := byCategory[ledger.CategoryMatcha]
		assert.Equal(t, int64(1), matcha.TotalProductions)
		assert.Equal(t, int64(0), matcha.TotalShipments)
		assert.True(t, matcha.TotalShipmentQuantity.IsZero())
		assert.True(t, matcha.CurrentStock.Equal(decimal.RequireFromString("20")))
		assert.True(t, matcha.QualityAPercentage.IsZero())
	})

	t.Run("returns no rows for an empty ledger", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		repo := NewGormLedgerReportRepository(db)

		rows, err := repo.Summary(context.Background())
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
