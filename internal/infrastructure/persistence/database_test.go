package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/chabatake/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("opens and migrates a sqlite store", func(t *testing.T) {
		db, err := NewDatabase(&config.DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "ledger.db"),
		})
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, db.Migrate())
		assert.NoError(t, db.Ping())

		// Migrated schema is usable straight away.
		count, err := NewGormProductionBatchRepository(db.DB).Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("rejects unknown drivers", func(t *testing.T) {
		db, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"})
		assert.Nil(t, db)
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("close releases the connection", func(t *testing.T) {
		db, err := NewDatabase(&config.DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "ledger.db"),
		})
		require.NoError(t, err)

		require.NoError(t, db.Close())
		assert.Error(t, db.Ping())
	})
}
