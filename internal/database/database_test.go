package database_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ecomingest/internal/config"
	"ecomingest/internal/database"
	"ecomingest/internal/ingest"
	"ecomingest/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		DBDriver:           "sqlite",
		DBPath:             filepath.Join(t.TempDir(), "ecom.db"),
		EnforceForeignKeys: true,
	}
}

func TestRecreate_CreatesSchema(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	db, err := database.Recreate(cfg, &out, zerolog.Nop())
	require.NoError(t, err)
	defer database.Close(db)

	for _, table := range models.TableNames() {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
	assert.Contains(t, out.String(), "Created database: "+cfg.DBPath)
	assert.Contains(t, out.String(), "Created all tables successfully")
	assert.NotContains(t, out.String(), "Removed existing database")
	assert.FileExists(t, cfg.DBPath)
}

func TestRecreate_RemovesExistingStore(t *testing.T) {
	cfg := testConfig(t)

	db, err := database.Recreate(cfg, &bytes.Buffer{}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{ID: models.Int(1), Name: models.Text("A"), Email: models.Text("a@x.com")}).Error)
	require.NoError(t, database.Close(db))

	var out bytes.Buffer
	db, err = database.Recreate(cfg, &out, zerolog.Nop())
	require.NoError(t, err)
	defer database.Close(db)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Contains(t, out.String(), "Removed existing database: "+cfg.DBPath)
}

func TestRecreate_ReplacesNonDatabaseFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.DBPath, []byte("not a database"), 0o644))

	db, err := database.Recreate(cfg, &bytes.Buffer{}, zerolog.Nop())
	require.NoError(t, err)
	defer database.Close(db)

	assert.True(t, db.Migrator().HasTable("payments"))
}

func TestRecreate_EnforcesForeignKeys(t *testing.T) {
	db, err := database.Recreate(testConfig(t), &bytes.Buffer{}, zerolog.Nop())
	require.NoError(t, err)
	defer database.Close(db)

	err = db.Create(&models.Order{ID: models.Int(1), UserID: models.Int(99), OrderDate: models.Text("2024-01-01"), TotalAmount: models.Real(1)}).Error
	assert.True(t, errors.Is(err, gorm.ErrForeignKeyViolated), "got %v", err)
}

func TestRecreate_AdvisoryForeignKeys(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnforceForeignKeys = false

	db, err := database.Recreate(cfg, &bytes.Buffer{}, zerolog.Nop())
	require.NoError(t, err)
	defer database.Close(db)

	assert.NoError(t, db.Create(&models.Order{ID: models.Int(1), UserID: models.Int(99), OrderDate: models.Text("2024-01-01"), TotalAmount: models.Real(1)}).Error)
}

func TestRecreate_StoreErrors(t *testing.T) {
	cases := map[string]config.Config{
		"unknown driver":       {DBDriver: "oracle", DBPath: "ecom.db"},
		"empty path":           {DBDriver: "sqlite"},
		"missing directory":    {DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "missing", "ecom.db")},
		"postgres without dsn": {DBDriver: "postgres"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			db, err := database.Recreate(cfg, &bytes.Buffer{}, zerolog.Nop())

			assert.Nil(t, db)
			assert.ErrorIs(t, err, ingest.ErrStoreIO)
		})
	}
}

func TestClose_Nil(t *testing.T) {
	assert.NoError(t, database.Close(nil))
}
