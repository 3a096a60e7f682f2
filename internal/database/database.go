// Package database creates the destination store and its schema.
package database

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"ecomingest/internal/config"
	"ecomingest/internal/ingest"
	"ecomingest/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Recreate wipes any previous store described by cfg, opens a fresh one and
// creates the five tables. Progress lines are written to out.
// Every failure wraps ingest.ErrStoreIO.
func Recreate(cfg config.Config, out io.Writer, logger zerolog.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "", "sqlite":
		db, err = recreateSQLite(cfg, out, logger)
	case "postgres":
		db, err = recreatePostgres(cfg, out, logger)
	default:
		err = fmt.Errorf("unsupported database driver %q: %w", cfg.DBDriver, ingest.ErrStoreIO)
	}
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "\nCreating database tables...")
	if err := CreateSchema(db); err != nil {
		_ = Close(db)
		return nil, err
	}
	fmt.Fprintln(out, "Created all tables successfully")
	return db, nil
}

// CreateSchema creates users, products, orders, order_items and payments
// with their declared foreign keys.
func CreateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to create tables: %v: %w", err, ingest.ErrStoreIO)
	}
	return nil
}

// Close releases the underlying connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

func recreateSQLite(cfg config.Config, out io.Writer, logger zerolog.Logger) (*gorm.DB, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("database path is required: %w", ingest.ErrStoreIO)
	}
	if err := os.Remove(cfg.DBPath); err == nil {
		fmt.Fprintf(out, "Removed existing database: %s\n", cfg.DBPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove existing database %s: %v: %w", cfg.DBPath, err, ingest.ErrStoreIO)
	}

	fk := "off"
	if cfg.EnforceForeignKeys {
		fk = "on"
	}
	dsn := fmt.Sprintf("%s?_foreign_keys=%s", cfg.DBPath, fk)
	db, err := open(sqlite.Open(dsn), cfg, logger)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Created database: %s\n", cfg.DBPath)
	return db, nil
}

func recreatePostgres(cfg config.Config, out io.Writer, logger zerolog.Logger) (*gorm.DB, error) {
	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required for postgres: %w", ingest.ErrStoreIO)
	}
	db, err := open(postgres.Open(cfg.DatabaseDSN), cfg, logger)
	if err != nil {
		return nil, err
	}

	// There is no file to delete; drop the tables dependents first.
	all := models.All()
	reversed := make([]interface{}, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		reversed = append(reversed, all[i])
	}
	if err := db.Migrator().DropTable(reversed...); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("failed to drop existing tables: %v: %w", err, ingest.ErrStoreIO)
	}
	fmt.Fprintln(out, "Removed existing tables")
	fmt.Fprintln(out, "Created database: postgres")
	return db, nil
}

func open(dialector gorm.Dialector, cfg config.Config, logger zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError:  true,
		CreateBatchSize: cfg.BatchSize,
		Logger:          NewLogger(logger),
		// Postgres always enforces declared keys, so advisory mode means not declaring them.
		DisableForeignKeyConstraintWhenMigrating: cfg.DBDriver == "postgres" && !cfg.EnforceForeignKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v: %w", err, ingest.ErrStoreIO)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %v: %w", err, ingest.ErrStoreIO)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %v: %w", err, ingest.ErrStoreIO)
	}
	return db, nil
}
