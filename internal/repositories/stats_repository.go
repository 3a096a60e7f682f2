package repositories

import (
	"fmt"

	"ecomingest/internal/ingest"

	"gorm.io/gorm"
)

// StatsRepository defines read-only row counting.
type StatsRepository interface {
	CountRows(table string) (int64, error)
}

// GORMStatsRepository is a GORM implementation of StatsRepository.
type GORMStatsRepository struct {
	db *gorm.DB
}

// NewGORMStatsRepository creates a new instance of GORMStatsRepository.
func NewGORMStatsRepository(db *gorm.DB) *GORMStatsRepository {
	return &GORMStatsRepository{
		db: db,
	}
}

// CountRows returns the number of rows in table.
func (r *GORMStatsRepository) CountRows(table string) (int64, error) {
	var count int64
	if err := r.db.Table(table).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %v: %w", table, err, ingest.ErrStoreIO)
	}
	return count, nil
}
