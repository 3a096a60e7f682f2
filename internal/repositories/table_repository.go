package repositories

import (
	"errors"
	"fmt"

	"ecomingest/internal/ingest"
	"ecomingest/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Tabler is implemented by every stored model.
type Tabler interface {
	TableName() string
}

// TableRepository defines bulk write access to one table.
type TableRepository[M Tabler] interface {
	Table() string
	BulkCreate(rows []M) (int64, error)
}

// UserRepository, ProductRepository, OrderRepository, OrderItemRepository and
// PaymentRepository are the five table repositories.
type (
	UserRepository      = TableRepository[models.User]
	ProductRepository   = TableRepository[models.Product]
	OrderRepository     = TableRepository[models.Order]
	OrderItemRepository = TableRepository[models.OrderItem]
	PaymentRepository   = TableRepository[models.Payment]
)

// GORMTableRepository is a GORM implementation of TableRepository.
type GORMTableRepository[M Tabler] struct {
	db *gorm.DB
}

// NewGORMTableRepository creates a repository writing to M's table.
func NewGORMTableRepository[M Tabler](db *gorm.DB) *GORMTableRepository[M] {
	return &GORMTableRepository[M]{
		db: db,
	}
}

// NewGORMUserRepository creates the users repository.
func NewGORMUserRepository(db *gorm.DB) *GORMTableRepository[models.User] {
	return NewGORMTableRepository[models.User](db)
}

// NewGORMProductRepository creates the products repository.
func NewGORMProductRepository(db *gorm.DB) *GORMTableRepository[models.Product] {
	return NewGORMTableRepository[models.Product](db)
}

// NewGORMOrderRepository creates the orders repository.
func NewGORMOrderRepository(db *gorm.DB) *GORMTableRepository[models.Order] {
	return NewGORMTableRepository[models.Order](db)
}

// NewGORMOrderItemRepository creates the order_items repository.
func NewGORMOrderItemRepository(db *gorm.DB) *GORMTableRepository[models.OrderItem] {
	return NewGORMTableRepository[models.OrderItem](db)
}

// NewGORMPaymentRepository creates the payments repository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMTableRepository[models.Payment] {
	return NewGORMTableRepository[models.Payment](db)
}

// Table returns the name of the table this repository writes.
func (r *GORMTableRepository[M]) Table() string {
	var m M
	return m.TableName()
}

// maxBindVars is SQLite's smallest compiled-in limit on bound parameters
// per statement.
const maxBindVars = 999

// BulkCreate inserts rows in one transaction and commits it. Without a
// configured batch size the rows are split into statements that stay under
// maxBindVars. A constraint failure rolls the transaction back and wraps
// ingest.ErrConstraintViolation; any other failure wraps ingest.ErrStoreIO.
func (r *GORMTableRepository[M]) BulkCreate(rows []M) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batchSize := r.db.CreateBatchSize
	if batchSize <= 0 {
		batchSize = r.defaultBatchSize()
	}

	var inserted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Omit(clause.Associations).CreateInBatches(&rows, batchSize)
		inserted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
			return 0, fmt.Errorf("failed to insert into %s: %v: %w", r.Table(), err, ingest.ErrConstraintViolation)
		}
		return 0, fmt.Errorf("failed to insert into %s: %v: %w", r.Table(), err, ingest.ErrStoreIO)
	}
	return inserted, nil
}

func (r *GORMTableRepository[M]) defaultBatchSize() int {
	stmt := &gorm.Statement{DB: r.db}
	if err := stmt.Parse(new(M)); err != nil || len(stmt.Schema.DBNames) == 0 {
		return 100
	}
	return maxBindVars / len(stmt.Schema.DBNames)
}
