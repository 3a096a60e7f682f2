package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"ecomingest/internal/ingest"
	"ecomingest/internal/models"
	"ecomingest/internal/repositories"
	"ecomingest/internal/source"

	"github.com/go-playground/validator/v10"
)

// Loader maps the records of one document into rows of one table.
type Loader interface {
	Table() string
	Load(records []source.Record) (int64, error)
}

// Mappable is a decoded record that knows its stored row.
type Mappable[M any] interface {
	ToModel() M
}

// TableLoader decodes records into R, checks R's required fields and bulk
// inserts the mapped rows through repo.
type TableLoader[R Mappable[M], M repositories.Tabler] struct {
	repo     repositories.TableRepository[M]
	validate *validator.Validate
}

// NewTableLoader creates a loader writing through repo.
func NewTableLoader[R Mappable[M], M repositories.Tabler](repo repositories.TableRepository[M], validate *validator.Validate) *TableLoader[R, M] {
	return &TableLoader[R, M]{
		repo:     repo,
		validate: validate,
	}
}

// NewUserLoader creates the users loader.
func NewUserLoader(repo repositories.UserRepository, validate *validator.Validate) *TableLoader[models.UserRecord, models.User] {
	return NewTableLoader[models.UserRecord](repo, validate)
}

// NewProductLoader creates the products loader.
func NewProductLoader(repo repositories.ProductRepository, validate *validator.Validate) *TableLoader[models.ProductRecord, models.Product] {
	return NewTableLoader[models.ProductRecord](repo, validate)
}

// NewOrderLoader creates the orders loader.
func NewOrderLoader(repo repositories.OrderRepository, validate *validator.Validate) *TableLoader[models.OrderRecord, models.Order] {
	return NewTableLoader[models.OrderRecord](repo, validate)
}

// NewOrderItemLoader creates the order_items loader.
func NewOrderItemLoader(repo repositories.OrderItemRepository, validate *validator.Validate) *TableLoader[models.OrderItemRecord, models.OrderItem] {
	return NewTableLoader[models.OrderItemRecord](repo, validate)
}

// NewPaymentLoader creates the payments loader.
func NewPaymentLoader(repo repositories.PaymentRepository, validate *validator.Validate) *TableLoader[models.PaymentRecord, models.Payment] {
	return NewTableLoader[models.PaymentRecord](repo, validate)
}

// NewValidator returns a validator that reports fields by their JSON key.
// A models.Value satisfies "required" when its key is present and not null.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if value, ok := field.Interface().(models.Value); ok && value.Present() && !value.IsNull() {
			return true
		}
		return nil
	}, models.Value{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Table returns the destination table.
func (l *TableLoader[R, M]) Table() string {
	return l.repo.Table()
}

// Load maps every record before inserting any of them, so a bad record
// leaves the table untouched. Empty input is a no-op.
func (l *TableLoader[R, M]) Load(records []source.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	rows := make([]M, 0, len(records))
	for i, record := range records {
		row, err := l.mapRecord(record)
		if err != nil {
			return 0, fmt.Errorf("%s record %d: %w", l.Table(), i, err)
		}
		rows = append(rows, row)
	}

	return l.repo.BulkCreate(rows)
}

func (l *TableLoader[R, M]) mapRecord(record source.Record) (M, error) {
	var (
		decoded R
		zero    M
	)

	raw, err := json.Marshal(record)
	if err != nil {
		return zero, fmt.Errorf("failed to encode record: %w", err)
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return zero, fmt.Errorf("failed to decode record: %w", err)
	}

	if err := l.validate.Struct(decoded); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fe := range validationErrs {
				fields = append(fields, fe.Field())
			}
			return zero, fmt.Errorf("%s: %w", strings.Join(fields, ", "), ingest.ErrMissingRequiredField)
		}
		return zero, fmt.Errorf("failed to validate record: %w", err)
	}

	return decoded.ToModel(), nil
}
