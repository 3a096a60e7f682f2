package models

// OrderItem is a single line of an order.
type OrderItem struct {
	ID        Value `json:"id" gorm:"primaryKey;type:integer"`
	OrderID   Value `json:"order_id" gorm:"type:integer;not null"`
	ProductID Value `json:"product_id" gorm:"type:integer;not null"`
	Quantity  Value `json:"quantity" gorm:"type:integer;not null"`
	Price     Value `json:"price" gorm:"type:real;not null"` // Price at the time of order
	Subtotal  Value `json:"subtotal" gorm:"type:real;not null"`

	Order   *Order   `json:"-" gorm:"foreignKey:OrderID;references:ID"`
	Product *Product `json:"-" gorm:"foreignKey:ProductID;references:ID"`
}

// TableName pins the table name used by the store.
func (OrderItem) TableName() string { return "order_items" }

// OrderItemRecord is one object of the order_items document. Every field is required.
type OrderItemRecord struct {
	ID        Value `json:"id" validate:"required"`
	OrderID   Value `json:"order_id" validate:"required"`
	ProductID Value `json:"product_id" validate:"required"`
	Quantity  Value `json:"quantity" validate:"required"`
	Price     Value `json:"price" validate:"required"`
	Subtotal  Value `json:"subtotal" validate:"required"`
}

// ToModel builds the stored row.
func (r OrderItemRecord) ToModel() OrderItem {
	return OrderItem{
		ID:        r.ID,
		OrderID:   r.OrderID,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Price:     r.Price,
		Subtotal:  r.Subtotal,
	}
}
