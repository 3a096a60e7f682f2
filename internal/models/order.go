package models

// Order represents a customer order. UserID references users.id.
type Order struct {
	ID              Value `json:"id" gorm:"primaryKey;type:integer"`
	UserID          Value `json:"user_id" gorm:"type:integer;not null"`
	OrderDate       Value `json:"order_date" gorm:"type:text;not null"`
	TotalAmount     Value `json:"total_amount" gorm:"type:real;not null"`
	Status          Value `json:"status" gorm:"type:text"` // e.g., "pending", "shipped", "delivered"
	ShippingAddress Value `json:"shipping_address" gorm:"type:text"`

	User *User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

// TableName pins the table name used by the store.
func (Order) TableName() string { return "orders" }

// OrderRecord is one object of the orders document.
type OrderRecord struct {
	ID              Value `json:"id" validate:"required"`
	UserID          Value `json:"user_id" validate:"required"`
	OrderDate       Value `json:"order_date" validate:"required"`
	TotalAmount     Value `json:"total_amount" validate:"required"`
	Status          Value `json:"status"`
	ShippingAddress Value `json:"shipping_address"`
}

// ToModel builds the stored row, defaulting absent status and shipping address to "".
func (r OrderRecord) ToModel() Order {
	return Order{
		ID:              r.ID,
		UserID:          r.UserID,
		OrderDate:       r.OrderDate,
		TotalAmount:     r.TotalAmount,
		Status:          r.Status.Or(Text("")),
		ShippingAddress: r.ShippingAddress.Or(Text("")),
	}
}
