package models

// Payment records money received against an order.
type Payment struct {
	ID            Value `json:"id" gorm:"primaryKey;type:integer"`
	OrderID       Value `json:"order_id" gorm:"type:integer;not null"`
	PaymentMethod Value `json:"payment_method" gorm:"type:text"`
	Amount        Value `json:"amount" gorm:"type:real;not null"`
	PaymentStatus Value `json:"payment_status" gorm:"type:text"`
	TransactionID Value `json:"transaction_id" gorm:"type:text"`
	PaymentDate   Value `json:"payment_date" gorm:"type:text"` // NULL when the source omits it

	Order *Order `json:"-" gorm:"foreignKey:OrderID;references:ID"`
}

// TableName pins the table name used by the store.
func (Payment) TableName() string { return "payments" }

// PaymentRecord is one object of the payments document.
type PaymentRecord struct {
	ID            Value `json:"id" validate:"required"`
	OrderID       Value `json:"order_id" validate:"required"`
	PaymentMethod Value `json:"payment_method"`
	Amount        Value `json:"amount" validate:"required"`
	PaymentStatus Value `json:"payment_status"`
	TransactionID Value `json:"transaction_id"`
	PaymentDate   Value `json:"payment_date"`
}

// ToModel builds the stored row. An absent payment date is stored as NULL.
func (r PaymentRecord) ToModel() Payment {
	return Payment{
		ID:            r.ID,
		OrderID:       r.OrderID,
		PaymentMethod: r.PaymentMethod.Or(Text("")),
		Amount:        r.Amount,
		PaymentStatus: r.PaymentStatus.Or(Text("")),
		TransactionID: r.TransactionID.Or(Text("")),
		PaymentDate:   r.PaymentDate.Or(Null()),
	}
}
