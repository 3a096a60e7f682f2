package models

// User represents a customer account.
type User struct {
	ID        Value `json:"id" gorm:"primaryKey;type:integer"`
	Name      Value `json:"name" gorm:"type:text;not null"`
	Email     Value `json:"email" gorm:"type:text;not null"`
	Phone     Value `json:"phone" gorm:"type:text"`
	Address   Value `json:"address" gorm:"type:text"`
	CreatedAt Value `json:"created_at" gorm:"type:text;autoCreateTime:false"`
}

// TableName pins the table name used by the store.
func (User) TableName() string { return "users" }

// UserRecord is one object of the users document.
type UserRecord struct {
	ID        Value `json:"id" validate:"required"`
	Name      Value `json:"name" validate:"required"`
	Email     Value `json:"email" validate:"required"`
	Phone     Value `json:"phone"`
	Address   Value `json:"address"`
	CreatedAt Value `json:"created_at"`
}

// ToModel builds the stored row, defaulting absent optional fields to "".
func (r UserRecord) ToModel() User {
	return User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone.Or(Text("")),
		Address:   r.Address.Or(Text("")),
		CreatedAt: r.CreatedAt.Or(Text("")),
	}
}
