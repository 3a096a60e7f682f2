package models

// Product represents an item in the catalogue.
type Product struct {
	ID          Value `json:"id" gorm:"primaryKey;type:integer"`
	Name        Value `json:"name" gorm:"type:text;not null"`
	Description Value `json:"description" gorm:"type:text"`
	Price       Value `json:"price" gorm:"type:real;not null"`
	Category    Value `json:"category" gorm:"type:text"`
	Stock       Value `json:"stock" gorm:"type:integer"`
	ImageURL    Value `json:"image_url" gorm:"column:image_url;type:text"`
	CreatedAt   Value `json:"created_at" gorm:"type:text;autoCreateTime:false"`
}

// TableName pins the table name used by the store.
func (Product) TableName() string { return "products" }

// ProductRecord is one object of the products document.
type ProductRecord struct {
	ID          Value `json:"id" validate:"required"`
	Name        Value `json:"name" validate:"required"`
	Description Value `json:"description"`
	Price       Value `json:"price" validate:"required"`
	Category    Value `json:"category"`
	Stock       Value `json:"stock"`
	ImageURL    Value `json:"image_url"`
	CreatedAt   Value `json:"created_at"`
}

// ToModel builds the stored row. Absent stock becomes 0, other absent
// optional fields become "".
func (r ProductRecord) ToModel() Product {
	return Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.Or(Text("")),
		Price:       r.Price,
		Category:    r.Category.Or(Text("")),
		Stock:       r.Stock.Or(Int(0)),
		ImageURL:    r.ImageURL.Or(Text("")),
		CreatedAt:   r.CreatedAt.Or(Text("")),
	}
}
