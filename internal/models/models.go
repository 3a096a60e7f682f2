// Package models defines the five stored tables and the JSON records they are loaded from.
package models

// All lists the stored models in foreign-key-safe order.
func All() []interface{} {
	return []interface{}{&User{}, &Product{}, &Order{}, &OrderItem{}, &Payment{}}
}

// TableNames lists the stored tables in foreign-key-safe order.
func TableNames() []string {
	return []string{
		User{}.TableName(),
		Product{}.TableName(),
		Order{}.TableName(),
		OrderItem{}.TableName(),
		Payment{}.TableName(),
	}
}
