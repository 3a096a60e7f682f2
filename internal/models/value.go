package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Value is one JSON scalar bound to the store as it was read. The column's
// type affinity decides how it is stored, so "9.99" lands in a real column
// as 9.99 and 5550100 lands in a text column as "5550100".
//
// The zero Value is an absent key. A key present with JSON null is a
// present Value holding nil, which is stored as NULL.
type Value struct {
	v       interface{}
	present bool
}

// Int returns a present integer Value.
func Int(i int64) Value { return Value{v: i, present: true} }

// Real returns a present floating point Value.
func Real(f float64) Value { return Value{v: f, present: true} }

// Text returns a present string Value.
func Text(s string) Value { return Value{v: s, present: true} }

// Null returns a present Value holding NULL.
func Null() Value { return Value{present: true} }

// Present reports whether the key appeared in the source record.
func (v Value) Present() bool { return v.present }

// IsNull reports whether the Value is absent or JSON null.
func (v Value) IsNull() bool { return v.v == nil }

// Interface returns the underlying scalar: nil, int64, float64 or string.
// Objects and arrays come back as decoded by encoding/json.
func (v Value) Interface() interface{} { return v.v }

// Or returns v when the key was present, def otherwise.
func (v Value) Or(def Value) Value {
	if v.present {
		return v
	}
	return def
}

func (v Value) String() string {
	if v.v == nil {
		return "NULL"
	}
	return fmt.Sprint(v.v)
}

// UnmarshalJSON keeps integers as int64 where they fit and booleans as 1 or 0,
// the way SQLite stores them.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	v.present = true
	switch x := raw.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			v.v = i
		} else if f, err := x.Float64(); err == nil {
			v.v = f
		} else {
			v.v = x.String()
		}
	case bool:
		if x {
			v.v = int64(1)
		} else {
			v.v = int64(0)
		}
	default:
		v.v = raw
	}
	return nil
}

// MarshalJSON writes the scalar, or null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.v)
}

// Value implements driver.Valuer. Objects and arrays cannot be bound.
func (v Value) Value() (driver.Value, error) {
	switch x := v.v.(type) {
	case nil, int64, float64, string:
		return x, nil
	default:
		return nil, fmt.Errorf("cannot bind JSON %T to a column", x)
	}
}

// Scan implements sql.Scanner.
func (v *Value) Scan(src interface{}) error {
	v.present = true
	switch x := src.(type) {
	case []byte:
		v.v = string(x)
	case int:
		v.v = int64(x)
	case int32:
		v.v = int64(x)
	case float32:
		v.v = float64(x)
	case bool:
		if x {
			v.v = int64(1)
		} else {
			v.v = int64(0)
		}
	default:
		v.v = x
	}
	return nil
}
