package models_test

import (
	"encoding/json"
	"testing"

	"ecomingest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode[R any](t *testing.T, doc string) R {
	t.Helper()
	var r R
	require.NoError(t, json.Unmarshal([]byte(doc), &r))
	return r
}

func TestUserRecord_ToModelDefaults(t *testing.T) {
	user := decode[models.UserRecord](t, `{"id":1,"name":"A","email":"a@x.com"}`).ToModel()

	assert.Equal(t, models.User{
		ID:        models.Int(1),
		Name:      models.Text("A"),
		Email:     models.Text("a@x.com"),
		Phone:     models.Text(""),
		Address:   models.Text(""),
		CreatedAt: models.Text(""),
	}, user)
}

func TestUserRecord_ToModelKeepsExplicitNull(t *testing.T) {
	user := decode[models.UserRecord](t, `{"id":1,"name":"A","email":"a@x.com","phone":null}`).ToModel()

	assert.Equal(t, models.Null(), user.Phone)
	assert.Equal(t, models.Text(""), user.Address)
}

func TestProductRecord_ToModelDefaults(t *testing.T) {
	product := decode[models.ProductRecord](t, `{"id":1,"name":"Widget","price":9.99}`).ToModel()

	assert.Equal(t, models.Int(0), product.Stock)
	assert.Equal(t, models.Real(9.99), product.Price)
	assert.Equal(t, models.Text(""), product.Description)
	assert.Equal(t, models.Text(""), product.ImageURL)
}

func TestProductRecord_ToModelKeepsValuesAsGiven(t *testing.T) {
	product := decode[models.ProductRecord](t,
		`{"id":2,"name":"Mouse","price":"25.00","stock":"50","category":"peripherals","image_url":"/img/mouse.png"}`).ToModel()

	assert.Equal(t, models.Text("25.00"), product.Price)
	assert.Equal(t, models.Text("50"), product.Stock)
	assert.Equal(t, models.Text("peripherals"), product.Category)
}

func TestOrderRecord_ToModelDefaults(t *testing.T) {
	order := decode[models.OrderRecord](t, `{"id":10,"user_id":1,"order_date":"2024-01-01","total_amount":19.98}`).ToModel()

	assert.Equal(t, models.Int(1), order.UserID)
	assert.Equal(t, models.Text(""), order.Status)
	assert.Equal(t, models.Text(""), order.ShippingAddress)
	assert.Nil(t, order.User)
}

func TestPaymentRecord_ToModelDate(t *testing.T) {
	payment := decode[models.PaymentRecord](t, `{"id":1,"order_id":10,"amount":19.98}`).ToModel()
	assert.True(t, payment.PaymentDate.IsNull())
	assert.Equal(t, models.Text(""), payment.PaymentMethod)

	dated := decode[models.PaymentRecord](t, `{"id":2,"order_id":10,"amount":1,"payment_date":"2024-01-02"}`).ToModel()
	assert.Equal(t, models.Text("2024-01-02"), dated.PaymentDate)
}

func TestValue_UnmarshalJSON(t *testing.T) {
	cases := map[string]models.Value{
		`5550100`: models.Int(5550100),
		`2.5`:     models.Real(2.5),
		`1e3`:     models.Real(1000),
		`"9.99"`:  models.Text("9.99"),
		`true`:    models.Int(1),
		`false`:   models.Int(0),
		`null`:    models.Null(),
	}
	for doc, expected := range cases {
		var v models.Value
		require.NoError(t, json.Unmarshal([]byte(doc), &v), doc)
		assert.Equal(t, expected, v, doc)
		assert.True(t, v.Present(), doc)
	}
}

func TestValue_AbsentKey(t *testing.T) {
	user := decode[models.UserRecord](t, `{"id":1}`)

	assert.False(t, user.Phone.Present())
	assert.True(t, user.Phone.IsNull())
	assert.Equal(t, models.Text("x"), user.Phone.Or(models.Text("x")))
}

func TestValue_DriverValue(t *testing.T) {
	v, err := models.Text("a").Value()
	assert.NoError(t, err)
	assert.Equal(t, "a", v)

	v, err = models.Null().Value()
	assert.NoError(t, err)
	assert.Nil(t, v)

	var obj models.Value
	require.NoError(t, json.Unmarshal([]byte(`{"street":"Main"}`), &obj))
	_, err = obj.Value()
	assert.Error(t, err)
}

func TestValue_Scan(t *testing.T) {
	var v models.Value
	require.NoError(t, v.Scan([]byte("abc")))
	assert.Equal(t, models.Text("abc"), v)

	require.NoError(t, v.Scan(int64(7)))
	assert.Equal(t, models.Int(7), v)

	require.NoError(t, v.Scan(nil))
	assert.Equal(t, models.Null(), v)
}

func TestTableNames_DependencyOrder(t *testing.T) {
	assert.Equal(t, []string{"users", "products", "orders", "order_items", "payments"}, models.TableNames())
	assert.Len(t, models.All(), 5)
}
