package cart

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSafePrice(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "nil", input: nil, want: "0.00"},
		{name: "NaN", input: math.NaN(), want: "0.00"},
		{name: "infinity", input: math.Inf(1), want: "0.00"},
		{name: "negative int", input: -5, want: "0.00"},
		{name: "negative float", input: -0.01, want: "0.00"},
		{name: "non numeric string", input: "abc", want: "0.00"},
		{name: "unsupported type", input: struct{}{}, want: "0.00"},
		{name: "nil decimal pointer", input: (*decimal.Decimal)(nil), want: "0.00"},
		{name: "zero", input: 0, want: "0.00"},
		{name: "int", input: 12, want: "12.00"},
		{name: "int8", input: int8(4), want: "4.00"},
		{name: "negative int8", input: int8(-4), want: "0.00"},
		{name: "int16", input: int16(300), want: "300.00"},
		{name: "uint", input: uint(8), want: "8.00"},
		{name: "uint8", input: uint8(255), want: "255.00"},
		{name: "uint16", input: uint16(65535), want: "65535.00"},
		{name: "uint32", input: uint32(70000), want: "70000.00"},
		{name: "uint64", input: uint64(6), want: "6.00"},
		{name: "uint64 above int64 range", input: uint64(math.MaxUint64), want: "18446744073709551615.00"},
		{name: "float", input: 3.5, want: "3.50"},
		{name: "numeric string", input: "7.25", want: "7.25"},
		{name: "padded numeric string", input: " 4 ", want: "4.00"},
		{name: "json number", input: json.Number("9.99"), want: "9.99"},
		{name: "decimal", input: money("1.10"), want: "1.10"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, SafePrice(testCase.input).StringFixed(2))
		})
	}
}

func TestCart_AddItem(t *testing.T) {
	c := New()

	warning := c.AddItem(Item{MenuID: 1, ItemName: "Dosa", Price: 5, RestaurantID: 10, RestaurantName: "Saravana"})
	assert.Empty(t, warning)
	c.AddItem(Item{MenuID: 1, ItemName: "Dosa", Price: 5, RestaurantID: 10, RestaurantName: "Saravana"})
	c.AddItem(Item{MenuID: 2, ItemName: "Vada", Price: "2.50", RestaurantID: 10, RestaurantName: "Saravana"})

	state := c.State()
	require.Len(t, state.Lines, 2)
	assert.Equal(t, 2, state.Lines[0].Quantity)
	assert.Equal(t, 1, state.Lines[1].Quantity)
	assert.Equal(t, 3, state.TotalItems)
	assert.Equal(t, "12.50", state.Subtotal.StringFixed(2))
	assert.Equal(t, "12.50", state.Total.StringFixed(2))
	require.NotNil(t, state.RestaurantID)
	assert.Equal(t, 10, *state.RestaurantID)
	assert.Equal(t, "Saravana", *state.RestaurantName)
}

func TestCart_AddItem_InvalidPriceCountsAsZero(t *testing.T) {
	c := New()
	c.AddItem(Item{MenuID: 1, Price: "abc", RestaurantID: 1})
	c.AddItem(Item{MenuID: 2, Price: math.NaN(), RestaurantID: 1})
	c.AddItem(Item{MenuID: 3, Price: nil, RestaurantID: 1})

	state := c.State()
	assert.Equal(t, 3, state.TotalItems)
	assert.True(t, state.Subtotal.IsZero())
}

func TestCart_CrossRestaurantSwitch(t *testing.T) {
	c := New()
	c.AddItem(Item{MenuID: 1, Price: 5, RestaurantID: 10, RestaurantName: "Old Place"})

	warning := c.AddItem(Item{MenuID: 2, Price: 8, RestaurantID: 20, RestaurantName: "New Place"})

	assert.Contains(t, warning, "Old Place")
	assert.Contains(t, warning, "New Place")

	state := c.State()
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 2, state.Lines[0].MenuID)
	assert.Equal(t, 20, state.Lines[0].RestaurantID)
	assert.Equal(t, 1, state.Lines[0].Quantity)
	assert.Equal(t, "8.00", state.Lines[0].Price.StringFixed(2))
	assert.Equal(t, 20, *state.RestaurantID)
	assert.Equal(t, "8.00", state.Subtotal.StringFixed(2))
}

func TestCart_CrossRestaurantSwitch_SameMenuID(t *testing.T) {
	c := New()
	c.AddItem(Item{MenuID: 1, Price: 5, RestaurantID: 10})
	c.AddItem(Item{MenuID: 1, Price: 5, RestaurantID: 10})

	c.AddItem(Item{MenuID: 1, Price: 9, RestaurantID: 20})

	state := c.State()
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 1, state.Lines[0].Quantity)
	assert.Equal(t, "9.00", state.Subtotal.StringFixed(2))
}

func TestCart_SingleRestaurantInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := New()

	for i := 0; i < 500; i++ {
		c.AddItem(Item{
			MenuID:       rng.Intn(20),
			Price:        rng.Intn(30) - 5,
			RestaurantID: rng.Intn(3),
		})

		state := c.State()
		require.NotNil(t, state.RestaurantID)
		for _, line := range state.Lines {
			assert.Equal(t, *state.RestaurantID, line.RestaurantID)
		}
		assertTotalsConsistent(t, state)
	}
}

func TestCart_RemoveItem(t *testing.T) {
	c := New()
	c.AddItem(Item{MenuID: 1, Price: 5, RestaurantID: 10, RestaurantName: "A"})
	c.AddItem(Item{MenuID: 2, Price: 3, RestaurantID: 10, RestaurantName: "A"})

	c.RemoveItem(1)
	state := c.State()
	require.Len(t, state.Lines, 1)
	assert.Equal(t, "3.00", state.Subtotal.StringFixed(2))
	assert.NotNil(t, state.RestaurantID)

	c.RemoveItem(99)
	assert.Len(t, c.State().Lines, 1)

	c.RemoveItem(2)
	state = c.State()
	assert.Empty(t, state.Lines)
	assert.Nil(t, state.RestaurantID)
	assert.Nil(t, state.RestaurantName)
	assert.Zero(t, state.TotalItems)
}

func TestCart_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantItems int
	}{
		{name: "set directly", quantity: 4, wantLines: 1, wantItems: 4},
		{name: "zero removes", quantity: 0, wantLines: 0, wantItems: 0},
		{name: "negative removes", quantity: -3, wantLines: 0, wantItems: 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			c := New()
			c.AddItem(Item{MenuID: 7, Price: 2, RestaurantID: 1})
			c.AddItem(Item{MenuID: 7, Price: 2, RestaurantID: 1})

			c.UpdateQuantity(7, testCase.quantity)

			state := c.State()
			assert.Len(t, state.Lines, testCase.wantLines)
			assert.Equal(t, testCase.wantItems, state.TotalItems)
			if testCase.quantity <= 0 {
				for _, line := range state.Lines {
					assert.NotEqual(t, 7, line.MenuID)
				}
			}
			assertTotalsConsistent(t, state)
		})
	}
}

func TestCart_UpdateQuantity_UnknownItemIsNoop(t *testing.T) {
	c := New()
	c.AddItem(Item{MenuID: 1, Price: 2, RestaurantID: 1})

	c.UpdateQuantity(2, 5)

	state := c.State()
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 1, state.TotalItems)
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.SetDeliveryFee(money("5.00"))
	c.AddItem(Item{MenuID: 1, Price: 5, RestaurantID: 10, RestaurantName: "A"})

	c.Clear()
	first := c.State()
	c.Clear()
	second := c.State()

	assert.Equal(t, first, second)
	assert.Equal(t, []Line{}, second.Lines)
	assert.Nil(t, second.RestaurantID)
	assert.Nil(t, second.RestaurantName)
	assert.True(t, second.Subtotal.IsZero())
	assert.Equal(t, "5.00", second.DeliveryFee.StringFixed(2))
}

func TestCart_SetDeliveryFee_NotInTotal(t *testing.T) {
	c := New()
	c.AddItem(Item{MenuID: 7, Price: 3.5, RestaurantID: 1})
	c.AddItem(Item{MenuID: 7, Price: 3.5, RestaurantID: 1})

	c.SetDeliveryFee(money("5.00"))

	state := c.State()
	assert.Equal(t, "7.00", state.Total.StringFixed(2))
	assert.Equal(t, "5.00", state.DeliveryFee.StringFixed(2))
	assert.Equal(t, "12.00", state.CheckoutTotal(state.DeliveryFee).StringFixed(2))

	c.SetDeliveryFee(money("-1"))
	assert.True(t, c.State().DeliveryFee.IsZero())
}

func TestOrderTotal(t *testing.T) {
	assert.Equal(t, "17.00", OrderTotal(money("12"), money("5")).StringFixed(2))
	assert.Equal(t, "12.00", OrderTotal(money("12"), money("-5")).StringFixed(2))
}

func TestCart_StateIsACopy(t *testing.T) {
	c := New()
	c.AddItem(Item{MenuID: 1, Price: 5, RestaurantID: 10})

	state := c.State()
	state.Lines[0].Quantity = 99
	*state.RestaurantID = 77

	fresh := c.State()
	assert.Equal(t, 1, fresh.Lines[0].Quantity)
	assert.Equal(t, 10, *fresh.RestaurantID)
}

func assertTotalsConsistent(t *testing.T, state State) {
	t.Helper()
	want := decimal.Zero
	items := 0
	for _, line := range state.Lines {
		want = want.Add(SafePrice(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
		items += line.Quantity
	}
	assert.True(t, want.Equal(state.Subtotal), "subtotal %s != %s", state.Subtotal, want)
	assert.True(t, state.Total.Equal(state.Subtotal))
	assert.Equal(t, items, state.TotalItems)
}
