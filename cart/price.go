package cart

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// SafePrice normalizes a menu price of any shape into a non-negative decimal.
// Missing, non-numeric, NaN, infinite and negative prices all become zero.
func SafePrice(v any) decimal.Decimal {
	var d decimal.Decimal

	switch p := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		d = p
	case *decimal.Decimal:
		if p == nil {
			return decimal.Zero
		}
		d = *p
	case float64:
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return decimal.Zero
		}
		d = decimal.NewFromFloat(p)
	case float32:
		f := float64(p)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero
		}
		d = decimal.NewFromFloat32(p)
	case int:
		d = decimal.NewFromInt(int64(p))
	case int8:
		d = decimal.NewFromInt(int64(p))
	case int16:
		d = decimal.NewFromInt(int64(p))
	case int32:
		d = decimal.NewFromInt32(p)
	case int64:
		d = decimal.NewFromInt(p)
	case uint:
		d = decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(p)), 0)
	case uint8:
		d = decimal.NewFromInt(int64(p))
	case uint16:
		d = decimal.NewFromInt(int64(p))
	case uint32:
		d = decimal.NewFromInt(int64(p))
	case uint64:
		d = decimal.NewFromBigInt(new(big.Int).SetUint64(p), 0)
	case json.Number:
		parsed, err := decimal.NewFromString(p.String())
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	default:
		return decimal.Zero
	}

	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// OrderTotal is the amount a customer pays for a cart: the subtotal plus the
// delivery fee. Checkout, the wallet guard and order pricing all use it.
func OrderTotal(subtotal, deliveryFee decimal.Decimal) decimal.Decimal {
	return SafePrice(subtotal).Add(SafePrice(deliveryFee))
}
