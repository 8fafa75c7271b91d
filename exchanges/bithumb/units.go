package bithumb

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

const unitPlaces = 4

// TruncateUnits floors an order size to 4 decimal places so the account is
// never asked for more than it holds. NaN and infinities become zero.
func TruncateUnits(units float64) decimal.Decimal {
	if math.IsNaN(units) || math.IsInf(units, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(units).Shift(unitPlaces).Floor().Shift(-unitPlaces)
}

// ParseUnits is TruncateUnits for user input; anything unparsable is zero.
func ParseUnits(s string) decimal.Decimal {
	units, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return decimal.Zero
	}
	return TruncateUnits(units)
}

// orderPrice only accepts finite positive prices.
func orderPrice(op string, price float64) (string, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return "", invalidErr(op, "price %v is not a positive number", price)
	}
	return decimal.NewFromFloat(price).String(), nil
}
