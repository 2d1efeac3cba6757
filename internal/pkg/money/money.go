// Package money carries amounts as decimal.Decimal across JSON and the store
// and does tax and tolerance arithmetic in integer cents.
package money

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Cents int64

// FromDecimal converts an amount (52.5) to cents, rounding half away from
// zero.
func FromDecimal(amount decimal.Decimal) Cents {
	return Cents(amount.Shift(2).Round(0).IntPart())
}

func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// ApplyRate returns c*rate rounded half away from zero.
func (c Cents) ApplyRate(rate decimal.Decimal) Cents {
	return Cents(decimal.New(int64(c), 0).Mul(rate).Round(0).IntPart())
}

// Line returns unit*quantity - discount.
func Line(unit Cents, quantity int, discount Cents) Cents {
	return unit*Cents(quantity) - discount
}

func Sum(values ...Cents) Cents {
	var total Cents
	for _, v := range values {
		total += v
	}
	return total
}

// WithinTolerance reports whether |a-b| <= tolerance.
func WithinTolerance(a, b, tolerance Cents) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// RegisterValidation lets numeric tags such as min=0 apply to decimal
// fields.
func RegisterValidation(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

