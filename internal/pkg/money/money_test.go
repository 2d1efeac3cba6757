package money_test

import (
	"testing"

	"salon-booking-service/internal/pkg/money"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFromDecimal(t *testing.T) {
	assert.Equal(t, money.Cents(5250), money.FromDecimal(decimal.RequireFromString("52.5")))
	assert.Equal(t, money.Cents(1999), money.FromDecimal(decimal.RequireFromString("19.99")))
	assert.Equal(t, money.Cents(10), money.FromDecimal(decimal.RequireFromString("0.1")))
	assert.Equal(t, money.Cents(-250), money.FromDecimal(decimal.RequireFromString("-2.5")))
	assert.Equal(t, money.Cents(101), money.FromDecimal(decimal.RequireFromString("1.005")))
}

func TestDecimal(t *testing.T) {
	assert.True(t, decimal.RequireFromString("52.5").Equal(money.Cents(5250).Decimal()))
	assert.Equal(t, "0.05", money.Cents(5).Decimal().String())
}

func TestApplyRate(t *testing.T) {
	rate := decimal.RequireFromString("0.05")
	assert.Equal(t, money.Cents(250), money.Cents(5000).ApplyRate(rate))
	assert.Equal(t, money.Cents(62), money.Cents(1234).ApplyRate(rate))
	assert.Equal(t, money.Cents(0), money.Cents(5000).ApplyRate(decimal.Zero))
}

func TestLineAndSum(t *testing.T) {
	assert.Equal(t, money.Cents(9000), money.Line(5000, 2, 1000))
	assert.Equal(t, money.Cents(12345), money.Sum(10000, 2000, 345))
	assert.Equal(t, money.Cents(0), money.Sum())
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, money.WithinTolerance(5250, 5250, 1))
	assert.True(t, money.WithinTolerance(5251, 5250, 1))
	assert.True(t, money.WithinTolerance(5249, 5250, 1))
	assert.False(t, money.WithinTolerance(5252, 5250, 1))
	assert.False(t, money.WithinTolerance(5000, 5250, 1))
}

func TestString(t *testing.T) {
	assert.Equal(t, "52.50", money.Cents(5250).String())
	assert.Equal(t, "-2.50", money.Cents(-250).String())
	assert.Equal(t, "0.05", money.Cents(5).String())
}

func TestRegisterValidation(t *testing.T) {
	type line struct {
		Amount decimal.Decimal `validate:"min=0"`
	}
	v := validator.New()
	money.RegisterValidation(v)

	assert.NoError(t, v.Struct(line{Amount: decimal.RequireFromString("12.30")}))
	assert.NoError(t, v.Struct(line{}))
	assert.Error(t, v.Struct(line{Amount: decimal.RequireFromString("-0.01")}))
}
