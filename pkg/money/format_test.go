package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Rentabilidad-api/pkg/money"
)

func TestFormatter_Espanol(t *testing.T) {
	f := money.NewFormatter("es")
	assert.Equal(t, "$1.234.567,50", f.Currency(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-$45,00", f.Currency(decimal.NewFromInt(-45)))
	assert.Equal(t, "47,37%", f.Percent(decimal.RequireFromString("47.368")))
}

func TestFormatter_Ingles(t *testing.T) {
	f := money.NewFormatter("en")
	assert.Equal(t, "$1,234.00", f.Currency(decimal.NewFromInt(1234)))
}

func TestFormatter_LocaleInvalido(t *testing.T) {
	f := money.NewFormatter("%%")
	assert.Equal(t, "10,00", f.Amount(decimal.NewFromInt(10)))
}
