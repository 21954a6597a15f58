package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(10.50), USD)
	require.NoError(t, err)
	assert.Equal(t, "10.50", m.StringFixed(2))
	assert.Equal(t, USD, m.Currency())

	_, err = NewMoney(decimal.NewFromInt(1), "")
	assert.Error(t, err)
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("99.99", EUR)
	require.NoError(t, err)
	assert.Equal(t, "99.99", m.StringFixed(2))

	_, err = NewMoneyFromString("not-a-number", USD)
	assert.Error(t, err)
}

func TestMoney_AddSubtract(t *testing.T) {
	a := NewMoneyUSD(decimal.NewFromFloat(10.00))
	b := NewMoneyUSD(decimal.NewFromFloat(2.50))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "12.50", sum.StringFixed(2))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "7.50", diff.StringFixed(2))

	// The inputs are unchanged
	assert.Equal(t, "10.00", a.StringFixed(2))
	assert.Equal(t, "2.50", b.StringFixed(2))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	usd := NewMoneyUSD(decimal.NewFromInt(10))
	eur, err := NewMoney(decimal.NewFromInt(10), EUR)
	require.NoError(t, err)

	_, err = usd.Add(eur)
	assert.Error(t, err)

	_, err = usd.Subtract(eur)
	assert.Error(t, err)

	_, err = usd.LessThan(eur)
	assert.Error(t, err)
}

func TestMoney_Round(t *testing.T) {
	// Half away from zero
	m := NewMoneyUSD(decimal.NewFromFloat(2.345))
	assert.Equal(t, "2.35", m.Round(2).StringFixed(2))

	neg := NewMoneyUSD(decimal.NewFromFloat(-2.345))
	assert.Equal(t, "-2.35", neg.Round(2).StringFixed(2))
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(1)).IsPositive())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(-1)).IsNegative())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(-1)).Abs().IsPositive())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(1)).Negate().IsNegative())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromFloat(123.45))

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}
