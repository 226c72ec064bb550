package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	t.Run("parses a decimal string", func(t *testing.T) {
		m, err := NewMoneyFromString("48500.50")
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(48500.50)))
	})

	t.Run("rejects a non-numeric string", func(t *testing.T) {
		_, err := NewMoneyFromString("forty-eight thousand")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid amount")
	})
}

func TestMoneySigns(t *testing.T) {
	positive := NewMoneyFromFloat(48500)
	negative := NewMoneyFromFloat(-1200)
	zero := ZeroMoney()

	assert.True(t, positive.IsPositive())
	assert.False(t, positive.IsNegative())

	assert.True(t, negative.IsNegative())
	assert.False(t, negative.IsPositive())

	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsPositive())
	assert.False(t, zero.IsNegative())
}

func TestMoneyArithmetic(t *testing.T) {
	acquisition := NewMoneyFromFloat(48500)
	repairs := NewMoneyFromFloat(3250.75)

	total := acquisition.Add(repairs)
	assert.True(t, total.Amount().Equal(decimal.NewFromFloat(51750.75)))

	margin := NewMoneyFromFloat(55000).Subtract(total)
	assert.True(t, margin.Amount().Equal(decimal.NewFromFloat(3249.25)))

	refund := repairs.Negate()
	assert.True(t, refund.IsNegative())
	assert.True(t, refund.Add(repairs).IsZero())
}

func TestMoneyEquals(t *testing.T) {
	a := NewMoneyFromFloat(100)
	b, err := NewMoneyFromString("100.00")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(NewMoneyFromFloat(100.01)))
}

func TestMoneyString(t *testing.T) {
	m := NewMoneyFromFloat(48500.5)
	assert.Equal(t, "48500.50", m.String())
}

func TestMoneyJSON(t *testing.T) {
	t.Run("marshals as a quoted decimal", func(t *testing.T) {
		data, err := json.Marshal(NewMoneyFromFloat(48500.50))
		require.NoError(t, err)
		assert.Equal(t, `"48500.5"`, string(data))
	})

	t.Run("unmarshals a quoted decimal", func(t *testing.T) {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(`"3250.75"`), &m))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(3250.75)))
	})
}
