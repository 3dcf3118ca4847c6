package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), "EUR")
		require.NoError(t, err)
		assert.Equal(t, "EUR", m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("120.50", "USD")
	require.NoError(t, err)
	assert.Equal(t, "120.5 USD", m.String())

	_, err = NewMoneyFromString("not-a-number", "USD")
	assert.Error(t, err)
}

func TestMoney_Arithmetic(t *testing.T) {
	a := MustMoney(decimal.NewFromInt(100), "EUR")
	b := MustMoney(decimal.NewFromInt(40), "EUR")

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(140)))
	})

	t.Run("sub", func(t *testing.T) {
		diff, err := a.Sub(b)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(60)))
	})

	t.Run("neg", func(t *testing.T) {
		neg := b.Neg()
		assert.True(t, neg.Amount().Equal(decimal.NewFromInt(-40)))
		assert.True(t, neg.IsNegative())
	})

	t.Run("rejects cross-currency arithmetic", func(t *testing.T) {
		c := MustMoney(decimal.NewFromInt(1), "USD")
		_, err := a.Add(c)
		assert.Error(t, err)
		_, err = a.Sub(c)
		assert.Error(t, err)
	})
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, MustMoney(decimal.Zero, "EUR").IsZero())
	assert.True(t, MustMoney(decimal.NewFromInt(1), "EUR").IsPositive())
	assert.True(t, MustMoney(decimal.NewFromInt(-1), "EUR").IsNegative())
	assert.True(t, MustMoney(decimal.NewFromInt(5), "EUR").Equals(MustMoney(decimal.NewFromInt(5), "EUR")))
	assert.False(t, MustMoney(decimal.NewFromInt(5), "EUR").Equals(MustMoney(decimal.NewFromInt(5), "USD")))
}

func TestMoney_Scale(t *testing.T) {
	assert.Equal(t, int32(0), MustMoney(decimal.NewFromInt(40), "EUR").Scale())
	assert.Equal(t, int32(2), MustMoney(decimal.RequireFromString("40.05"), "EUR").Scale())
	assert.Equal(t, int32(3), MustMoney(decimal.RequireFromString("40.005"), "EUR").Scale())
}
