package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayout(t *testing.T) {
	t.Run("credits one and a half times the premium", func(t *testing.T) {
		assert.Equal(t, Micros(1_500_000), Payout(Units(1)))
		assert.Equal(t, Units(15), Payout(Units(10)))
	})

	t.Run("odd micros round down on the half", func(t *testing.T) {
		assert.Equal(t, Micros(1), Payout(Micros(1)))
		assert.Equal(t, Micros(4), Payout(Micros(3)))
		assert.Equal(t, Micros(499_999), Payout(Micros(333_333)))
	})
}

func TestAmountString(t *testing.T) {
	assert.Equal(t, "1.000000", Units(1).String())
	assert.Equal(t, "1.500000", Micros(1_500_000).String())
	assert.Equal(t, "0.000001", Micros(1).String())
	assert.Equal(t, "-2.250000", Micros(-2_250_000).String())
}

func TestIsPositive(t *testing.T) {
	assert.True(t, Micros(1).IsPositive())
	assert.False(t, Micros(0).IsPositive())
	assert.False(t, Micros(-1).IsPositive())
}
