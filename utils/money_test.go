package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCLP(t *testing.T) {
	cases := map[int64]string{
		0:        "$0",
		950:      "$950",
		1000:     "$1.000",
		5000:     "$5.000",
		45000:    "$45.000",
		1250000:  "$1.250.000",
		-12500:   "-$12.500",
		-999:     "-$999",
		10000000: "$10.000.000",
	}
	for amount, want := range cases {
		assert.Equal(t, want, FormatCLP(amount), "amount %d", amount)
	}
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$15.00", FormatUSD(15))
	assert.Equal(t, "$3.50", FormatUSD(3.5))
	assert.Equal(t, "$0.00", FormatUSD(0))
	assert.Equal(t, "-$5.00", FormatUSD(-5))
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 0.3, RoundCents(0.1+0.2))
	assert.Equal(t, 12.35, RoundCents(12.346))
	assert.Equal(t, 52.0, RoundCents(12+40))
}
