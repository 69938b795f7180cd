package betboard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := map[string]float64{
		"1,200":       1200,
		"1,234,567.5": 1234567.5,
		" 300 ":       300,
		"$2,500.25":   2500.25,
		"0.5":         0.5,
		"-12":         -12,
		"1e3":         1000,
		"":            0,
		"   ":         0,
		"abc":         0,
		"NaN":         0,
		"12abc":       0,
		"nan":         0,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseNumber(in), "ParseNumber(%q)", in)
	}
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 0.0, parseQuantity("-3"))
	assert.Equal(t, 3.0, parseQuantity("3"))
	assert.Equal(t, 1000.0, parseQuantity("1,000"))
}

func TestMul(t *testing.T) {
	assert.Equal(t, 3000.0, mul(0.1, 30000))
	assert.Equal(t, 0.3, mul(3, 0.1))
	assert.Equal(t, 0.0, mul(math.NaN(), 2))
	assert.Equal(t, 0.0, mul(math.Inf(1), 2))
	assert.Equal(t, 0.0, mul(0, 2))
}
