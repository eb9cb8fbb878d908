package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	cases := map[string]decimal.Decimal{
		"Rp 0":         decimal.Zero,
		"Rp 500":       decimal.NewFromInt(500),
		"Rp 25.000":    decimal.NewFromInt(25000),
		"Rp 1.500.000": decimal.NewFromInt(1500000),
		"Rp 10":        decimal.RequireFromString("9.6"),
		"-Rp 2.000":    decimal.NewFromInt(-2000),
	}
	for want, in := range cases {
		assert.Equal(t, want, FormatRupiah(in), in.String())
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.000.000", FormatNumber(1000000))
	assert.Equal(t, "999", FormatNumber(999))
}

func TestValidAmount(t *testing.T) {
	for _, ok := range []string{"0", "100000", "0.01", "1.50", "1.500", "999999999999.99", "-2000"} {
		assert.True(t, ValidAmount(decimal.RequireFromString(ok)), ok)
	}
	for _, bad := range []string{"0.005", "1.001", "1000000000000", "-1000000000000"} {
		assert.False(t, ValidAmount(decimal.RequireFromString(bad)), bad)
	}
}
