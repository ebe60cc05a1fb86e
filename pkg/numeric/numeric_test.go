package numeric

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestAsInt(t *testing.T) {
	var nilStr *string
	var nilInt *int64
	seven := int64(7)

	tests := []struct {
		name  string
		value interface{}
		want  int64
	}{
		{"nil", nil, 0},
		{"nil string pointer", nilStr, 0},
		{"nil int pointer", nilInt, 0},
		{"int pointer", &seven, 7},
		{"plain string", "42", 42},
		{"padded string", "  12 ", 12},
		{"string pointer", strPtr("5"), 5},
		{"decimal string truncates", "3.9", 3},
		{"negative decimal string", "-2.5", -2},
		{"garbage", "abc", 0},
		{"blank", "   ", 0},
		{"bytes", []byte("9"), 9},
		{"float", 4.7, 4},
		{"nan", math.NaN(), 0},
		{"int", 11, 11},
		{"json number", json.Number("8"), 8},
		{"max int64", "9223372036854775807", math.MaxInt64},
		{"min int64", "-9223372036854775808", math.MinInt64},
		{"fraction above max int64 truncates", "9223372036854775807.5", math.MaxInt64},
		{"exponent above int64", "1e19", 0},
		{"exponent near int64 limit", "9.3e18", 0},
		{"wider than uint64", "18446744073709551617", 0},
		{"far below int64", "-1e30", 0},
		{"float above int64", 1e19, 0},
		{"decimal above int64", decimal.RequireFromString("1e20"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsInt(tt.value))
		})
	}
}

func TestAsAmount(t *testing.T) {
	var nilStr *string

	tests := []struct {
		name  string
		value interface{}
		want  float64
	}{
		{"nil", nil, 0},
		{"nil string pointer", nilStr, 0},
		{"string", "100.50", 100.5},
		{"string pointer", strPtr("0.1"), 0.1},
		{"garbage", "12abc", 0},
		{"empty", "", 0},
		{"float", 2.25, 2.25},
		{"int64", int64(30), 30},
		{"infinite", math.Inf(1), 0},
		{"nan", math.NaN(), 0},
		{"beyond float64", "1" + strings.Repeat("0", 400), 0},
		{"negative beyond float64", "-1e400", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AsAmount(tt.value)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFloat(t *testing.T) {
	assert.Equal(t, 12.5, Float(decimal.RequireFromString("12.5")))
	assert.Equal(t, float64(0), Float(decimal.RequireFromString("1e400")))
	assert.Equal(t, float64(0), Float(decimal.RequireFromString("-1e400")))
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name                      string
		total, paid               string
		wantTotal, wantPaid, want string
	}{
		{"partially paid", "100", "40", "100", "40", "60"},
		{"fully paid", "100", "100", "100", "100", "0"},
		{"overpaid is clamped", "100", "150", "100", "100", "0"},
		{"nothing paid", "80.25", "0", "80.25", "0", "80.25"},
		{"decimal exact", "0.3", "0.1", "0.3", "0.1", "0.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, paid, unpaid := Settle(decimal.RequireFromString(tt.total), decimal.RequireFromString(tt.paid))
			assert.True(t, total.Equal(decimal.RequireFromString(tt.wantTotal)), "total %s", total)
			assert.True(t, paid.Equal(decimal.RequireFromString(tt.wantPaid)), "paid %s", paid)
			assert.True(t, unpaid.Equal(decimal.RequireFromString(tt.want)), "unpaid %s", unpaid)
			assert.True(t, paid.LessThanOrEqual(total))
			assert.False(t, unpaid.IsNegative())
		})
	}
}
