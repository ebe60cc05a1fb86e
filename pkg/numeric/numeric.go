package numeric

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// AsInt coerces an integer-like value to int64, returning 0 when the value is
// nil, cannot be parsed or falls outside the int64 range. Decimal inputs are
// truncated toward zero.
func AsInt(value interface{}) int64 {
	switch v := value.(type) {
	case nil:
		return 0
	case *string:
		if v == nil {
			return 0
		}
		return parseInt(*v)
	case string:
		return parseInt(v)
	case []byte:
		return parseInt(string(v))
	case json.Number:
		return parseInt(string(v))
	case decimal.Decimal:
		return intPart(v)
	case float64:
		return intPart(Decimal(v))
	case float32:
		return intPart(Decimal(float64(v)))
	}

	n, err := cast.ToInt64E(value)
	if err != nil {
		return 0
	}
	return n
}

// AsAmount coerces a decimal-like value to float64, returning 0 when the value
// is nil, unparsable or not finite.
func AsAmount(value interface{}) float64 {
	return Float(Decimal(value))
}

// Float converts d to float64, returning 0 when d does not fit in a finite
// float64.
func Float(d decimal.Decimal) float64 {
	f := d.InexactFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Decimal coerces a decimal-like value to an exact decimal, returning zero when
// the value is nil, unparsable or not finite.
func Decimal(value interface{}) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case *string:
		if v == nil {
			return decimal.Zero
		}
		return parseDecimal(*v)
	case string:
		return parseDecimal(v)
	case []byte:
		return parseDecimal(string(v))
	case json.Number:
		return parseDecimal(string(v))
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero
		}
		return *v
	}

	f, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// Settle clamps paid to at most total and derives the unpaid remainder, which
// is never negative.
func Settle(total, paid decimal.Decimal) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	if paid.GreaterThan(total) {
		paid = total
	}
	unpaid := total.Sub(paid)
	if unpaid.IsNegative() {
		unpaid = decimal.Zero
	}
	return total, paid, unpaid
}

func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return intPart(d)
}

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// intPart truncates d toward zero, returning 0 when the result is outside
// the int64 range.
func intPart(d decimal.Decimal) int64 {
	d = d.Truncate(0)
	if d.GreaterThan(maxInt64) || d.LessThan(minInt64) {
		return 0
	}
	return d.IntPart()
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
