package sexp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Symbol is a bare token written verbatim, never quoted.
type Symbol string

// FormatScalar renders a single non-node item.
func FormatScalar(v any) string {
	switch x := v.(type) {
	case string:
		return QuoteIfNeeded(x)
	case Quoted:
		return quote(string(x))
	case Symbol:
		return string(x)
	case UUID:
		return quote(string(x))
	case bool:
		if x {
			return "yes"
		}
		return "no"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case float64:
		return FormatFloat(x)
	case float32:
		return FormatFloat(float64(x))
	case Angle:
		return FormatFloat(float64(x))
	case fmt.Stringer:
		return QuoteIfNeeded(x.String())
	default:
		return fmt.Sprint(x)
	}
}

// FormatFloat prints integral values without a decimal point and everything
// else with six decimals, trailing zeros stripped.
func FormatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e10 {
		if v == 0 {
			return "0"
		}
		return strconv.FormatInt(int64(v), 10)
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// QuoteIfNeeded quotes s when it is empty, contains whitespace, parentheses
// or quotes, or begins with a digit.
func QuoteIfNeeded(s string) string {
	if NeedsQuote(s) {
		return quote(s)
	}
	return s
}

// NeedsQuote reports whether s cannot be written as a bare token.
func NeedsQuote(s string) bool {
	if s == "" {
		return true
	}
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	return strings.ContainsAny(s, " \t\r\n\"()")
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}
