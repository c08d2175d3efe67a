package inject

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	ierrors "github.com/vango-dev/inject/internal/errors"
)

// Code is script emitted verbatim, unquoted and unescaped.
type Code string

// Unencoded is a string literal that escapes only embedded double quotes
// instead of being HTML-encoded.
type Unencoded string

// Null is the script null literal.
const Null Code = "null"

// ToScript converts a Go value into a script literal.
//
// Supported values are the integer and floating point types,
// decimal.Decimal, bool, string, Code, Unencoded and nil. Strings are
// double-quoted and HTML-encoded. Numbers always use a locale-independent
// format.
func ToScript(v any) (string, error) {
	return toScript(v, true)
}

func toScript(v any, htmlEncode bool) (string, error) {
	switch v := v.(type) {
	case nil:
		return string(Null), nil
	case Code:
		return string(v), nil
	case Unencoded:
		return ScriptString(string(v), false), nil
	case string:
		return ScriptString(v, htmlEncode), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return formatFloat(float64(v), 32), nil
	case float64:
		return formatFloat(v, 64), nil
	case decimal.Decimal:
		return v.String(), nil
	case *decimal.Decimal:
		if v == nil {
			return string(Null), nil
		}
		return v.String(), nil
	}
	return "", ierrors.New("E013").WithDetailf("%T", v)
}

// ScriptString returns s as a double-quoted script string. With htmlEncode
// the content is HTML-encoded; otherwise only double quotes are replaced.
func ScriptString(s string, htmlEncode bool) string {
	if htmlEncode {
		return `"` + escapeHTML(s) + `"`
	}
	return `"` + escapeQuotes(s) + `"`
}

// formatFloat renders f the way a script engine prints numbers: plain
// decimal notation between 1e-6 and 1e21, exponent notation outside.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(f, 'e', -1, bits)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
