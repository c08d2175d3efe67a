package inject

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToScript(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "null"},
		{"null literal", Null, "null"},
		{"code", Code("window.location.href"), "window.location.href"},
		{"string encoded", "abc<hi>", `"abc&lt;hi&gt;"`},
		{"string quotes", `a"b'c`, `"a&quot;b&#39;c"`},
		{"unencoded", Unencoded(`<b>"x"</b>`), `"<b>&quot;x&quot;</b>"`},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 42, "42"},
		{"negative int64", int64(-7), "-7"},
		{"uint8", uint8(255), "255"},
		{"float", 1.5, "1.5"},
		{"float integral", 3.0, "3"},
		{"float32", float32(0.1), "0.1"},
		{"small float", 0.000001, "0.000001"},
		{"tiny float", 1e-7, "1e-7"},
		{"large float", 1e21, "1e+21"},
		{"below exponent", 123456789012345680000.0, "123456789012345680000"},
		{"nan", math.NaN(), "NaN"},
		{"inf", math.Inf(1), "Infinity"},
		{"neg inf", math.Inf(-1), "-Infinity"},
		{"decimal", decimal.RequireFromString("19.990"), "19.99"},
		{"decimal pointer", func() *decimal.Decimal { d := decimal.NewFromInt(5); return &d }(), "5"},
		{"nil decimal pointer", (*decimal.Decimal)(nil), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToScript(tt.value)
			if err != nil {
				t.Fatalf("ToScript(%v) error = %v", tt.value, err)
			}
			if got != tt.expected {
				t.Errorf("ToScript(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestToScriptUnsupported(t *testing.T) {
	for _, v := range []any{struct{}{}, []int{1}, map[string]int{}} {
		if _, err := ToScript(v); !errors.Is(err, ErrUnsupportedValue) {
			t.Errorf("ToScript(%T) error = %v, want ErrUnsupportedValue", v, err)
		}
	}
}

func TestScriptString(t *testing.T) {
	tests := []struct {
		in       string
		encode   bool
		expected string
	}{
		{"abc<hi>", true, `"abc&lt;hi&gt;"`},
		{"abc<hi>", false, `"abc<hi>"`},
		{`say "x"`, false, `"say &quot;x&quot;"`},
		{"", true, `""`},
	}

	for _, tt := range tests {
		if got := ScriptString(tt.in, tt.encode); got != tt.expected {
			t.Errorf("ScriptString(%q, %v) = %q, want %q", tt.in, tt.encode, got, tt.expected)
		}
	}
}
