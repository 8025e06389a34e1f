package validation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidators(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	Required("model", "CF-48", v)
	MaxLen("brand", "Havells", 3, v)
	NonNegativeDecimal("unit_price", decimal.NewFromInt(-1), v)
	RangeDecimal("gst_rate", decimal.NewFromInt(101), decimal.Zero, decimal.NewFromInt(100), v)
	RangeDecimal("discount", decimal.NewFromInt(5), decimal.Zero, decimal.NewFromInt(100), v)

	want := Violations{
		"name":       "required",
		"brand":      "too_long",
		"unit_price": "must_not_be_negative",
		"gst_rate":   "out_of_range",
	}
	if len(v) != len(want) {
		t.Fatalf("got %v want %v", v, want)
	}
	for k, code := range want {
		if v[k] != code {
			t.Errorf("%s = %q want %q", k, v[k], code)
		}
	}
}

func TestDecimalKeepsFirstViolation(t *testing.T) {
	v := Violations{}
	got := Decimal("unit_price", "12,50", v)
	NonNegativeDecimal("unit_price", got, v)
	if v["unit_price"] != "invalid_number" {
		t.Fatalf("expected invalid_number got %q", v["unit_price"])
	}
	if ok := Decimal("gst_rate", " 18.5 ", v); !ok.Equal(decimal.RequireFromString("18.5")) {
		t.Fatalf("parsed %s", ok)
	}
	if v.Empty() {
		t.Fatalf("expected violations")
	}
}
