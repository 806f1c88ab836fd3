package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"0":       "$0.00",
		"109.95":  "$109.95",
		"22.3":    "$22.30",
		"7.955":   "$7.96",
		"1000000": "$1000000.00",
	}
	for in, want := range cases {
		if got := Format(decimal.RequireFromString(in)); got != want {
			t.Fatalf("Format(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestParse(t *testing.T) {
	amount, err := Parse(" $12.50 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !amount.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("unexpected amount %s", amount)
	}
	if _, err := Parse("$abc"); err == nil {
		t.Fatal("expected parse error")
	}
}
