package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"25", "$25.00"},
		{"90.364", "$90.36"},
		{"8.365", "$8.37"},
		{"1234.5", "$1234.50"},
		{"-3", "($3.00)"},
		{"-0.004", "($0.00)"},
		{"-0", "$0.00"},
		{"-9.999", "($10.00)"},
	}
	for _, tt := range tests {
		if got := Format(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Fatalf("Format(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(decimal.RequireFromString("0.102")); got != "10.2%" {
		t.Fatalf("unexpected tax rate display %q", got)
	}
	if got := FormatRate(decimal.RequireFromString("0.15")); got != "15.0%" {
		t.Fatalf("unexpected member rate display %q", got)
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse("abc"); err == nil {
		t.Fatal("expected parse error")
	}
	got, err := Parse(" 12.50 ")
	if err != nil || !got.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("unexpected parse result %v err=%v", got, err)
	}
}
