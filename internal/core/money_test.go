package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"42.50", 4250, false},
		{"42,50", 4250, false},
		{"12.344", 1234, false}, // rounds down
		{"12.345", 1235, false}, // rounds up
		{"-3000", -300000, false},
		{"-0.01", -1, false},
		{"+12", 1200, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
		{"-", 0, true},
		{"99999999999999999999", 0, true}, // overflow
	}
	for _, tt := range tests {
		got, err := ParseDecimalToCents(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDecimalToCents(%q) expected error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDecimalToCents(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// Cents sums must be exact and order-independent, unlike the provider's
// floating-point amounts.
func TestMoneySumOrderIndependent(t *testing.T) {
	amounts := []Money{{4250}, {-300000}, {1}, {999999}, {-1}, {120000}, {33}}

	sum := func(ms []Money) Money {
		var total Money
		for _, m := range ms {
			total = total.Add(m)
		}
		return total
	}

	forward := sum(amounts)
	reversed := make([]Money, len(amounts))
	for i, m := range amounts {
		reversed[len(amounts)-1-i] = m
	}
	if got := sum(reversed); got != forward {
		t.Errorf("reversed sum = %d, forward = %d", got.Cents, forward.Cents)
	}

	// Associativity: pairwise partial sums agree with the linear fold.
	left := sum(amounts[:3]).Add(sum(amounts[3:]))
	if left != forward {
		t.Errorf("split sum = %d, forward = %d", left.Cents, forward.Cents)
	}
}

func TestMoneyHelpers(t *testing.T) {
	if !(Money{-500}).IsInflow() || (Money{-500}).IsOutflow() {
		t.Error("negative amounts are inflow")
	}
	if !(Money{500}).IsOutflow() || (Money{500}).IsInflow() {
		t.Error("positive amounts are outflow")
	}
	if (Money{-500}).Abs().Cents != 500 {
		t.Error("Abs of -500")
	}
	if (Money{4250}).Dollars() != 42.50 {
		t.Error("Dollars conversion")
	}
}
