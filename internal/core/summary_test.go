package core

import "testing"

func TestSavingsRate(t *testing.T) {
	tests := []struct {
		name     string
		income   int64
		expenses int64
		want     float64
	}{
		{"typical", 300000, 120000, 60.0},
		{"zero income", 0, 120000, 0},
		{"negative savings", 100000, 150000, -50.0},
		{"one decimal rounding", 300000, 100000, 66.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SavingsRate(Money{tt.income}, Money{tt.expenses})
			if got != tt.want {
				t.Errorf("SavingsRate(%d, %d) = %v, want %v", tt.income, tt.expenses, got, tt.want)
			}
		})
	}
}
