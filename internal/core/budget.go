package core

import "math"

// UtilizationPercent returns spent as a rounded percentage of limit.
// A zero limit yields 0 regardless of spent, guarding division by zero.
func UtilizationPercent(spent, limit Money) int {
	if limit.Cents == 0 {
		return 0
	}
	return int(math.Round(float64(spent.Cents) / float64(limit.Cents) * 100))
}

// Remaining returns limit minus spent. It may be negative.
func Remaining(limit, spent Money) Money {
	return limit.Sub(spent)
}

// IsExceeded reports whether spending has passed the limit.
func IsExceeded(spent, limit Money) bool {
	return spent.Cents > limit.Cents
}

// ShouldAlert flags a budget whose utilization has reached the alert
// threshold but is not yet fully exceeded. Once utilization hits 100 the
// budget is in the separate exceeded state and no alert re-triggers.
func ShouldAlert(spent, limit Money, threshold int) bool {
	u := UtilizationPercent(spent, limit)
	return u >= threshold && u < 100
}
