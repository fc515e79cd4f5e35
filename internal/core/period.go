package core

import "time"

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// StartOfMonth truncates t to the first midnight of its calendar month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// ComputePeriod returns the inclusive [start, end] window for a budget
// anchored at the given date: start-of-day of the anchor through
// end-of-day of anchor + 7 days (weekly), + 1 calendar month (monthly) or
// + 1 calendar year (yearly). Unknown kinds fall back to monthly. The
// interval is used verbatim as the spend aggregation range.
func ComputePeriod(kind PeriodKind, anchor time.Time) (start, end time.Time) {
	start = StartOfDay(anchor)
	switch kind {
	case Weekly:
		end = EndOfDay(start.AddDate(0, 0, 7))
	case Yearly:
		end = EndOfDay(start.AddDate(1, 0, 0))
	default:
		end = EndOfDay(start.AddDate(0, 1, 0))
	}
	return start, end
}
