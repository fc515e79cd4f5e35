package core

import (
	"testing"
	"time"
)

func TestComputePeriod(t *testing.T) {
	anchor := time.Date(2024, 3, 15, 14, 30, 12, 0, time.UTC)

	tests := []struct {
		name      string
		kind      PeriodKind
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "weekly",
			kind:      Weekly,
			wantStart: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 22, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:      "monthly",
			kind:      Monthly,
			wantStart: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 4, 15, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:      "yearly",
			kind:      Yearly,
			wantStart: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 15, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:      "unknown kind defaults to monthly",
			kind:      PeriodKind("fortnightly"),
			wantStart: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 4, 15, 23, 59, 59, 999999999, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ComputePeriod(tt.kind, anchor)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
			if start.After(end) {
				t.Errorf("start %v after end %v", start, end)
			}
			// Pure: re-invoking yields identical results.
			start2, end2 := ComputePeriod(tt.kind, anchor)
			if !start2.Equal(start) || !end2.Equal(end) {
				t.Errorf("ComputePeriod not pure: (%v,%v) then (%v,%v)", start, end, start2, end2)
			}
		})
	}
}

func TestComputePeriodMonthEndAnchor(t *testing.T) {
	// Jan 31 + 1 month normalizes: AddDate carries into March.
	start, end := ComputePeriod(Monthly, time.Date(2025, 1, 31, 8, 0, 0, 0, time.UTC))
	if !start.Equal(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if end.Before(start) {
		t.Errorf("end %v before start %v", end, start)
	}
}

func TestStartOfMonth(t *testing.T) {
	got := StartOfMonth(time.Date(2024, 7, 19, 23, 1, 2, 3, time.UTC))
	want := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfMonth = %v, want %v", got, want)
	}
}
