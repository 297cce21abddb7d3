package leavemath

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateAnnualLeaveUnderOneYear(t *testing.T) {
	hire := date(2025, 3, 1)

	for months := 0; months <= 11; months++ {
		target := hire.AddDate(0, months, 0)
		got := CalculateAnnualLeave(hire, target)
		if got.GrantType != GrantMonthly {
			t.Fatalf("%d months: grant type = %s, want monthly", months, got.GrantType)
		}
		if got.TotalDays != months {
			t.Errorf("%d months: total days = %d, want %d", months, got.TotalDays, months)
		}
	}
}

func TestCalculateAnnualLeaveTenureSteps(t *testing.T) {
	hire := date(2020, 1, 1)

	tests := []struct {
		months int
		want   int
	}{
		{12, 15}, // exactly one year
		{24, 15}, // two years: 15 + (2-1)/2 = 15
		{36, 16}, // three years: 15 + 1
		{60, 17}, // five years: 15 + 2
		{252, 25},
		{300, 25}, // capped at 25 for 21+ years
	}

	for _, tt := range tests {
		target := hire.AddDate(0, tt.months, 0)
		got := CalculateAnnualLeave(hire, target)
		if got.GrantType != GrantYearly {
			t.Fatalf("%d months: grant type = %s, want yearly", tt.months, got.GrantType)
		}
		if got.TotalDays != tt.want {
			t.Errorf("%d months: total days = %d, want %d", tt.months, got.TotalDays, tt.want)
		}
	}
}

func TestCalculateAnnualLeaveMonthlyCap(t *testing.T) {
	hire := date(2025, 1, 15)
	// 11 months and change, still under a year.
	got := CalculateAnnualLeave(hire, date(2025, 12, 20))
	if got.TotalDays != 11 || got.GrantType != GrantMonthly {
		t.Errorf("got %+v, want 11 monthly days", got)
	}
}

func TestCalculateAnnualLeaveForYear(t *testing.T) {
	// Hired after the target year: nothing accrues.
	if days, _ := CalculateAnnualLeaveForYear(date(2027, 2, 1), 2026); days != 0 {
		t.Errorf("future hire: days = %d, want 0", days)
	}

	// Anniversary falls inside the year: collapses to a flat yearly 15.
	days, grant := CalculateAnnualLeaveForYear(date(2025, 6, 1), 2026)
	if days != 15 || grant != GrantYearly {
		t.Errorf("anniversary year: got %d/%s, want 15/yearly", days, grant)
	}

	// Long tenure at year start.
	days, grant = CalculateAnnualLeaveForYear(date(2020, 1, 1), 2026)
	if grant != GrantYearly {
		t.Fatalf("grant type = %s, want yearly", grant)
	}
	if days != 15+6/2 {
		t.Errorf("six years tenure: days = %d, want 18", days)
	}

	// Hired mid-year, still under one year at year end.
	days, grant = CalculateAnnualLeaveForYear(date(2026, 7, 10), 2026)
	if grant != GrantMonthly {
		t.Fatalf("grant type = %s, want monthly", grant)
	}
	if days != 6 { // July through December
		t.Errorf("mid-year hire: days = %d, want 6", days)
	}
}

func TestCalculateWorkingDays(t *testing.T) {
	// 2026-01-05 is a Monday.
	monday := date(2026, 1, 5)
	friday := date(2026, 1, 9)
	if got := CalculateWorkingDays(monday, friday); got != 5 {
		t.Errorf("Mon-Fri = %d, want 5", got)
	}

	saturday := date(2026, 1, 10)
	sunday := date(2026, 1, 11)
	if got := CalculateWorkingDays(saturday, sunday); got != 0 {
		t.Errorf("Sat-Sun = %d, want 0", got)
	}

	// A full week spans the weekend.
	if got := CalculateWorkingDays(monday, sunday); got != 5 {
		t.Errorf("Mon-Sun = %d, want 5", got)
	}

	// Single day.
	if got := CalculateWorkingDays(monday, monday); got != 1 {
		t.Errorf("single Monday = %d, want 1", got)
	}
}

func TestCalculateDaysUsed(t *testing.T) {
	start := date(2026, 1, 5)
	end := date(2026, 1, 9)

	if got := CalculateDaysUsed(TypeHalfAM, start, end); got != 0.5 {
		t.Errorf("half_am = %v, want 0.5", got)
	}
	if got := CalculateDaysUsed(TypeHalfPM, start, start); got != 0.5 {
		t.Errorf("half_pm = %v, want 0.5", got)
	}
	if got := CalculateDaysUsed(TypeAnnual, start, end); got != 5 {
		t.Errorf("annual Mon-Fri = %v, want 5", got)
	}
	if got := CalculateDaysUsed(TypeSpecial, start, start); got != 1 {
		t.Errorf("special single day = %v, want 1", got)
	}
}
