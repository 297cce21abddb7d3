// Package leavemath implements the annual and compensatory leave accrual
// rules. All functions are pure calendar arithmetic over civil dates.
package leavemath

import "time"

// Leave types. Half-day types consume a flat half day regardless of the
// requested range.
const (
	TypeAnnual       = "annual"
	TypeHalfAM       = "half_am"
	TypeHalfPM       = "half_pm"
	TypeCompensatory = "compensatory"
	TypeSpecial      = "special"
)

// Grant types produced by the accrual rules.
const (
	GrantMonthly = "monthly"
	GrantYearly  = "yearly"
)

// AnnualLeave is the result of an accrual calculation.
type AnnualLeave struct {
	TotalDays    int    `json:"total_days"`
	GrantType    string `json:"grant_type"`
	MonthsWorked int    `json:"months_worked"`
	YearsWorked  int    `json:"years_worked"`
}

// yearsBetween returns full calendar years elapsed from a to b.
func yearsBetween(a, b time.Time) int {
	years := b.Year() - a.Year()
	anniversary := time.Date(b.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	if time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC).Before(anniversary) {
		years--
	}
	return years
}

// monthsBetween returns full calendar months elapsed from a to b.
func monthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return months
}

// CalculateAnnualLeave applies the statutory accrual rule at targetDate:
// under one year of tenure one day accrues per completed month (capped at
// 11); from one year on the grant is 15 days plus one day per two full
// years beyond the first, capped at 25 total.
func CalculateAnnualLeave(hireDate, targetDate time.Time) AnnualLeave {
	yearsWorked := yearsBetween(hireDate, targetDate)
	monthsWorked := monthsBetween(hireDate, targetDate)

	if yearsWorked >= 1 {
		additionalDays := (yearsWorked - 1) / 2
		if additionalDays > 10 {
			additionalDays = 10
		}
		return AnnualLeave{
			TotalDays:    15 + additionalDays,
			GrantType:    GrantYearly,
			MonthsWorked: monthsWorked,
			YearsWorked:  yearsWorked,
		}
	}

	monthlyDays := monthsWorked
	if monthlyDays > 11 {
		monthlyDays = 11
	}
	if monthlyDays < 0 {
		monthlyDays = 0
	}

	return AnnualLeave{
		TotalDays:    monthlyDays,
		GrantType:    GrantMonthly,
		MonthsWorked: monthsWorked,
		YearsWorked:  yearsWorked,
	}
}

// CalculateAnnualLeaveForYear evaluates the accrual rule at the
// boundaries of one calendar year, for batch grant generation. An
// employee whose first anniversary falls inside the year is treated as a
// flat 15-day yearly grant; the pre-anniversary months are not pro-rated.
func CalculateAnnualLeaveForYear(hireDate time.Time, year int) (totalDays int, grantType string) {
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	if yearEnd.Before(hireDate) {
		return 0, GrantMonthly
	}

	yearsAtYearStart := yearsBetween(hireDate, yearStart)
	yearsAtYearEnd := yearsBetween(hireDate, yearEnd)

	if yearsAtYearEnd >= 1 {
		if yearsAtYearStart < 1 {
			return 15, GrantYearly
		}
		additionalDays := yearsAtYearStart / 2
		if additionalDays > 10 {
			additionalDays = 10
		}
		return 15 + additionalDays, GrantYearly
	}

	months := monthsWorkedInYear(hireDate, year)
	if months > 11 {
		months = 11
	}
	return months, GrantMonthly
}

// monthsWorkedInYear counts the calendar months of the year the employee
// was on payroll, capped at 12.
func monthsWorkedInYear(hireDate time.Time, year int) int {
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	effectiveStart := hireDate
	if hireDate.Before(yearStart) {
		effectiveStart = yearStart
	}

	hireMonth := startOfMonth(hireDate)
	months := 0

	for current := startOfMonth(effectiveStart); !current.After(yearEnd); current = current.AddDate(0, 1, 0) {
		if !current.Before(hireMonth) {
			months++
		}
		if months >= 12 {
			break
		}
	}

	return months
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// CalculateWorkingDays counts the days in the closed range [start, end]
// excluding Saturdays and Sundays. No holiday calendar is consulted.
func CalculateWorkingDays(start, end time.Time) int {
	days := 0
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		if wd := current.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

// CalculateDaysUsed returns the leave days a request consumes. Half-day
// types always cost 0.5 regardless of the range.
func CalculateDaysUsed(leaveType string, start, end time.Time) float64 {
	if leaveType == TypeHalfAM || leaveType == TypeHalfPM {
		return 0.5
	}
	return float64(CalculateWorkingDays(start, end))
}
