// Package workhours derives work minutes, lateness and monthly
// aggregates from attendance sessions. Wall-clock rules (nominal check-in
// time) are evaluated in KST.
package workhours

import (
	"time"

	"erp/backend/internal/entity"
	"erp/backend/internal/pkg/kst"
)

// Policy holds the nominal working-time constants. The defaults mirror
// company policy; deployments override them through configuration.
type Policy struct {
	StandardWorkMinutes int `conf:"default:480"`
	LunchBreakMinutes   int `conf:"default:60"`
	CheckInHour         int `conf:"default:9"`
	CheckInMinute       int `conf:"default:0"`
}

func DefaultPolicy() Policy {
	return Policy{
		StandardWorkMinutes: 480,
		LunchBreakMinutes:   60,
		CheckInHour:         9,
		CheckInMinute:       0,
	}
}

// WorkTimeMinutes returns the net work minutes of a completed session
// after the lunch break deduction. ok is false for open or inverted
// sessions.
func (p Policy) WorkTimeMinutes(checkInAt, checkOutAt *time.Time) (minutes int, ok bool) {
	if checkInAt == nil || checkOutAt == nil {
		return 0, false
	}
	if !checkOutAt.After(*checkInAt) {
		return 0, false
	}

	total := int(checkOutAt.Sub(*checkInAt).Minutes())
	net := total - p.LunchBreakMinutes
	if net < 0 {
		net = 0
	}

	return net, true
}

// CurrentWorkTimeMinutes returns live elapsed work minutes of an open
// session as of now.
func (p Policy) CurrentWorkTimeMinutes(checkInAt *time.Time, now time.Time) int {
	if checkInAt == nil || !now.After(*checkInAt) {
		return 0
	}

	net := int(now.Sub(*checkInAt).Minutes()) - p.LunchBreakMinutes
	if net < 0 {
		net = 0
	}

	return net
}

// IsLate reports whether the KST wall-clock check-in is past the nominal
// start time.
func (p Policy) IsLate(checkInAt *time.Time) bool {
	if checkInAt == nil {
		return false
	}

	local := checkInAt.In(kst.Zone)
	if local.Hour() != p.CheckInHour {
		return local.Hour() > p.CheckInHour
	}
	return local.Minute() > p.CheckInMinute
}

// IsEarlyLeave reports whether a completed session fell short of the
// standard working minutes.
func (p Policy) IsEarlyLeave(checkOutAt *time.Time, workMinutes int, completed bool) bool {
	if checkOutAt == nil || !completed {
		return false
	}
	return workMinutes < p.StandardWorkMinutes
}

// DetermineStatus derives the attendance status of one session.
func (p Policy) DetermineStatus(checkInAt, checkOutAt *time.Time) string {
	if checkInAt == nil {
		return entity.StatusAbsent
	}
	if p.IsLate(checkInAt) {
		return entity.StatusLate
	}

	minutes, completed := p.WorkTimeMinutes(checkInAt, checkOutAt)
	if p.IsEarlyLeave(checkOutAt, minutes, completed) {
		return entity.StatusEarlyLeave
	}

	return entity.StatusPresent
}

// MonthlyStats aggregates one user's sessions over a calendar month.
type MonthlyStats struct {
	Year               int `json:"year"`
	Month              int `json:"month"`
	TotalWorkDays      int `json:"total_work_days"`
	TotalWorkMinutes   int `json:"total_work_minutes"`
	AverageWorkMinutes int `json:"average_work_minutes"`
	LateCount          int `json:"late_count"`
	EarlyLeaveCount    int `json:"early_leave_count"`
	AbsentCount        int `json:"absent_count"`
	VacationCount      int `json:"vacation_count"`
	RemoteCount        int `json:"remote_count"`
	ExternalCount      int `json:"external_count"`
}

// CalculateMonthlyStats folds the given logs into a monthly summary.
// Work days count distinct completed sessions; late and early-leave
// counts come from the stored status.
func (p Policy) CalculateMonthlyStats(logs []entity.AttendanceLog, year, month int) MonthlyStats {
	stats := MonthlyStats{Year: year, Month: month}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, kst.Zone)
	monthEnd := monthStart.AddDate(0, 1, 0)

	workDates := make(map[string]struct{})

	for _, log := range logs {
		logDate, err := time.ParseInLocation("2006-01-02", log.WorkDate, kst.Zone)
		if err != nil || logDate.Before(monthStart) || !logDate.Before(monthEnd) {
			continue
		}

		if minutes, ok := p.WorkTimeMinutes(log.CheckInAt, log.CheckOutAt); ok && minutes > 0 {
			stats.TotalWorkMinutes += minutes
			workDates[log.WorkDate] = struct{}{}
		}

		if log.Status == nil {
			continue
		}
		switch *log.Status {
		case entity.StatusLate:
			stats.LateCount++
		case entity.StatusEarlyLeave:
			stats.EarlyLeaveCount++
		case entity.StatusAbsent:
			stats.AbsentCount++
		case entity.StatusVacation:
			stats.VacationCount++
		case entity.StatusRemote:
			stats.RemoteCount++
		case entity.StatusExternal:
			stats.ExternalCount++
		}
	}

	stats.TotalWorkDays = len(workDates)
	if stats.TotalWorkDays > 0 {
		stats.AverageWorkMinutes = (stats.TotalWorkMinutes + stats.TotalWorkDays/2) / stats.TotalWorkDays
	}

	return stats
}
