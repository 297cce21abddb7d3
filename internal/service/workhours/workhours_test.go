package workhours

import (
	"testing"
	"time"

	"erp/backend/internal/entity"
	"erp/backend/internal/pkg/kst"
)

func kstTime(y int, m time.Month, d, h, min int) *time.Time {
	t := time.Date(y, m, d, h, min, 0, 0, kst.Zone)
	return &t
}

func strPtr(s string) *string { return &s }

func TestWorkTimeMinutes(t *testing.T) {
	p := DefaultPolicy()

	// 09:00 - 18:00 is 540 minutes gross, 480 net of lunch.
	in := kstTime(2026, 1, 6, 9, 0)
	out := kstTime(2026, 1, 6, 18, 0)
	minutes, ok := p.WorkTimeMinutes(in, out)
	if !ok || minutes != 480 {
		t.Errorf("full day = %d/%v, want 480/true", minutes, ok)
	}

	// Open session.
	if _, ok := p.WorkTimeMinutes(in, nil); ok {
		t.Error("open session must not be completed")
	}

	// Inverted session.
	if _, ok := p.WorkTimeMinutes(out, in); ok {
		t.Error("inverted session must not be completed")
	}

	// Shorter than the lunch break clamps to zero.
	short := kstTime(2026, 1, 6, 9, 30)
	minutes, ok = p.WorkTimeMinutes(in, short)
	if !ok || minutes != 0 {
		t.Errorf("short session = %d/%v, want 0/true", minutes, ok)
	}
}

func TestCurrentWorkTimeMinutes(t *testing.T) {
	p := DefaultPolicy()
	in := kstTime(2026, 1, 6, 9, 0)
	now := time.Date(2026, 1, 6, 14, 0, 0, 0, kst.Zone)

	if got := p.CurrentWorkTimeMinutes(in, now); got != 240 {
		t.Errorf("live minutes = %d, want 240", got)
	}
	if got := p.CurrentWorkTimeMinutes(nil, now); got != 0 {
		t.Errorf("no check-in = %d, want 0", got)
	}
}

func TestIsLate(t *testing.T) {
	p := DefaultPolicy()

	if p.IsLate(kstTime(2026, 1, 6, 8, 55)) {
		t.Error("08:55 must not be late")
	}
	if p.IsLate(kstTime(2026, 1, 6, 9, 0)) {
		t.Error("09:00 sharp must not be late")
	}
	if !p.IsLate(kstTime(2026, 1, 6, 9, 1)) {
		t.Error("09:01 must be late")
	}
	if !p.IsLate(kstTime(2026, 1, 6, 10, 0)) {
		t.Error("10:00 must be late")
	}

	// The threshold is KST wall clock regardless of the instant's zone.
	utcIn := time.Date(2026, 1, 6, 0, 30, 0, 0, time.UTC) // 09:30 KST
	if !p.IsLate(&utcIn) {
		t.Error("00:30 UTC is 09:30 KST and must be late")
	}
}

func TestDetermineStatus(t *testing.T) {
	p := DefaultPolicy()

	if got := p.DetermineStatus(nil, nil); got != entity.StatusAbsent {
		t.Errorf("no check-in = %s, want absent", got)
	}

	late := kstTime(2026, 1, 6, 10, 0)
	if got := p.DetermineStatus(late, kstTime(2026, 1, 6, 19, 0)); got != entity.StatusLate {
		t.Errorf("late arrival = %s, want late", got)
	}

	in := kstTime(2026, 1, 6, 9, 0)
	if got := p.DetermineStatus(in, kstTime(2026, 1, 6, 15, 0)); got != entity.StatusEarlyLeave {
		t.Errorf("short day = %s, want early_leave", got)
	}

	if got := p.DetermineStatus(in, kstTime(2026, 1, 6, 18, 0)); got != entity.StatusPresent {
		t.Errorf("full day = %s, want present", got)
	}

	// Open on-time session is still present.
	if got := p.DetermineStatus(in, nil); got != entity.StatusPresent {
		t.Errorf("open session = %s, want present", got)
	}
}

func TestCalculateMonthlyStats(t *testing.T) {
	p := DefaultPolicy()

	logs := []entity.AttendanceLog{
		{
			WorkDate:   "2026-01-05",
			CheckInAt:  kstTime(2026, 1, 5, 9, 0),
			CheckOutAt: kstTime(2026, 1, 5, 18, 0),
			Status:     strPtr(entity.StatusPresent),
		},
		{
			WorkDate:   "2026-01-06",
			CheckInAt:  kstTime(2026, 1, 6, 10, 0),
			CheckOutAt: kstTime(2026, 1, 6, 19, 0),
			Status:     strPtr(entity.StatusLate),
		},
		{
			// Second session on the same day: overtime, same work day.
			WorkDate:   "2026-01-06",
			CheckInAt:  kstTime(2026, 1, 6, 21, 0),
			CheckOutAt: kstTime(2026, 1, 6, 23, 0),
			Status:     strPtr(entity.StatusPresent),
			IsOvertime: true,
		},
		{
			// Open session does not count toward totals.
			WorkDate:  "2026-01-07",
			CheckInAt: kstTime(2026, 1, 7, 9, 0),
			Status:    strPtr(entity.StatusPresent),
		},
		{
			// Different month is ignored.
			WorkDate:   "2026-02-02",
			CheckInAt:  kstTime(2026, 2, 2, 9, 0),
			CheckOutAt: kstTime(2026, 2, 2, 18, 0),
			Status:     strPtr(entity.StatusPresent),
		},
	}

	stats := p.CalculateMonthlyStats(logs, 2026, 1)

	if stats.TotalWorkDays != 2 {
		t.Errorf("total work days = %d, want 2 (distinct dates with completed sessions)", stats.TotalWorkDays)
	}

	// 480 + 480 + 60 net minutes.
	if stats.TotalWorkMinutes != 1020 {
		t.Errorf("total minutes = %d, want 1020", stats.TotalWorkMinutes)
	}
	if stats.AverageWorkMinutes != 510 {
		t.Errorf("average minutes = %d, want 510", stats.AverageWorkMinutes)
	}
	if stats.LateCount != 1 {
		t.Errorf("late count = %d, want 1", stats.LateCount)
	}
	if stats.EarlyLeaveCount != 0 {
		t.Errorf("early leave count = %d, want 0", stats.EarlyLeaveCount)
	}
}
