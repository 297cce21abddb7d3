package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance status values.
const (
	StatusPresent    = "present"
	StatusAbsent     = "absent"
	StatusLate       = "late"
	StatusEarlyLeave = "early_leave"
	StatusVacation   = "vacation"
	StatusRemote     = "remote"
	StatusExternal   = "external"
)

// AttendanceLog is one continuous work session. A row with a check-in
// and no check-out is an open session; at most one exists per user.
type AttendanceLog struct {
	bun.BaseModel `bun:"table:attendance_logs"`

	BasicEntity
	UserID             *string    `json:"user_id"              bun:"user_id"`
	WorkDate           string     `json:"work_date"            bun:"work_date"`
	CheckInAt          *time.Time `json:"check_in_at"          bun:"check_in_at"`
	CheckOutAt         *time.Time `json:"check_out_at"         bun:"check_out_at"`
	Status             *string    `json:"status"               bun:"status"`
	IsModified         bool       `json:"is_modified"          bun:"is_modified"`
	IsVerifiedLocation bool       `json:"is_verified_location" bun:"is_verified_location"`
	IsOvertime         bool       `json:"is_overtime"          bun:"is_overtime"`
	IsAutoCheckout     bool       `json:"is_auto_checkout"     bun:"is_auto_checkout"`
	UserConfirmed      bool       `json:"user_confirmed"       bun:"user_confirmed"`
	ModificationReason *string    `json:"modification_reason"  bun:"modification_reason"`
}
