package entity

import "github.com/uptrace/bun"

// LeaveBalance is per user, leave type and year. used_days never exceeds
// total_days; the deduction path enforces it with a conditional update
// and the table carries a matching check constraint.
type LeaveBalance struct {
	bun.BaseModel `bun:"table:leave_balances"`

	BasicEntity
	UserID    *string `json:"user_id"    bun:"user_id"`
	LeaveType *string `json:"leave_type" bun:"leave_type"`
	Year      int     `json:"year"       bun:"year"`
	TotalDays float64 `json:"total_days" bun:"total_days"`
	UsedDays  float64 `json:"used_days"  bun:"used_days"`
}

// LeaveGrant is the append-only audit trail of balance changes.
type LeaveGrant struct {
	bun.BaseModel `bun:"table:leave_grants"`

	BasicEntity
	UserID    *string `json:"user_id"    bun:"user_id"`
	LeaveType *string `json:"leave_type" bun:"leave_type"`
	Days      float64 `json:"days"       bun:"days"`
	GrantType *string `json:"grant_type" bun:"grant_type"`
	Reason    *string `json:"reason"     bun:"reason"`
	GrantedBy *string `json:"granted_by" bun:"granted_by"`
	Year      int     `json:"year"       bun:"year"`
}
