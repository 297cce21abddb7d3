package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Request lifecycle states. A request leaves pending exactly once.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"

	// RequestTypeCorrection asks for an attendance fix rather than leave.
	RequestTypeCorrection = "attendance_correction"
)

// WorkRequest is a leave or attendance-correction request awaiting
// approval by someone with authority over the requester's business unit.
type WorkRequest struct {
	bun.BaseModel `bun:"table:work_requests"`

	BasicEntity
	RequesterID     *string    `json:"requester_id"     bun:"requester_id"`
	ApproverID      *string    `json:"approver_id"      bun:"approver_id"`
	RequestType     *string    `json:"request_type"     bun:"request_type"`
	Status          *string    `json:"status"           bun:"status"`
	StartDate       string     `json:"start_date"       bun:"start_date"`
	EndDate         string     `json:"end_date"         bun:"end_date"`
	DaysUsed        float64    `json:"days_used"        bun:"days_used"`
	Reason          *string    `json:"reason"           bun:"reason"`
	RejectionReason *string    `json:"rejection_reason" bun:"rejection_reason"`
	ProcessedAt     *time.Time `json:"processed_at"     bun:"processed_at"`
}

// CompensatoryRequest asks for extra leave in exchange for worked
// holidays. Only a HEAD admin may approve; approval mutates the leave
// balance and appends a grant record.
type CompensatoryRequest struct {
	bun.BaseModel `bun:"table:compensatory_requests"`

	BasicEntity
	RequesterID *string    `json:"requester_id" bun:"requester_id"`
	ApproverID  *string    `json:"approver_id"  bun:"approver_id"`
	WorkDate    string     `json:"work_date"    bun:"work_date"`
	Days        float64    `json:"days"         bun:"days"`
	Reason      *string    `json:"reason"       bun:"reason"`
	Status      *string    `json:"status"       bun:"status"`
	ApprovedAt  *time.Time `json:"approved_at"  bun:"approved_at"`
}
