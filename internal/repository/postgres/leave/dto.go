package leave

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	UserID *string
	Status *string
	Year   *int
}

type BalanceResponse struct {
	ID            string   `json:"id"`
	UserID        *string  `json:"user_id"`
	LeaveType     *string  `json:"leave_type"`
	Year          int      `json:"year"`
	TotalDays     float64  `json:"total_days"`
	UsedDays      float64  `json:"used_days"`
	RemainingDays float64  `json:"remaining_days"`
}

type CreateCompensatoryRequest struct {
	WorkDate *string  `json:"work_date" form:"work_date"`
	Days     *float64 `json:"days"      form:"days"`
	Reason   *string  `json:"reason"    form:"reason"`
}

type CreateCompensatoryResponse struct {
	ID       string  `json:"id"`
	WorkDate string  `json:"work_date"`
	Days     float64 `json:"days"`
	Status   string  `json:"status"`
}

type CompensatoryListResponse struct {
	ID            string     `json:"id"`
	RequesterID   *string    `json:"requester_id"`
	RequesterName *string    `json:"requester_name"`
	BUCode        *string    `json:"bu_code"`
	WorkDate      *date.Date `json:"work_date"`
	Days          *float64   `json:"days"`
	Reason        *string    `json:"reason"`
	Status        *string    `json:"status"`
	ApprovedAt    *time.Time `json:"approved_at"`
	CreatedAt     *time.Time `json:"created_at"`
}

type RejectCompensatoryRequest struct {
	ID     string  `json:"id"     form:"id"`
	Reason *string `json:"reason" form:"reason"`
}

type GrantResponse struct {
	ID        string     `json:"id"`
	UserID    *string    `json:"user_id"`
	LeaveType *string    `json:"leave_type"`
	Days      float64    `json:"days"`
	GrantType *string    `json:"grant_type"`
	Reason    *string    `json:"reason"`
	GrantedBy *string    `json:"granted_by"`
	Year      int        `json:"year"`
	CreatedAt *time.Time `json:"created_at"`
}

type GenerateResponse struct {
	Year      int `json:"year"`
	Processed int `json:"processed"`
	Granted   int `json:"granted"`
}

type PendingSummaryResponse struct {
	PendingWorkRequests         int `json:"pending_work_requests"`
	PendingCompensatoryRequests int `json:"pending_compensatory_requests"`
}
