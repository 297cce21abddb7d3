package workrequest

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
)

type Filter struct {
	Limit       *int
	Offset      *int
	Page        *int
	RequesterID *string
	BUCode      *string
	Status      *string
	RequestType *string
}

type CreateRequest struct {
	RequestType *string `json:"request_type" form:"request_type"`
	StartDate   *string `json:"start_date"   form:"start_date"`
	EndDate     *string `json:"end_date"     form:"end_date"`
	Reason      *string `json:"reason"       form:"reason"`
}

type CreateResponse struct {
	ID          string  `json:"id"`
	RequestType *string `json:"request_type"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	DaysUsed    float64 `json:"days_used"`
	Status      string  `json:"status"`
}

type GetListResponse struct {
	ID              string     `json:"id"`
	RequesterID     *string    `json:"requester_id"`
	RequesterName   *string    `json:"requester_name"`
	BUCode          *string    `json:"bu_code"`
	RequestType     *string    `json:"request_type"`
	Status          *string    `json:"status"`
	StartDate       *date.Date `json:"start_date"`
	EndDate         *date.Date `json:"end_date"`
	DaysUsed        *float64   `json:"days_used"`
	Reason          *string    `json:"reason"`
	RejectionReason *string    `json:"rejection_reason"`
	ProcessedAt     *time.Time `json:"processed_at"`
	CreatedAt       *time.Time `json:"created_at"`
}

type GetDetailByIdResponse struct {
	ID              string     `json:"id"`
	RequesterID     *string    `json:"requester_id"`
	RequesterName   *string    `json:"requester_name"`
	BUCode          *string    `json:"bu_code"`
	ApproverID      *string    `json:"approver_id"`
	RequestType     *string    `json:"request_type"`
	Status          *string    `json:"status"`
	StartDate       *date.Date `json:"start_date"`
	EndDate         *date.Date `json:"end_date"`
	DaysUsed        *float64   `json:"days_used"`
	Reason          *string    `json:"reason"`
	RejectionReason *string    `json:"rejection_reason"`
	ProcessedAt     *time.Time `json:"processed_at"`
	CreatedAt       *time.Time `json:"created_at"`
}

type RejectRequest struct {
	ID     string  `json:"id"     form:"id"`
	Reason *string `json:"reason" form:"reason"`
}
