package attendance

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
)

type Filter struct {
	Limit     *int
	Offset    *int
	Page      *int
	UserID    *string
	BUCode    *string
	Status    *string
	Date      *string
	StartDate *string
	EndDate   *string
}

type CheckInRequest struct {
	IsVerifiedLocation *bool `json:"is_verified_location" form:"is_verified_location"`
}

type CheckInResponse struct {
	ID         string    `json:"id"`
	WorkDate   string    `json:"work_date"`
	CheckInAt  time.Time `json:"check_in_at"`
	Status     string    `json:"status"`
	IsOvertime bool      `json:"is_overtime"`
}

type CheckOutResponse struct {
	ID          string    `json:"id"`
	WorkDate    string    `json:"work_date"`
	CheckInAt   time.Time `json:"check_in_at"`
	CheckOutAt  time.Time `json:"check_out_at"`
	Status      string    `json:"status"`
	WorkMinutes int       `json:"work_minutes"`
}

type PendingAutoCheckout struct {
	ID         string     `json:"id"`
	WorkDate   string     `json:"work_date"`
	CheckInAt  *time.Time `json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at"`
}

type StatusResponse struct {
	CheckedIn            bool                  `json:"checked_in"`
	CheckedOut           bool                  `json:"checked_out"`
	LogID                *string               `json:"log_id,omitempty"`
	WorkDate             *string               `json:"work_date,omitempty"`
	CheckInAt            *time.Time            `json:"check_in_at,omitempty"`
	CheckOutAt           *time.Time            `json:"check_out_at,omitempty"`
	ElapsedMinutes       *int                  `json:"elapsed_minutes,omitempty"`
	Status               *string               `json:"status,omitempty"`
	PendingAutoCheckouts []PendingAutoCheckout `json:"pending_auto_checkouts"`
}

type CorrectAutoCheckoutRequest struct {
	ID           string  `json:"id" form:"id"`
	Confirm      *bool   `json:"confirm"        form:"confirm"`
	CheckOutTime *string `json:"check_out_time" form:"check_out_time"`
}

type GetListResponse struct {
	ID                 string     `json:"id"`
	UserID             *string    `json:"user_id"`
	UserName           *string    `json:"user_name"`
	BUCode             *string    `json:"bu_code"`
	WorkDay            *date.Date `json:"work_day"`
	CheckInAt          *time.Time `json:"check_in_at"`
	CheckOutAt         *time.Time `json:"check_out_at"`
	Status             *string    `json:"status"`
	IsModified         *bool      `json:"is_modified"`
	IsAutoCheckout     *bool      `json:"is_auto_checkout"`
	IsOvertime         *bool      `json:"is_overtime"`
	WorkMinutes        *int       `json:"work_minutes,omitempty"`
	ModificationReason *string    `json:"modification_reason,omitempty"`
}

type GetDetailByIdResponse struct {
	ID                 string     `json:"id"`
	UserID             *string    `json:"user_id"`
	UserName           *string    `json:"user_name"`
	BUCode             *string    `json:"bu_code"`
	WorkDay            *date.Date `json:"work_day"`
	CheckInAt          *time.Time `json:"check_in_at"`
	CheckOutAt         *time.Time `json:"check_out_at"`
	Status             *string    `json:"status"`
	IsModified         *bool      `json:"is_modified"`
	IsVerifiedLocation *bool      `json:"is_verified_location"`
	IsAutoCheckout     *bool      `json:"is_auto_checkout"`
	IsOvertime         *bool      `json:"is_overtime"`
	UserConfirmed      *bool      `json:"user_confirmed"`
	ModificationReason *string    `json:"modification_reason"`
	WorkMinutes        *int       `json:"work_minutes,omitempty"`
}

type AdminCreateRequest struct {
	UserID       *string `json:"user_id"        form:"user_id"`
	WorkDate     *string `json:"work_date"      form:"work_date"`
	CheckInTime  *string `json:"check_in_time"  form:"check_in_time"`
	CheckOutTime *string `json:"check_out_time" form:"check_out_time"`
	Status       *string `json:"status"         form:"status"`
	Reason       *string `json:"reason"         form:"reason"`
}

type AdminCreateResponse struct {
	ID         string     `json:"id"`
	UserID     *string    `json:"user_id"`
	WorkDate   string     `json:"work_date"`
	CheckInAt  *time.Time `json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at"`
	Status     *string    `json:"status"`
}

type UpdateRequest struct {
	ID           string  `json:"id" form:"id"`
	CheckInTime  *string `json:"check_in_time"  form:"check_in_time"`
	CheckOutTime *string `json:"check_out_time" form:"check_out_time"`
	Status       *string `json:"status"         form:"status"`
	Reason       *string `json:"reason"         form:"reason"`
}

type TeamStatsResponse struct {
	BUCode       string `json:"bu_code"`
	Date         string `json:"date"`
	TotalMembers int    `json:"total_members"`
	CheckedIn    int    `json:"checked_in"`
	CheckedOut   int    `json:"checked_out"`
	Late         int    `json:"late"`
	Absent       int    `json:"absent"`
}

type AutoCheckoutBatchResponse struct {
	Processed int      `json:"processed"`
	LogIDs    []string `json:"log_ids"`
}
