package attendance

import (
	"testing"
	"time"

	"erp/backend/internal/entity"
	"erp/backend/internal/pkg/kst"
	"erp/backend/internal/service/workhours"
)

func TestApplyClosedSession(t *testing.T) {
	r := Repository{policy: workhours.DefaultPolicy()}

	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, kst.Zone)
	checkOut := time.Date(2026, 3, 2, 18, 0, 0, 0, kst.Zone)
	status := entity.StatusPresent

	detail := entity.AttendanceLog{
		BasicEntity: entity.BasicEntity{ID: "log-1"},
		WorkDate:    "2026-03-02",
		CheckInAt:   &checkIn,
		CheckOutAt:  &checkOut,
		Status:      &status,
	}

	var response StatusResponse
	r.applyClosedSession(&response, detail)

	if response.CheckedIn {
		t.Error("checked_in should stay false for a closed session")
	}
	if !response.CheckedOut {
		t.Error("expected checked_out true")
	}
	if response.LogID == nil || *response.LogID != "log-1" {
		t.Errorf("log id = %v, want log-1", response.LogID)
	}
	if response.WorkDate == nil || *response.WorkDate != "2026-03-02" {
		t.Errorf("work date = %v, want 2026-03-02", response.WorkDate)
	}
	if response.CheckInAt == nil || !response.CheckInAt.Equal(checkIn) {
		t.Errorf("check-in = %v, want %v", response.CheckInAt, checkIn)
	}
	if response.CheckOutAt == nil || !response.CheckOutAt.Equal(checkOut) {
		t.Errorf("check-out = %v, want %v", response.CheckOutAt, checkOut)
	}
	if response.ElapsedMinutes == nil || *response.ElapsedMinutes != 480 {
		t.Errorf("elapsed minutes = %v, want 480", response.ElapsedMinutes)
	}
	if response.Status == nil || *response.Status != entity.StatusPresent {
		t.Errorf("status = %v, want present", response.Status)
	}
}

func TestApplyClosedSessionNoTimes(t *testing.T) {
	r := Repository{policy: workhours.DefaultPolicy()}

	detail := entity.AttendanceLog{
		BasicEntity: entity.BasicEntity{ID: "log-2"},
		WorkDate:    "2026-03-02",
	}

	var response StatusResponse
	r.applyClosedSession(&response, detail)

	if response.CheckedOut {
		t.Error("checked_out should be false without a check-out")
	}
	if response.ElapsedMinutes == nil || *response.ElapsedMinutes != 0 {
		t.Errorf("elapsed minutes = %v, want 0", response.ElapsedMinutes)
	}
}

func TestCorrectAutoCheckoutRequestValidate(t *testing.T) {
	confirm := true
	decline := false
	checkOutTime := "18:30"

	cases := []struct {
		name    string
		request CorrectAutoCheckoutRequest
		wantErr bool
	}{
		{"confirm only", CorrectAutoCheckoutRequest{ID: "a", Confirm: &confirm}, false},
		{"corrected time only", CorrectAutoCheckoutRequest{ID: "a", CheckOutTime: &checkOutTime}, false},
		{"declined but corrected", CorrectAutoCheckoutRequest{ID: "a", Confirm: &decline, CheckOutTime: &checkOutTime}, false},
		{"empty body", CorrectAutoCheckoutRequest{ID: "a"}, true},
		{"confirm false only", CorrectAutoCheckoutRequest{ID: "a", Confirm: &decline}, true},
	}

	for _, tc := range cases {
		err := tc.request.validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: validate() error = %v, wantErr %t", tc.name, err, tc.wantErr)
		}
	}
}
