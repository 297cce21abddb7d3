package workrequest

import "testing"

func TestValidRequestType(t *testing.T) {
	valid := []string{"annual", "half_am", "half_pm", "compensatory", "special", "attendance_correction"}
	for _, requestType := range valid {
		if !validRequestType(requestType) {
			t.Errorf("validRequestType(%q) = false, want true", requestType)
		}
	}

	invalid := []string{
		"",
		"vacation",
		"ANNUAL",
		"annual ",
		"annual','pending','2026-01-01','2026-01-01',99,'',now(),'x') RETURNING id; --",
	}
	for _, requestType := range invalid {
		if validRequestType(requestType) {
			t.Errorf("validRequestType(%q) = true, want false", requestType)
		}
	}
}
