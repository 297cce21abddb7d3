package permission

import (
	"testing"

	"erp/backend/internal/auth"
)

func TestCanViewAllAttendance(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"head admin", Actor{Role: auth.RoleAdmin, BUCode: BUHead}, true},
		{"head leader", Actor{Role: auth.RoleLeader, BUCode: BUHead}, true},
		{"branch admin", Actor{Role: auth.RoleAdmin, BUCode: "BU01"}, false},
		{"branch leader", Actor{Role: auth.RoleLeader, BUCode: "BU01"}, false},
		{"head member", Actor{Role: auth.RoleMember, BUCode: BUHead}, false},
		{"member", Actor{Role: auth.RoleMember, BUCode: "BU01"}, false},
		{"artist", Actor{Role: auth.RoleArtist, BUCode: BUHead}, false},
	}

	for _, tt := range tests {
		if got := CanViewAllAttendance(tt.actor); got != tt.want {
			t.Errorf("%s: CanViewAllAttendance = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCanViewTeamAttendance(t *testing.T) {
	tests := []struct {
		name     string
		actor    Actor
		targetBU string
		want     bool
	}{
		{"leader same bu", Actor{Role: auth.RoleLeader, BUCode: "BU01"}, "BU01", true},
		{"manager same bu", Actor{Role: auth.RoleManager, BUCode: "BU01"}, "BU01", true},
		{"admin same bu", Actor{Role: auth.RoleAdmin, BUCode: "BU01"}, "BU01", true},
		{"leader other bu", Actor{Role: auth.RoleLeader, BUCode: "BU01"}, "BU02", false},
		{"member same bu", Actor{Role: auth.RoleMember, BUCode: "BU01"}, "BU01", false},
		{"empty target", Actor{Role: auth.RoleLeader, BUCode: "BU01"}, "", false},
	}

	for _, tt := range tests {
		if got := CanViewTeamAttendance(tt.actor, tt.targetBU); got != tt.want {
			t.Errorf("%s: CanViewTeamAttendance = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCanModifyAttendance(t *testing.T) {
	self := Actor{ID: "u1", Role: auth.RoleMember, BUCode: "BU01"}
	if !CanModifyAttendance(self, "u1", "BU01") {
		t.Error("users must be able to modify their own record")
	}
	if CanModifyAttendance(self, "u2", "BU01") {
		t.Error("member must not modify another user's record")
	}

	leader := Actor{ID: "u3", Role: auth.RoleLeader, BUCode: "BU01"}
	if !CanModifyAttendance(leader, "u2", "BU01") {
		t.Error("leader must modify records within own BU")
	}
	if CanModifyAttendance(leader, "u2", "BU02") {
		t.Error("leader must not modify records of another BU")
	}

	headLeader := Actor{ID: "u4", Role: auth.RoleLeader, BUCode: BUHead}
	if !CanModifyAttendance(headLeader, "u2", "BU02") {
		t.Error("HEAD leader must modify records of any BU")
	}
}

func TestCanApproveRequest(t *testing.T) {
	admin := Actor{ID: "a", Role: auth.RoleAdmin, BUCode: "BU09"}
	if !CanApproveRequest(admin, "BU01") {
		t.Error("admin must approve any BU")
	}

	leader := Actor{ID: "l", Role: auth.RoleLeader, BUCode: "BU01"}
	if !CanApproveRequest(leader, "BU01") {
		t.Error("leader must approve own BU")
	}
	if CanApproveRequest(leader, "BU02") {
		t.Error("leader must not approve another BU")
	}

	manager := Actor{ID: "m", Role: auth.RoleManager, BUCode: "BU01"}
	if CanApproveRequest(manager, "BU01") {
		t.Error("manager has no approval authority")
	}
}

func TestCanApproveCompensatory(t *testing.T) {
	if !CanApproveCompensatory(Actor{Role: auth.RoleAdmin, BUCode: BUHead}) {
		t.Error("HEAD admin must approve compensatory requests")
	}
	if CanApproveCompensatory(Actor{Role: auth.RoleAdmin, BUCode: "BU01"}) {
		t.Error("branch admin must not approve compensatory requests")
	}
	if CanApproveCompensatory(Actor{Role: auth.RoleLeader, BUCode: BUHead}) {
		t.Error("HEAD leader must not approve compensatory requests")
	}
}

func TestIsManager(t *testing.T) {
	for role, want := range map[string]bool{
		auth.RoleAdmin:   true,
		auth.RoleLeader:  true,
		auth.RoleManager: true,
		auth.RoleMember:  false,
		auth.RoleViewer:  false,
		auth.RoleArtist:  false,
	} {
		if got := IsManager(Actor{Role: role}); got != want {
			t.Errorf("IsManager(%s) = %v, want %v", role, got, want)
		}
	}
}

func TestCanAccessAttendanceLog(t *testing.T) {
	if !CanAccessAttendanceLog(Actor{ID: "u1", Role: auth.RoleArtist}, "u1", "BU01") {
		t.Error("owner must access own log")
	}
	if !CanAccessAttendanceLog(Actor{ID: "x", Role: auth.RoleAdmin, BUCode: "BU05"}, "u1", "BU01") {
		t.Error("admin must access any log")
	}
	if CanAccessAttendanceLog(Actor{ID: "x", Role: auth.RoleManager, BUCode: "BU01"}, "u1", "BU01") {
		t.Error("manager must not access another user's log")
	}
}
