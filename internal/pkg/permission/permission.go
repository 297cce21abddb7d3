// Package permission holds the pure role/BU authorization predicates
// shared by every handler. The predicates never perform I/O and never
// fail; the caller turns a false result into a 403.
package permission

import "erp/backend/internal/auth"

// BUHead is the organization-wide business unit. Leaders and admins in
// this unit have company-wide authority.
const BUHead = "HEAD"

// Actor is the resolved identity a predicate is evaluated against.
type Actor struct {
	ID     string
	Role   string
	BUCode string
}

// FromClaims maps authenticated claims onto an Actor.
func FromClaims(claims auth.Claims) Actor {
	return Actor{ID: claims.UserID, Role: claims.Role, BUCode: claims.BUCode}
}

func IsAdmin(a Actor) bool {
	return a.Role == auth.RoleAdmin
}

func IsLeader(a Actor) bool {
	return a.Role == auth.RoleLeader
}

// IsHeadLeader reports whether a is a leader of the HEAD business unit.
// HEAD leaders carry admin-equivalent attendance authority.
func IsHeadLeader(a Actor) bool {
	return IsLeader(a) && a.BUCode == BUHead
}

// IsManager reports whether a holds any people-management role.
func IsManager(a Actor) bool {
	return a.Role == auth.RoleAdmin || a.Role == auth.RoleLeader || a.Role == auth.RoleManager
}

// CanViewAllAttendance grants organization-wide attendance visibility:
// admins and leaders of the HEAD unit only.
func CanViewAllAttendance(a Actor) bool {
	if a.Role != auth.RoleAdmin && a.Role != auth.RoleLeader {
		return false
	}
	return a.BUCode == BUHead
}

// CanViewTeamAttendance grants attendance visibility within a single
// business unit: leaders, managers and admins of that same unit.
func CanViewTeamAttendance(a Actor, targetBUCode string) bool {
	if targetBUCode == "" {
		return false
	}
	if a.Role != auth.RoleAdmin && a.Role != auth.RoleLeader && a.Role != auth.RoleManager {
		return false
	}
	return a.BUCode == targetBUCode
}

// CanModifyAttendance allows a user to touch an attendance record: their
// own, or one they hold team/all visibility over.
func CanModifyAttendance(a Actor, targetUserID, targetBUCode string) bool {
	if a.ID != "" && a.ID == targetUserID {
		return true
	}
	return CanViewTeamAttendance(a, targetBUCode) || CanViewAllAttendance(a)
}

// CanAccessAttendanceLog covers read access to a single log: self,
// admins, HEAD leaders, and leaders of the owner's unit.
func CanAccessAttendanceLog(a Actor, targetUserID, targetBUCode string) bool {
	if a.ID != "" && a.ID == targetUserID {
		return true
	}
	if IsAdmin(a) || IsHeadLeader(a) {
		return true
	}
	return IsLeader(a) && targetBUCode != "" && a.BUCode == targetBUCode
}

// CanApproveRequest grants approval authority over a requester's unit:
// any admin, or a leader of that same unit.
func CanApproveRequest(a Actor, requesterBUCode string) bool {
	if IsAdmin(a) {
		return true
	}
	return IsLeader(a) && requesterBUCode != "" && a.BUCode == requesterBUCode
}

// CanApproveCompensatory is restricted to HEAD admins; compensatory
// grants mutate leave balances company-wide.
func CanApproveCompensatory(a Actor) bool {
	return IsAdmin(a) && a.BUCode == BUHead
}
