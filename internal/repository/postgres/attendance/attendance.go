package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"erp/backend/foundation/web"
	"erp/backend/internal/auth"
	"erp/backend/internal/entity"
	"erp/backend/internal/pkg/kst"
	"erp/backend/internal/pkg/permission"
	"erp/backend/internal/pkg/repository/postgresql"
	"erp/backend/internal/repository/postgres"
	"erp/backend/internal/service/workhours"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// pendingAutoCheckoutLimit caps the corrections shown on the status
// endpoint so a long-absent user is not flooded.
const pendingAutoCheckoutLimit = 5

type Repository struct {
	*postgresql.Database
	policy workhours.Policy
}

func NewRepository(database *postgresql.Database, policy workhours.Policy) *Repository {
	return &Repository{Database: database, policy: policy}
}

// CheckIn opens a work session for the caller. The open-session guard is
// part of the insert itself: the row is only written when no open session
// exists, and the partial unique index backs it up under concurrency.
func (r Repository) CheckIn(ctx context.Context, request CheckInRequest) (CheckInResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CheckInResponse{}, err
	}

	workDate := kst.DateOf(time.Now())

	// Lateness is derived at evaluation time, not stored on check-in.
	status := entity.StatusPresent

	verified := request.IsVerifiedLocation != nil && *request.IsVerifiedLocation

	query := fmt.Sprintf(`
		INSERT INTO attendance_logs (id, user_id, work_date, check_in_at, status, is_verified_location, is_overtime, created_at, created_by)
		SELECT '%s', '%s', '%s', now(), '%s', %t,
			EXISTS (
				SELECT 1 FROM attendance_logs
				WHERE user_id = '%s' AND work_date = '%s' AND check_out_at IS NOT NULL AND deleted_at IS NULL
			),
			now(), '%s'
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance_logs
			WHERE user_id = '%s' AND check_in_at IS NOT NULL AND check_out_at IS NULL AND deleted_at IS NULL
		)
		RETURNING id, check_in_at, is_overtime
	`, uuid.NewString(), claims.UserID, workDate, status, verified,
		claims.UserID, workDate,
		claims.UserID,
		claims.UserID)

	var response CheckInResponse
	response.WorkDate = workDate
	response.Status = status

	err = r.QueryRowContext(ctx, query).Scan(&response.ID, &response.CheckInAt, &response.IsOvertime)
	if errors.Is(err, sql.ErrNoRows) {
		return CheckInResponse{}, web.NewRequestError(errors.New("already checked in"), http.StatusBadRequest)
	}
	if err != nil {
		return CheckInResponse{}, web.NewRequestError(errors.Wrap(err, "creating check-in"), http.StatusBadRequest)
	}

	return response, nil
}

// CheckOut closes the caller's newest open session. The session may carry
// yesterday's work_date; overnight sessions close against their own row.
func (r Repository) CheckOut(ctx context.Context) (CheckOutResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CheckOutResponse{}, err
	}

	var open entity.AttendanceLog

	err = r.NewSelect().Model(&open).
		Where("user_id = ? AND check_in_at IS NOT NULL AND check_out_at IS NULL AND deleted_at IS NULL", claims.UserID).
		Order("check_in_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return CheckOutResponse{}, r.checkOutMissError(ctx, claims.UserID)
	}
	if err != nil {
		return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "selecting open session"), http.StatusInternalServerError)
	}

	now := time.Now()
	status := r.policy.DetermineStatus(open.CheckInAt, &now)
	minutes, _ := r.policy.WorkTimeMinutes(open.CheckInAt, &now)

	res, err := r.NewUpdate().Table("attendance_logs").
		Where("id = ? AND check_out_at IS NULL AND deleted_at IS NULL", open.ID).
		Set("check_out_at = ?", now).
		Set("status = ?", status).
		Set("updated_at = ?", now).
		Set("updated_by = ?", claims.UserID).
		Exec(ctx)
	if err != nil {
		return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "updating check-out"), http.StatusBadRequest)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		// Lost the race against another check-out on the same session.
		return CheckOutResponse{}, web.NewRequestError(errors.New("already checked out"), http.StatusBadRequest)
	}

	return CheckOutResponse{
		ID:          open.ID,
		WorkDate:    open.WorkDate,
		CheckInAt:   *open.CheckInAt,
		CheckOutAt:  now,
		Status:      status,
		WorkMinutes: minutes,
	}, nil
}

// checkOutMissError distinguishes "never checked in today" from "already
// checked out" when no open session exists.
func (r Repository) checkOutMissError(ctx context.Context, userID string) error {
	count := 0
	query := fmt.Sprintf(`
		SELECT count(id) FROM attendance_logs
		WHERE user_id = '%s' AND work_date = '%s' AND check_out_at IS NOT NULL AND deleted_at IS NULL
	`, userID, kst.Today())

	if err := r.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return web.NewRequestError(errors.Wrap(err, "scanning completed sessions"), http.StatusInternalServerError)
	}
	if count > 0 {
		return web.NewRequestError(errors.New("already checked out"), http.StatusBadRequest)
	}

	return web.NewRequestError(errors.New("no check-in found"), http.StatusBadRequest)
}

// Status returns the caller's live session state plus any auto-closed
// sessions still awaiting confirmation. With no open session it falls
// back to today's newest row so a checked-out user still sees their
// times and a static minute count.
func (r Repository) Status(ctx context.Context) (StatusResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return StatusResponse{}, err
	}

	response := StatusResponse{PendingAutoCheckouts: []PendingAutoCheckout{}}

	var open entity.AttendanceLog

	err = r.NewSelect().Model(&open).
		Where("user_id = ? AND check_in_at IS NOT NULL AND check_out_at IS NULL AND deleted_at IS NULL", claims.UserID).
		Order("check_in_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return StatusResponse{}, web.NewRequestError(errors.Wrap(err, "selecting open session"), http.StatusInternalServerError)
	}
	if err == nil {
		elapsed := r.policy.CurrentWorkTimeMinutes(open.CheckInAt, time.Now())
		response.CheckedIn = true
		response.LogID = &open.ID
		response.WorkDate = &open.WorkDate
		response.CheckInAt = open.CheckInAt
		response.ElapsedMinutes = &elapsed
		response.Status = open.Status
	} else {
		var last entity.AttendanceLog

		err = r.NewSelect().Model(&last).
			Where("user_id = ? AND work_date = ? AND deleted_at IS NULL", claims.UserID, kst.Today()).
			Order("check_in_at DESC").
			Limit(1).
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return StatusResponse{}, web.NewRequestError(errors.Wrap(err, "selecting today's sessions"), http.StatusInternalServerError)
		}
		if err == nil {
			r.applyClosedSession(&response, last)
		}
	}

	query := fmt.Sprintf(`
		SELECT id, work_date, check_in_at, check_out_at
		FROM attendance_logs
		WHERE user_id = '%s' AND is_auto_checkout = true AND user_confirmed = false AND deleted_at IS NULL
		ORDER BY work_date DESC
		LIMIT %d
	`, claims.UserID, pendingAutoCheckoutLimit)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return StatusResponse{}, web.NewRequestError(errors.Wrap(err, "selecting pending auto checkouts"), http.StatusInternalServerError)
	}
	defer rows.Close()

	for rows.Next() {
		var pending PendingAutoCheckout
		if err = rows.Scan(&pending.ID, &pending.WorkDate, &pending.CheckInAt, &pending.CheckOutAt); err != nil {
			return StatusResponse{}, web.NewRequestError(errors.Wrap(err, "scanning pending auto checkouts"), http.StatusInternalServerError)
		}
		response.PendingAutoCheckouts = append(response.PendingAutoCheckouts, pending)
	}

	return response, nil
}

// applyClosedSession fills the status response from today's most recent
// closed session. Elapsed minutes are static, 0 when times are missing.
func (r Repository) applyClosedSession(response *StatusResponse, detail entity.AttendanceLog) {
	minutes := 0
	if m, ok := r.policy.WorkTimeMinutes(detail.CheckInAt, detail.CheckOutAt); ok {
		minutes = m
	}

	response.CheckedOut = detail.CheckOutAt != nil
	response.LogID = &detail.ID
	response.WorkDate = &detail.WorkDate
	response.CheckInAt = detail.CheckInAt
	response.CheckOutAt = detail.CheckOutAt
	response.ElapsedMinutes = &minutes
	response.Status = detail.Status
}

// validate requires the caller to either confirm the system check-out
// or supply a corrected time; an empty body corrects nothing.
func (request CorrectAutoCheckoutRequest) validate() error {
	confirm := request.Confirm != nil && *request.Confirm
	if !confirm && request.CheckOutTime == nil {
		return web.NewRequestError(errors.New("confirm or check_out_time required"), http.StatusBadRequest)
	}

	return nil
}

// CorrectAutoCheckout lets the owner of an auto-closed session either
// confirm the system check-out or replace it with the real wall-clock
// time. The original instant survives in the modification reason.
func (r Repository) CorrectAutoCheckout(ctx context.Context, request CorrectAutoCheckoutRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}
	if err := request.validate(); err != nil {
		return err
	}

	var detail entity.AttendanceLog

	err = r.NewSelect().Model(&detail).
		Where("id = ? AND deleted_at IS NULL", request.ID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "selecting attendance log"), http.StatusInternalServerError)
	}

	if detail.UserID == nil || *detail.UserID != claims.UserID {
		return web.NewRequestError(errors.New("not your attendance log"), http.StatusForbidden)
	}
	if !detail.IsAutoCheckout || detail.UserConfirmed {
		return web.NewRequestError(errors.New("no pending auto checkout on this log"), http.StatusBadRequest)
	}

	q := r.NewUpdate().Table("attendance_logs").
		Where("id = ? AND is_auto_checkout = true AND user_confirmed = false AND deleted_at IS NULL", request.ID)

	if request.CheckOutTime != nil {
		checkOutAt, err := kst.ToLocalTime(detail.WorkDate, *request.CheckOutTime)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "parsing check-out time"), http.StatusBadRequest)
		}
		if detail.CheckInAt != nil && !checkOutAt.After(*detail.CheckInAt) {
			return web.NewRequestError(errors.New("check-out before check-in"), http.StatusBadRequest)
		}

		original := ""
		if detail.CheckOutAt != nil {
			original = detail.CheckOutAt.In(kst.Zone).Format(time.RFC3339)
		}

		q.Set("check_out_at = ?", checkOutAt)
		q.Set("status = ?", r.policy.DetermineStatus(detail.CheckInAt, &checkOutAt))
		q.Set("is_modified = true")
		q.Set("modification_reason = ?", fmt.Sprintf("auto checkout corrected, original: %s", original))
	}
	q.Set("user_confirmed = true")
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserID)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating auto checkout"), http.StatusBadRequest)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return web.NewRequestError(errors.New("auto checkout already confirmed"), http.StatusBadRequest)
	}

	return nil
}

// AutoCheckoutHistory lists the caller's own auto-closed sessions.
func (r Repository) AutoCheckoutHistory(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	self := claims.UserID
	filter.UserID = &self
	filter.BUCode = nil

	return r.list(ctx, filter, " AND a.is_auto_checkout = true")
}

// GetList returns attendance logs scoped to the caller's visibility:
// HEAD admins and leaders see everyone, unit managers see their unit,
// everyone else sees only themselves.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	actor := permission.FromClaims(claims)

	switch {
	case permission.CanViewAllAttendance(actor):
		// No forced scope.
	case permission.CanViewTeamAttendance(actor, actor.BUCode):
		filter.BUCode = &actor.BUCode
		filter.UserID = nil
	default:
		self := actor.ID
		filter.UserID = &self
		filter.BUCode = nil
	}

	return r.list(ctx, filter, "")
}

func (r Repository) list(ctx context.Context, filter Filter, extraWhere string) ([]GetListResponse, int, error) {
	whereQuery := `
			WHERE
				a.deleted_at IS NULL
			`
	whereQuery += extraWhere

	if filter.UserID != nil {
		userID := strings.Replace(*filter.UserID, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND a.user_id = '%s'", userID)
	}
	if filter.BUCode != nil {
		buCode := strings.Replace(*filter.BUCode, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND u.bu_code = '%s'", buCode)
	}
	if filter.Status != nil {
		status := strings.Replace(*filter.Status, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND a.status = '%s'", status)
	}

	if filter.Date != nil {
		parsed, err := time.Parse("2006-01-02", *filter.Date)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "date parse"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(" AND a.work_date = '%s'", parsed.Format("2006-01-02"))
	}
	if filter.StartDate != nil {
		parsed, err := time.Parse("2006-01-02", *filter.StartDate)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "start date parse"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(" AND a.work_date >= '%s'", parsed.Format("2006-01-02"))
	}
	if filter.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *filter.EndDate)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "end date parse"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(" AND a.work_date <= '%s'", parsed.Format("2006-01-02"))
	}

	orderQuery := "ORDER BY a.work_date desc, a.check_in_at desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}

	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.user_id,
			u.name,
			u.bu_code,
			a.work_date,
			a.check_in_at,
			a.check_out_at,
			a.status,
			a.is_modified,
			a.is_auto_checkout,
			a.is_overtime,
			a.modification_reason
		FROM attendance_logs a
		LEFT JOIN app_users u ON a.user_id = u.id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance logs"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var workDateString string

		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.UserName,
			&detail.BUCode,
			&workDateString,
			&detail.CheckInAt,
			&detail.CheckOutAt,
			&detail.Status,
			&detail.IsModified,
			&detail.IsAutoCheckout,
			&detail.IsOvertime,
			&detail.ModificationReason); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance list"), http.StatusBadRequest)
		}

		workDay, err := date.ParseDate(workDateString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting work_date to date.Date"), http.StatusBadRequest)
		}
		detail.WorkDay = &workDay

		if minutes, ok := r.policy.WorkTimeMinutes(detail.CheckInAt, detail.CheckOutAt); ok {
			detail.WorkMinutes = &minutes
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(a.id)
		FROM attendance_logs a
		LEFT JOIN app_users u ON a.user_id = u.id
		%s
	`, whereQuery)

	count := 0

	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id string) (GetDetailByIdResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.user_id,
			u.name,
			u.bu_code,
			a.work_date,
			a.check_in_at,
			a.check_out_at,
			a.status,
			a.is_modified,
			a.is_verified_location,
			a.is_auto_checkout,
			a.is_overtime,
			a.user_confirmed,
			a.modification_reason
		FROM attendance_logs a
		LEFT JOIN app_users u ON a.user_id = u.id
		WHERE a.deleted_at IS NULL AND a.id = '%s'
	`, strings.Replace(id, "'", "''", -1))

	var detail GetDetailByIdResponse
	var workDateString string

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.UserID,
		&detail.UserName,
		&detail.BUCode,
		&workDateString,
		&detail.CheckInAt,
		&detail.CheckOutAt,
		&detail.Status,
		&detail.IsModified,
		&detail.IsVerifiedLocation,
		&detail.IsAutoCheckout,
		&detail.IsOvertime,
		&detail.UserConfirmed,
		&detail.ModificationReason,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting attendance log"), http.StatusInternalServerError)
	}

	actor := permission.FromClaims(claims)
	targetUserID, targetBUCode := "", ""
	if detail.UserID != nil {
		targetUserID = *detail.UserID
	}
	if detail.BUCode != nil {
		targetBUCode = *detail.BUCode
	}
	if !permission.CanAccessAttendanceLog(actor, targetUserID, targetBUCode) {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	workDay, err := date.ParseDate(workDateString)
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "converting work_date to date.Date"), http.StatusBadRequest)
	}
	detail.WorkDay = &workDay

	if minutes, ok := r.policy.WorkTimeMinutes(detail.CheckInAt, detail.CheckOutAt); ok {
		detail.WorkMinutes = &minutes
	}

	return detail, nil
}

// AdminCreate writes an attendance log on behalf of another user. Times
// come in as KST wall-clock strings against the given work date.
func (r Repository) AdminCreate(ctx context.Context, request AdminCreateRequest) (AdminCreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return AdminCreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "UserID", "WorkDate", "CheckInTime"); err != nil {
		return AdminCreateResponse{}, err
	}

	targetBUCode, err := r.userBUCode(ctx, *request.UserID)
	if err != nil {
		return AdminCreateResponse{}, err
	}

	actor := permission.FromClaims(claims)
	if !permission.CanModifyAttendance(actor, *request.UserID, targetBUCode) {
		return AdminCreateResponse{}, web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	checkInAt, err := kst.ToLocalTime(*request.WorkDate, *request.CheckInTime)
	if err != nil {
		return AdminCreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing check-in time"), http.StatusBadRequest)
	}

	var checkOutAt *time.Time
	if request.CheckOutTime != nil {
		t, err := kst.ToLocalTime(*request.WorkDate, *request.CheckOutTime)
		if err != nil {
			return AdminCreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing check-out time"), http.StatusBadRequest)
		}
		if !t.After(checkInAt) {
			return AdminCreateResponse{}, web.NewRequestError(errors.New("check-out before check-in"), http.StatusBadRequest)
		}
		checkOutAt = &t
	}

	status := r.policy.DetermineStatus(&checkInAt, checkOutAt)
	if request.Status != nil {
		status = *request.Status
	}

	detail := entity.AttendanceLog{
		BasicEntity: entity.BasicEntity{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
			CreatedBy: &claims.UserID,
		},
		UserID:             request.UserID,
		WorkDate:           *request.WorkDate,
		CheckInAt:          &checkInAt,
		CheckOutAt:         checkOutAt,
		Status:             &status,
		IsModified:         true,
		ModificationReason: request.Reason,
	}

	_, err = r.NewInsert().Model(&detail).Exec(ctx)
	if err != nil {
		return AdminCreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating attendance log"), http.StatusBadRequest)
	}

	return AdminCreateResponse{
		ID:         detail.ID,
		UserID:     detail.UserID,
		WorkDate:   detail.WorkDate,
		CheckInAt:  detail.CheckInAt,
		CheckOutAt: detail.CheckOutAt,
		Status:     detail.Status,
	}, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	var detail entity.AttendanceLog

	err = r.NewSelect().Model(&detail).
		Where("id = ? AND deleted_at IS NULL", request.ID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "selecting attendance log"), http.StatusInternalServerError)
	}

	targetUserID := ""
	if detail.UserID != nil {
		targetUserID = *detail.UserID
	}
	targetBUCode, err := r.userBUCode(ctx, targetUserID)
	if err != nil {
		return err
	}

	actor := permission.FromClaims(claims)
	if !permission.CanModifyAttendance(actor, targetUserID, targetBUCode) {
		return web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	q := r.NewUpdate().Table("attendance_logs").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.CheckInTime != nil {
		checkInAt, err := kst.ToLocalTime(detail.WorkDate, *request.CheckInTime)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "parsing check-in time"), http.StatusBadRequest)
		}
		q.Set("check_in_at = ?", checkInAt)
	}
	if request.CheckOutTime != nil {
		checkOutAt, err := kst.ToLocalTime(detail.WorkDate, *request.CheckOutTime)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "parsing check-out time"), http.StatusBadRequest)
		}
		q.Set("check_out_at = ?", checkOutAt)
	}
	if request.Status != nil {
		q.Set("status = ?", request.Status)
	}
	if request.Reason != nil {
		q.Set("modification_reason = ?", request.Reason)
	}
	q.Set("is_modified = true")
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserID)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating attendance log"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id string) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	var detail entity.AttendanceLog

	err = r.NewSelect().Model(&detail).
		Where("id = ? AND deleted_at IS NULL", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "selecting attendance log"), http.StatusInternalServerError)
	}

	targetUserID := ""
	if detail.UserID != nil {
		targetUserID = *detail.UserID
	}
	targetBUCode, err := r.userBUCode(ctx, targetUserID)
	if err != nil {
		return err
	}

	actor := permission.FromClaims(claims)
	if !permission.CanModifyAttendance(actor, targetUserID, targetBUCode) {
		return web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	return r.DeleteRow(ctx, "attendance_logs", id)
}

// MonthlyLogs returns one user's raw sessions for a calendar month.
func (r Repository) MonthlyLogs(ctx context.Context, userID string, year, month int) ([]entity.AttendanceLog, error) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, kst.Zone)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var list []entity.AttendanceLog

	err := r.NewSelect().Model(&list).
		Where("user_id = ? AND work_date BETWEEN ? AND ? AND deleted_at IS NULL",
			userID, monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02")).
		Order("work_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting monthly logs"), http.StatusInternalServerError)
	}

	return list, nil
}

// MonthlyStats aggregates one user's month. Visibility follows the same
// scope as the list endpoint.
func (r Repository) MonthlyStats(ctx context.Context, userID string, year, month int) (workhours.MonthlyStats, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return workhours.MonthlyStats{}, err
	}

	if userID == "" {
		userID = claims.UserID
	}

	if userID != claims.UserID {
		targetBUCode, err := r.userBUCode(ctx, userID)
		if err != nil {
			return workhours.MonthlyStats{}, err
		}

		actor := permission.FromClaims(claims)
		if !permission.CanViewAllAttendance(actor) && !permission.CanViewTeamAttendance(actor, targetBUCode) {
			return workhours.MonthlyStats{}, web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
		}
	}

	logs, err := r.MonthlyLogs(ctx, userID, year, month)
	if err != nil {
		return workhours.MonthlyStats{}, err
	}

	return r.policy.CalculateMonthlyStats(logs, year, month), nil
}

// TeamStats summarizes one business unit for a single KST date.
func (r Repository) TeamStats(ctx context.Context, buCode, day string) (TeamStatsResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return TeamStatsResponse{}, err
	}

	actor := permission.FromClaims(claims)
	if buCode == "" {
		buCode = actor.BUCode
	}
	if day == "" {
		day = kst.Today()
	}

	if !permission.CanViewAllAttendance(actor) && !permission.CanViewTeamAttendance(actor, buCode) {
		return TeamStatsResponse{}, web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	safeBU := strings.Replace(buCode, "'", "''", -1)
	safeDay := strings.Replace(day, "'", "''", -1)

	query := fmt.Sprintf(`
		SELECT
			(SELECT count(id) FROM app_users WHERE bu_code = '%s' AND is_active = true AND deleted_at IS NULL) AS total_members,
			count(a.id) FILTER (WHERE a.check_in_at IS NOT NULL) AS checked_in,
			count(a.id) FILTER (WHERE a.check_out_at IS NOT NULL) AS checked_out,
			count(a.id) FILTER (WHERE a.status = 'late') AS late
		FROM attendance_logs a
		JOIN app_users u ON a.user_id = u.id
		WHERE u.bu_code = '%s' AND a.work_date = '%s' AND a.deleted_at IS NULL
	`, safeBU, safeBU, safeDay)

	response := TeamStatsResponse{BUCode: buCode, Date: day}

	err = r.QueryRowContext(ctx, query).Scan(
		&response.TotalMembers,
		&response.CheckedIn,
		&response.CheckedOut,
		&response.Late,
	)
	if err != nil {
		return TeamStatsResponse{}, web.NewRequestError(errors.Wrap(err, "scanning team stats"), http.StatusInternalServerError)
	}

	response.Absent = response.TotalMembers - response.CheckedIn
	if response.Absent < 0 {
		response.Absent = 0
	}

	return response, nil
}

// AutoCheckoutBatch closes every open session carried over from a past
// KST work date. Sessions close at the end of their own work date and
// stay flagged until the owner confirms or corrects them.
func (r Repository) AutoCheckoutBatch(ctx context.Context) (AutoCheckoutBatchResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return AutoCheckoutBatchResponse{}, err
	}

	query := fmt.Sprintf(`
		UPDATE attendance_logs
		SET check_out_at = (work_date::timestamp + interval '23 hours 59 minutes') AT TIME ZONE 'Asia/Seoul',
			is_auto_checkout = true,
			user_confirmed = false,
			updated_at = now()
		WHERE check_in_at IS NOT NULL
			AND check_out_at IS NULL
			AND deleted_at IS NULL
			AND work_date < '%s'
		RETURNING id
	`, kst.Today())

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return AutoCheckoutBatchResponse{}, web.NewRequestError(errors.Wrap(err, "running auto checkout batch"), http.StatusInternalServerError)
	}
	defer rows.Close()

	response := AutoCheckoutBatchResponse{LogIDs: []string{}}

	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return AutoCheckoutBatchResponse{}, web.NewRequestError(errors.Wrap(err, "scanning auto checkout ids"), http.StatusInternalServerError)
		}
		response.LogIDs = append(response.LogIDs, id)
	}
	response.Processed = len(response.LogIDs)

	return response, nil
}

func (r Repository) userBUCode(ctx context.Context, userID string) (string, error) {
	var buCode sql.NullString

	query := fmt.Sprintf(`
		SELECT bu_code FROM app_users WHERE id = '%s' AND deleted_at IS NULL
	`, strings.Replace(userID, "'", "''", -1))

	err := r.QueryRowContext(ctx, query).Scan(&buCode)
	if errors.Is(err, sql.ErrNoRows) {
		return "", web.NewRequestError(errors.New("user not found"), http.StatusNotFound)
	}
	if err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "scanning user bu_code"), http.StatusInternalServerError)
	}

	return buCode.String, nil
}
