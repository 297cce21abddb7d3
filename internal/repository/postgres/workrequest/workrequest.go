package workrequest

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"erp/backend/foundation/web"
	"erp/backend/internal/entity"
	"erp/backend/internal/pkg/permission"
	"erp/backend/internal/pkg/repository/postgresql"
	"erp/backend/internal/repository/postgres"
	"erp/backend/internal/service/leavemath"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Request types that consume a leave balance on approval, mapped to the
// balance they draw from. Half-day types draw from the annual balance.
var balanceType = map[string]string{
	leavemath.TypeAnnual:       leavemath.TypeAnnual,
	leavemath.TypeHalfAM:       leavemath.TypeAnnual,
	leavemath.TypeHalfPM:       leavemath.TypeAnnual,
	leavemath.TypeCompensatory: leavemath.TypeCompensatory,
	leavemath.TypeSpecial:      leavemath.TypeSpecial,
}

// requestTypes is the closed set accepted from clients. Anything else
// is rejected before the value reaches SQL.
var requestTypes = map[string]bool{
	leavemath.TypeAnnual:         true,
	leavemath.TypeHalfAM:         true,
	leavemath.TypeHalfPM:         true,
	leavemath.TypeCompensatory:   true,
	leavemath.TypeSpecial:        true,
	entity.RequestTypeCorrection: true,
}

func validRequestType(requestType string) bool {
	return requestTypes[requestType]
}

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Create files a request for the caller. Days are derived from the type
// and range; an overlapping pending or approved request blocks the
// insert inside the statement itself.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "RequestType", "StartDate", "EndDate"); err != nil {
		return CreateResponse{}, err
	}

	if !validRequestType(*request.RequestType) {
		return CreateResponse{}, web.NewRequestError(errors.New("unknown request type"), http.StatusBadRequest)
	}

	start, err := time.Parse("2006-01-02", *request.StartDate)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing start date"), http.StatusBadRequest)
	}
	end, err := time.Parse("2006-01-02", *request.EndDate)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing end date"), http.StatusBadRequest)
	}
	if end.Before(start) {
		return CreateResponse{}, web.NewRequestError(errors.New("end date before start date"), http.StatusBadRequest)
	}

	days := leavemath.CalculateDaysUsed(*request.RequestType, start, end)

	reason := ""
	if request.Reason != nil {
		reason = strings.Replace(*request.Reason, "'", "''", -1)
	}

	query := fmt.Sprintf(`
		INSERT INTO work_requests (id, requester_id, request_type, status, start_date, end_date, days_used, reason, created_at, created_by)
		SELECT '%s', '%s', '%s', 'pending', '%s', '%s', %v, '%s', now(), '%s'
		WHERE NOT EXISTS (
			SELECT 1 FROM work_requests
			WHERE requester_id = '%s'
				AND status IN ('pending', 'approved')
				AND deleted_at IS NULL
				AND start_date <= '%s'
				AND end_date >= '%s'
		)
		RETURNING id
	`, uuid.NewString(), claims.UserID, *request.RequestType,
		start.Format("2006-01-02"), end.Format("2006-01-02"), days, reason, claims.UserID,
		claims.UserID, end.Format("2006-01-02"), start.Format("2006-01-02"))

	var response CreateResponse

	err = r.QueryRowContext(ctx, query).Scan(&response.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return CreateResponse{}, web.NewRequestError(errors.New("overlapping request exists"), http.StatusBadRequest)
	}
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating work request"), http.StatusBadRequest)
	}

	response.RequestType = request.RequestType
	response.StartDate = start.Format("2006-01-02")
	response.EndDate = end.Format("2006-01-02")
	response.DaysUsed = days
	response.Status = entity.RequestPending

	return response, nil
}

// GetList scopes visibility the same way attendance does: admins see all,
// leaders and managers their unit, everyone else their own requests.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	actor := permission.FromClaims(claims)

	switch {
	case permission.IsAdmin(actor) || permission.IsHeadLeader(actor):
		// No forced scope.
	case permission.IsManager(actor):
		filter.BUCode = &actor.BUCode
		filter.RequesterID = nil
	default:
		self := actor.ID
		filter.RequesterID = &self
		filter.BUCode = nil
	}

	whereQuery := `
			WHERE
				w.deleted_at IS NULL
			`

	if filter.RequesterID != nil {
		requesterID := strings.Replace(*filter.RequesterID, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND w.requester_id = '%s'", requesterID)
	}
	if filter.BUCode != nil {
		buCode := strings.Replace(*filter.BUCode, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND u.bu_code = '%s'", buCode)
	}
	if filter.Status != nil {
		status := strings.Replace(*filter.Status, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND w.status = '%s'", status)
	}
	if filter.RequestType != nil {
		requestType := strings.Replace(*filter.RequestType, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND w.request_type = '%s'", requestType)
	}

	orderQuery := "ORDER BY w.created_at desc"

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
			w.id,
			w.requester_id,
			u.name,
			u.bu_code,
			w.request_type,
			w.status,
			w.start_date,
			w.end_date,
			w.days_used,
			w.reason,
			w.rejection_reason,
			w.processed_at,
			w.created_at
		FROM work_requests w
		LEFT JOIN app_users u ON w.requester_id = u.id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting work requests"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var startDateString, endDateString string

		if err = rows.Scan(
			&detail.ID,
			&detail.RequesterID,
			&detail.RequesterName,
			&detail.BUCode,
			&detail.RequestType,
			&detail.Status,
			&startDateString,
			&endDateString,
			&detail.DaysUsed,
			&detail.Reason,
			&detail.RejectionReason,
			&detail.ProcessedAt,
			&detail.CreatedAt); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning work request list"), http.StatusBadRequest)
		}

		startDate, err := date.ParseDate(startDateString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting start_date to date.Date"), http.StatusBadRequest)
		}
		detail.StartDate = &startDate

		endDate, err := date.ParseDate(endDateString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting end_date to date.Date"), http.StatusBadRequest)
		}
		detail.EndDate = &endDate

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(w.id)
		FROM work_requests w
		LEFT JOIN app_users u ON w.requester_id = u.id
		%s
	`, whereQuery)

	count := 0

	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning work request count"), http.StatusInternalServerError)
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
			w.id,
			w.requester_id,
			u.name,
			u.bu_code,
			w.approver_id,
			w.request_type,
			w.status,
			w.start_date,
			w.end_date,
			w.days_used,
			w.reason,
			w.rejection_reason,
			w.processed_at,
			w.created_at
		FROM work_requests w
		LEFT JOIN app_users u ON w.requester_id = u.id
		WHERE w.deleted_at IS NULL AND w.id = '%s'
	`, strings.Replace(id, "'", "''", -1))

	var detail GetDetailByIdResponse
	var startDateString, endDateString string

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.RequesterID,
		&detail.RequesterName,
		&detail.BUCode,
		&detail.ApproverID,
		&detail.RequestType,
		&detail.Status,
		&startDateString,
		&endDateString,
		&detail.DaysUsed,
		&detail.Reason,
		&detail.RejectionReason,
		&detail.ProcessedAt,
		&detail.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting work request"), http.StatusInternalServerError)
	}

	actor := permission.FromClaims(claims)
	requesterID, requesterBU := "", ""
	if detail.RequesterID != nil {
		requesterID = *detail.RequesterID
	}
	if detail.BUCode != nil {
		requesterBU = *detail.BUCode
	}
	if actor.ID != requesterID && !permission.CanApproveRequest(actor, requesterBU) && !permission.CanViewTeamAttendance(actor, requesterBU) {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	startDate, err := date.ParseDate(startDateString)
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "converting start_date to date.Date"), http.StatusBadRequest)
	}
	detail.StartDate = &startDate

	endDate, err := date.ParseDate(endDateString)
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "converting end_date to date.Date"), http.StatusBadRequest)
	}
	detail.EndDate = &endDate

	return detail, nil
}

// Approve flips the request out of pending exactly once and, for
// leave-type requests, deducts the balance with a guard that keeps
// used_days within total_days. The flip is not rolled back if the
// deduction fails; the caller sees the deduction error.
func (r Repository) Approve(ctx context.Context, id string) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	request, requesterBU, err := r.pendingTarget(ctx, id)
	if err != nil {
		return err
	}

	actor := permission.FromClaims(claims)
	if !permission.CanApproveRequest(actor, requesterBU) {
		return web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	leaveType, deducts := "", false
	if request.RequestType != nil {
		leaveType, deducts = balanceType[*request.RequestType]
	}

	startYear, err := time.Parse("2006-01-02", request.StartDate)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "parsing start date"), http.StatusBadRequest)
	}

	if deducts {
		// Pre-check so an obviously short balance fails before the flip.
		var remaining float64
		balanceQuery := fmt.Sprintf(`
			SELECT total_days - used_days FROM leave_balances
			WHERE user_id = '%s' AND leave_type = '%s' AND year = %d AND deleted_at IS NULL
		`, *request.RequesterID, leaveType, startYear.Year())

		err = r.QueryRowContext(ctx, balanceQuery).Scan(&remaining)
		if errors.Is(err, sql.ErrNoRows) {
			return web.NewRequestError(errors.New("no leave balance for this year"), http.StatusBadRequest)
		}
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "scanning leave balance"), http.StatusInternalServerError)
		}
		if remaining < request.DaysUsed {
			return web.NewRequestError(errors.New("insufficient leave balance"), http.StatusBadRequest)
		}
	}

	res, err := r.NewUpdate().Table("work_requests").
		Where("id = ? AND status = 'pending' AND deleted_at IS NULL", id).
		Set("status = 'approved'").
		Set("approver_id = ?", claims.UserID).
		Set("processed_at = now()").
		Set("updated_at = now()").
		Set("updated_by = ?", claims.UserID).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "approving work request"), http.StatusBadRequest)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return web.NewRequestError(errors.New("request already processed"), http.StatusBadRequest)
	}

	if !deducts {
		return nil
	}

	res, err = r.NewUpdate().Table("leave_balances").
		Where("user_id = ? AND leave_type = ? AND year = ? AND deleted_at IS NULL AND used_days + ? <= total_days",
			request.RequesterID, leaveType, startYear.Year(), request.DaysUsed).
		Set("used_days = used_days + ?", request.DaysUsed).
		Set("updated_at = now()").
		Set("updated_by = ?", claims.UserID).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "deducting leave balance"), http.StatusInternalServerError)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return web.NewRequestError(errors.New("insufficient leave balance"), http.StatusBadRequest)
	}

	return nil
}

// Reject flips the request out of pending exactly once.
func (r Repository) Reject(ctx context.Context, request RejectRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	_, requesterBU, err := r.pendingTarget(ctx, request.ID)
	if err != nil {
		return err
	}

	actor := permission.FromClaims(claims)
	if !permission.CanApproveRequest(actor, requesterBU) {
		return web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	q := r.NewUpdate().Table("work_requests").
		Where("id = ? AND status = 'pending' AND deleted_at IS NULL", request.ID).
		Set("status = 'rejected'").
		Set("approver_id = ?", claims.UserID).
		Set("processed_at = now()").
		Set("updated_at = now()").
		Set("updated_by = ?", claims.UserID)

	if request.Reason != nil {
		q.Set("rejection_reason = ?", request.Reason)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "rejecting work request"), http.StatusBadRequest)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return web.NewRequestError(errors.New("request already processed"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) pendingTarget(ctx context.Context, id string) (entity.WorkRequest, string, error) {
	var request entity.WorkRequest

	err := r.NewSelect().Model(&request).
		Where("id = ? AND deleted_at IS NULL", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.WorkRequest{}, "", web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.WorkRequest{}, "", web.NewRequestError(errors.Wrap(err, "selecting work request"), http.StatusInternalServerError)
	}
	if request.RequesterID == nil {
		return entity.WorkRequest{}, "", web.NewRequestError(errors.New("request has no requester"), http.StatusInternalServerError)
	}

	var buCode sql.NullString
	buQuery := fmt.Sprintf(`
		SELECT bu_code FROM app_users WHERE id = '%s' AND deleted_at IS NULL
	`, *request.RequesterID)

	if err := r.QueryRowContext(ctx, buQuery).Scan(&buCode); err != nil {
		return entity.WorkRequest{}, "", web.NewRequestError(errors.Wrap(err, "scanning requester bu_code"), http.StatusInternalServerError)
	}

	return request, buCode.String, nil
}
