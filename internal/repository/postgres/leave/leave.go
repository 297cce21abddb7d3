package leave

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
	"erp/backend/internal/service/leavemath"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Balances lists a user's balances for one year. Viewing someone else's
// balances requires team or company-wide attendance visibility.
func (r Repository) Balances(ctx context.Context, userID string, year int) ([]BalanceResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		userID = claims.UserID
	}
	if year == 0 {
		year = time.Now().In(kst.Zone).Year()
	}

	if userID != claims.UserID {
		targetBU, err := r.userBUCode(ctx, userID)
		if err != nil {
			return nil, err
		}

		actor := permission.FromClaims(claims)
		if !permission.CanViewAllAttendance(actor) && !permission.CanViewTeamAttendance(actor, targetBU) {
			return nil, web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
		}
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, leave_type, year, total_days, used_days
		FROM leave_balances
		WHERE user_id = '%s' AND year = %d AND deleted_at IS NULL
		ORDER BY leave_type
	`, strings.Replace(userID, "'", "''", -1), year)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting leave balances"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []BalanceResponse

	for rows.Next() {
		var detail BalanceResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.LeaveType,
			&detail.Year,
			&detail.TotalDays,
			&detail.UsedDays); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning leave balances"), http.StatusInternalServerError)
		}
		detail.RemainingDays = detail.TotalDays - detail.UsedDays
		list = append(list, detail)
	}

	return list, nil
}

// CreateCompensatory files a compensatory leave request for the caller.
func (r Repository) CreateCompensatory(ctx context.Context, request CreateCompensatoryRequest) (CreateCompensatoryResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateCompensatoryResponse{}, err
	}

	if err := r.ValidateStruct(&request, "WorkDate", "Days"); err != nil {
		return CreateCompensatoryResponse{}, err
	}

	workDate, err := time.Parse("2006-01-02", *request.WorkDate)
	if err != nil {
		return CreateCompensatoryResponse{}, web.NewRequestError(errors.Wrap(err, "parsing work date"), http.StatusBadRequest)
	}
	if *request.Days <= 0 {
		return CreateCompensatoryResponse{}, web.NewRequestError(errors.New("days must be positive"), http.StatusBadRequest)
	}

	status := entity.RequestPending

	detail := entity.CompensatoryRequest{
		BasicEntity: entity.BasicEntity{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
			CreatedBy: &claims.UserID,
		},
		RequesterID: &claims.UserID,
		WorkDate:    workDate.Format("2006-01-02"),
		Days:        *request.Days,
		Reason:      request.Reason,
		Status:      &status,
	}

	_, err = r.NewInsert().Model(&detail).Exec(ctx)
	if err != nil {
		return CreateCompensatoryResponse{}, web.NewRequestError(errors.Wrap(err, "creating compensatory request"), http.StatusBadRequest)
	}

	return CreateCompensatoryResponse{
		ID:       detail.ID,
		WorkDate: detail.WorkDate,
		Days:     detail.Days,
		Status:   status,
	}, nil
}

// CompensatoryList scopes like work requests: HEAD admins see all,
// managers their unit, everyone else their own.
func (r Repository) CompensatoryList(ctx context.Context, filter Filter) ([]CompensatoryListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	actor := permission.FromClaims(claims)

	whereQuery := `
			WHERE
				c.deleted_at IS NULL
			`

	switch {
	case permission.IsAdmin(actor) || permission.IsHeadLeader(actor):
		if filter.UserID != nil {
			userID := strings.Replace(*filter.UserID, "'", "''", -1)
			whereQuery += fmt.Sprintf(" AND c.requester_id = '%s'", userID)
		}
	case permission.IsManager(actor):
		buCode := strings.Replace(actor.BUCode, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND u.bu_code = '%s'", buCode)
	default:
		whereQuery += fmt.Sprintf(" AND c.requester_id = '%s'", actor.ID)
	}

	if filter.Status != nil {
		status := strings.Replace(*filter.Status, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND c.status = '%s'", status)
	}

	orderQuery := "ORDER BY c.created_at desc"

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
			c.id,
			c.requester_id,
			u.name,
			u.bu_code,
			c.work_date,
			c.days,
			c.reason,
			c.status,
			c.approved_at,
			c.created_at
		FROM compensatory_requests c
		LEFT JOIN app_users u ON c.requester_id = u.id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting compensatory requests"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []CompensatoryListResponse

	for rows.Next() {
		var detail CompensatoryListResponse
		var workDateString string

		if err = rows.Scan(
			&detail.ID,
			&detail.RequesterID,
			&detail.RequesterName,
			&detail.BUCode,
			&workDateString,
			&detail.Days,
			&detail.Reason,
			&detail.Status,
			&detail.ApprovedAt,
			&detail.CreatedAt); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning compensatory list"), http.StatusBadRequest)
		}

		workDate, err := date.ParseDate(workDateString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting work_date to date.Date"), http.StatusBadRequest)
		}
		detail.WorkDate = &workDate

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(c.id)
		FROM compensatory_requests c
		LEFT JOIN app_users u ON c.requester_id = u.id
		%s
	`, whereQuery)

	count := 0

	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning compensatory count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// ApproveCompensatory is restricted to HEAD admins. The status flip
// happens exactly once; the balance lands through a single upsert and
// the grant trail records the change.
func (r Repository) ApproveCompensatory(ctx context.Context, id string) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	actor := permission.FromClaims(claims)
	if !permission.CanApproveCompensatory(actor) {
		return web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	var request entity.CompensatoryRequest

	err = r.NewSelect().Model(&request).
		Where("id = ? AND deleted_at IS NULL", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "selecting compensatory request"), http.StatusInternalServerError)
	}
	if request.RequesterID == nil {
		return web.NewRequestError(errors.New("request has no requester"), http.StatusInternalServerError)
	}

	res, err := r.NewUpdate().Table("compensatory_requests").
		Where("id = ? AND status = 'pending' AND deleted_at IS NULL", id).
		Set("status = 'approved'").
		Set("approver_id = ?", claims.UserID).
		Set("approved_at = now()").
		Set("updated_at = now()").
		Set("updated_by = ?", claims.UserID).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "approving compensatory request"), http.StatusBadRequest)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return web.NewRequestError(errors.New("request already processed"), http.StatusBadRequest)
	}

	workDate, err := time.Parse("2006-01-02", request.WorkDate)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "parsing work date"), http.StatusBadRequest)
	}
	year := workDate.Year()

	upsert := fmt.Sprintf(`
		INSERT INTO leave_balances (id, user_id, leave_type, year, total_days, used_days, created_at, created_by)
		VALUES ('%s', '%s', '%s', %d, %v, 0, now(), '%s')
		ON CONFLICT (user_id, leave_type, year)
		DO UPDATE SET total_days = leave_balances.total_days + EXCLUDED.total_days, updated_at = now()
	`, uuid.NewString(), *request.RequesterID, leavemath.TypeCompensatory, year, request.Days, claims.UserID)

	if _, err = r.ExecContext(ctx, upsert); err != nil {
		return web.NewRequestError(errors.Wrap(err, "upserting leave balance"), http.StatusInternalServerError)
	}

	grantType := leavemath.TypeCompensatory
	leaveType := leavemath.TypeCompensatory

	grant := entity.LeaveGrant{
		BasicEntity: entity.BasicEntity{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
			CreatedBy: &claims.UserID,
		},
		UserID:    request.RequesterID,
		LeaveType: &leaveType,
		Days:      request.Days,
		GrantType: &grantType,
		Reason:    request.Reason,
		GrantedBy: &claims.UserID,
		Year:      year,
	}

	if _, err = r.NewInsert().Model(&grant).Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "recording leave grant"), http.StatusInternalServerError)
	}

	return nil
}

func (r Repository) RejectCompensatory(ctx context.Context, request RejectCompensatoryRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	actor := permission.FromClaims(claims)
	if !permission.CanApproveCompensatory(actor) {
		return web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	q := r.NewUpdate().Table("compensatory_requests").
		Where("id = ? AND status = 'pending' AND deleted_at IS NULL", request.ID).
		Set("status = 'rejected'").
		Set("approver_id = ?", claims.UserID).
		Set("updated_at = now()").
		Set("updated_by = ?", claims.UserID)

	if request.Reason != nil {
		q.Set("reason = ?", request.Reason)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "rejecting compensatory request"), http.StatusBadRequest)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return web.NewRequestError(errors.New("request already processed"), http.StatusBadRequest)
	}

	return nil
}

// Grants lists the append-only grant trail for one user and year.
func (r Repository) Grants(ctx context.Context, userID string, year int) ([]GrantResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		userID = claims.UserID
	}
	if year == 0 {
		year = time.Now().In(kst.Zone).Year()
	}

	if userID != claims.UserID {
		targetBU, err := r.userBUCode(ctx, userID)
		if err != nil {
			return nil, err
		}

		actor := permission.FromClaims(claims)
		if !permission.CanViewAllAttendance(actor) && !permission.CanViewTeamAttendance(actor, targetBU) {
			return nil, web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
		}
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, leave_type, days, grant_type, reason, granted_by, year, created_at
		FROM leave_grants
		WHERE user_id = '%s' AND year = %d AND deleted_at IS NULL
		ORDER BY created_at desc
	`, strings.Replace(userID, "'", "''", -1), year)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting leave grants"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GrantResponse

	for rows.Next() {
		var detail GrantResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.LeaveType,
			&detail.Days,
			&detail.GrantType,
			&detail.Reason,
			&detail.GrantedBy,
			&detail.Year,
			&detail.CreatedAt); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning leave grants"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}

	return list, nil
}

// GenerateYearly seeds the annual balance of every active user for the
// given year. Existing balances are left untouched, so the batch is safe
// to re-run.
func (r Repository) GenerateYearly(ctx context.Context, year int) (GenerateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return GenerateResponse{}, err
	}

	if year == 0 {
		year = time.Now().In(kst.Zone).Year()
	}

	users, err := r.activeUsers(ctx)
	if err != nil {
		return GenerateResponse{}, err
	}

	response := GenerateResponse{Year: year}

	for _, u := range users {
		response.Processed++

		totalDays, grantType := leavemath.CalculateAnnualLeaveForYear(u.hireDate, year)
		if totalDays <= 0 {
			continue
		}

		insert := fmt.Sprintf(`
			INSERT INTO leave_balances (id, user_id, leave_type, year, total_days, used_days, created_at, created_by)
			VALUES ('%s', '%s', '%s', %d, %d, 0, now(), '%s')
			ON CONFLICT (user_id, leave_type, year) DO NOTHING
			RETURNING id
		`, uuid.NewString(), u.id, leavemath.TypeAnnual, year, totalDays, claims.UserID)

		var balanceID string
		err = r.QueryRowContext(ctx, insert).Scan(&balanceID)
		if errors.Is(err, sql.ErrNoRows) {
			// Balance already generated for this user.
			continue
		}
		if err != nil {
			return GenerateResponse{}, web.NewRequestError(errors.Wrap(err, "inserting yearly balance"), http.StatusInternalServerError)
		}

		if err := r.insertGrant(ctx, claims.UserID, u.id, leavemath.TypeAnnual, grantType, float64(totalDays), year); err != nil {
			return GenerateResponse{}, err
		}
		response.Granted++
	}

	return response, nil
}

// GenerateMonthly tops up the annual balance of users still in their
// first year, one accrued day per completed month. Only positive deltas
// are applied, so the batch is safe to re-run.
func (r Repository) GenerateMonthly(ctx context.Context) (GenerateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return GenerateResponse{}, err
	}

	now := time.Now().In(kst.Zone)
	year := now.Year()

	users, err := r.activeUsers(ctx)
	if err != nil {
		return GenerateResponse{}, err
	}

	response := GenerateResponse{Year: year}

	for _, u := range users {
		accrual := leavemath.CalculateAnnualLeave(u.hireDate, now)
		if accrual.GrantType != leavemath.GrantMonthly || accrual.TotalDays <= 0 {
			continue
		}
		response.Processed++

		var current sql.NullFloat64
		balanceQuery := fmt.Sprintf(`
			SELECT total_days FROM leave_balances
			WHERE user_id = '%s' AND leave_type = '%s' AND year = %d AND deleted_at IS NULL
		`, u.id, leavemath.TypeAnnual, year)

		err = r.QueryRowContext(ctx, balanceQuery).Scan(&current)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return GenerateResponse{}, web.NewRequestError(errors.Wrap(err, "scanning monthly balance"), http.StatusInternalServerError)
		}

		delta := float64(accrual.TotalDays) - current.Float64
		if delta <= 0 {
			continue
		}

		upsert := fmt.Sprintf(`
			INSERT INTO leave_balances (id, user_id, leave_type, year, total_days, used_days, created_at, created_by)
			VALUES ('%s', '%s', '%s', %d, %d, 0, now(), '%s')
			ON CONFLICT (user_id, leave_type, year)
			DO UPDATE SET total_days = EXCLUDED.total_days, updated_at = now()
		`, uuid.NewString(), u.id, leavemath.TypeAnnual, year, accrual.TotalDays, claims.UserID)

		if _, err = r.ExecContext(ctx, upsert); err != nil {
			return GenerateResponse{}, web.NewRequestError(errors.Wrap(err, "upserting monthly balance"), http.StatusInternalServerError)
		}

		if err := r.insertGrant(ctx, claims.UserID, u.id, leavemath.TypeAnnual, leavemath.GrantMonthly, delta, year); err != nil {
			return GenerateResponse{}, err
		}
		response.Granted++
	}

	return response, nil
}

// PendingSummary counts the approval queues visible to the caller.
func (r Repository) PendingSummary(ctx context.Context) (PendingSummaryResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return PendingSummaryResponse{}, err
	}

	actor := permission.FromClaims(claims)
	if !permission.IsManager(actor) {
		return PendingSummaryResponse{}, web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	scope := ""
	if !permission.IsAdmin(actor) && !permission.IsHeadLeader(actor) {
		scope = fmt.Sprintf(" AND u.bu_code = '%s'", strings.Replace(actor.BUCode, "'", "''", -1))
	}

	query := fmt.Sprintf(`
		SELECT
			(SELECT count(w.id) FROM work_requests w
				JOIN app_users u ON w.requester_id = u.id
				WHERE w.status = 'pending' AND w.deleted_at IS NULL%s),
			(SELECT count(c.id) FROM compensatory_requests c
				JOIN app_users u ON c.requester_id = u.id
				WHERE c.status = 'pending' AND c.deleted_at IS NULL%s)
	`, scope, scope)

	var response PendingSummaryResponse

	err = r.QueryRowContext(ctx, query).Scan(
		&response.PendingWorkRequests,
		&response.PendingCompensatoryRequests,
	)
	if err != nil {
		return PendingSummaryResponse{}, web.NewRequestError(errors.Wrap(err, "scanning pending summary"), http.StatusInternalServerError)
	}

	return response, nil
}

type activeUser struct {
	id       string
	hireDate time.Time
}

func (r Repository) activeUsers(ctx context.Context) ([]activeUser, error) {
	rows, err := r.QueryContext(ctx, `
		SELECT id, hire_date FROM app_users
		WHERE is_active = true AND hire_date IS NOT NULL AND deleted_at IS NULL
	`)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting active users"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var users []activeUser

	for rows.Next() {
		var u activeUser
		if err = rows.Scan(&u.id, &u.hireDate); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning active users"), http.StatusInternalServerError)
		}
		users = append(users, u)
	}

	return users, nil
}

func (r Repository) insertGrant(ctx context.Context, grantedBy, userID, leaveType, grantType string, days float64, year int) error {
	grant := entity.LeaveGrant{
		BasicEntity: entity.BasicEntity{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
			CreatedBy: &grantedBy,
		},
		UserID:    &userID,
		LeaveType: &leaveType,
		Days:      days,
		GrantType: &grantType,
		GrantedBy: &grantedBy,
		Year:      year,
	}

	if _, err := r.NewInsert().Model(&grant).Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "recording leave grant"), http.StatusInternalServerError)
	}

	return nil
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
