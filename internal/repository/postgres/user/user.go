package user

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
	"erp/backend/internal/pkg/repository/postgresql"
	"erp/backend/internal/repository/postgres"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetByEmail(ctx context.Context, email string) (entity.AppUser, error) {
	var detail entity.AppUser

	err := r.NewSelect().Model(&detail).Where("email = ? AND deleted_at IS NULL", email).Scan(ctx)
	if err != nil {
		return entity.AppUser{}, &web.Error{
			Err:    errors.New("user not found"),
			Status: http.StatusUnauthorized,
		}
	}

	return detail, nil
}

func (r Repository) GetByID(ctx context.Context, id string) (entity.AppUser, error) {
	var detail entity.AppUser

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.AppUser{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.AppUser{}, web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	return detail, nil
}

// GetProfile returns the caller's own user row.
func (r Repository) GetProfile(ctx context.Context) (GetDetailByIdResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	detail, err := r.GetByID(ctx, claims.UserID)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	return GetDetailByIdResponse{
		ID:       detail.ID,
		Email:    detail.Email,
		Name:     detail.Name,
		Role:     detail.Role,
		BUCode:   detail.BUCode,
		HireDate: detail.HireDate,
		Phone:    detail.Phone,
		IsActive: detail.IsActive,
	}, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleLeader, auth.RoleManager)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				u.deleted_at IS NULL
			`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)

		whereQuery += fmt.Sprintf(` AND
		(u.email ilike '%s' OR u.name ilike '%s')`, "%"+search+"%", "%"+search+"%")
	}
	if filter.BUCode != nil {
		buCode := strings.Replace(*filter.BUCode, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND u.bu_code = '%s'", buCode)
	}
	if filter.Role != nil {
		role := strings.Replace(*filter.Role, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND u.role = '%s'", role)
	}

	orderQuery := "ORDER BY u.created_at desc"

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
			u.id,
			u.email,
			u.name,
			u.role,
			u.bu_code,
			u.hire_date,
			u.phone,
			u.is_active
		FROM app_users u
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusInternalServerError)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Email,
			&detail.Name,
			&detail.Role,
			&detail.BUCode,
			&detail.HireDate,
			&detail.Phone,
			&detail.IsActive); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user list"), http.StatusInternalServerError)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(u.id)
		FROM app_users u
		%s
	`, whereQuery)

	count := 0

	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Email", "Password", "Role"); err != nil {
		return CreateResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}
	password := string(hash)

	var hireDate *time.Time
	if request.HireDate != nil {
		parsed, err := time.Parse("2006-01-02", *request.HireDate)
		if err != nil {
			return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing hire date"), http.StatusBadRequest)
		}
		hireDate = &parsed
	}

	detail := entity.AppUser{
		BasicEntity: entity.BasicEntity{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
			CreatedBy: &claims.UserID,
		},
		Email:    request.Email,
		Password: &password,
		Name:     request.Name,
		Role:     request.Role,
		BUCode:   request.BUCode,
		HireDate: hireDate,
		Phone:    request.Phone,
	}

	_, err = r.NewInsert().Model(&detail).Exec(ctx)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating user"), http.StatusBadRequest)
	}

	return CreateResponse{
		ID:     detail.ID,
		Email:  detail.Email,
		Name:   detail.Name,
		Role:   detail.Role,
		BUCode: detail.BUCode,
	}, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("app_users").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.Name != nil {
		q.Set("name = ?", request.Name)
	}
	if request.Role != nil {
		q.Set("role = ?", request.Role)
	}
	if request.BUCode != nil {
		q.Set("bu_code = ?", request.BUCode)
	}
	if request.HireDate != nil {
		hireDate, err := time.Parse("2006-01-02", *request.HireDate)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "parsing hire date"), http.StatusBadRequest)
		}
		q.Set("hire_date = ?", hireDate)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.IsActive != nil {
		q.Set("is_active = ?", request.IsActive)
	}
	if request.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		q.Set("password = ?", string(hash))
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserID)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating user"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}
	return r.DeleteRow(ctx, "app_users", id)
}
