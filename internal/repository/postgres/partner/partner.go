package partner

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
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				p.deleted_at IS NULL
			`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)

		whereQuery += fmt.Sprintf(` AND
		(p.name ilike '%s' OR p.contact_name ilike '%s')`, "%"+search+"%", "%"+search+"%")
	}
	if filter.Category != nil {
		category := strings.Replace(*filter.Category, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND p.category = '%s'", category)
	}

	orderQuery := "ORDER BY p.created_at desc"

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
			p.id,
			p.name,
			p.category,
			p.contact_name,
			p.phone,
			p.email,
			p.is_active
		FROM partners p
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting partners"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Name,
			&detail.Category,
			&detail.ContactName,
			&detail.Phone,
			&detail.Email,
			&detail.IsActive); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning partner list"), http.StatusInternalServerError)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(p.id)
		FROM partners p
		%s
	`, whereQuery)

	count := 0

	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning partner count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id string) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	var detail entity.Partner

	err = r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting partner"), http.StatusInternalServerError)
	}

	return GetDetailByIdResponse{
		ID:          detail.ID,
		Name:        detail.Name,
		Category:    detail.Category,
		ContactName: detail.ContactName,
		Phone:       detail.Phone,
		Email:       detail.Email,
		Memo:        detail.Memo,
		IsActive:    detail.IsActive,
	}, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleLeader, auth.RoleManager)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name"); err != nil {
		return CreateResponse{}, err
	}

	active := true

	detail := entity.Partner{
		BasicEntity: entity.BasicEntity{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
			CreatedBy: &claims.UserID,
		},
		Name:        request.Name,
		Category:    request.Category,
		ContactName: request.ContactName,
		Phone:       request.Phone,
		Email:       request.Email,
		Memo:        request.Memo,
		IsActive:    &active,
	}

	_, err = r.NewInsert().Model(&detail).Exec(ctx)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating partner"), http.StatusBadRequest)
	}

	return CreateResponse{
		ID:       detail.ID,
		Name:     detail.Name,
		Category: detail.Category,
	}, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleLeader, auth.RoleManager)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("partners").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.Name != nil {
		q.Set("name = ?", request.Name)
	}
	if request.Category != nil {
		q.Set("category = ?", request.Category)
	}
	if request.ContactName != nil {
		q.Set("contact_name = ?", request.ContactName)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.Email != nil {
		q.Set("email = ?", request.Email)
	}
	if request.Memo != nil {
		q.Set("memo = ?", request.Memo)
	}
	if request.IsActive != nil {
		q.Set("is_active = ?", request.IsActive)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserID)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating partner"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleLeader, auth.RoleManager); err != nil {
		return err
	}
	return r.DeleteRow(ctx, "partners", id)
}
