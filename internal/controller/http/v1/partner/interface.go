package partner

import (
	"context"

	"erp/backend/internal/repository/postgres/partner"
)

type Partner interface {
	GetList(ctx context.Context, filter partner.Filter) ([]partner.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id string) (partner.GetDetailByIdResponse, error)
	Create(ctx context.Context, request partner.CreateRequest) (partner.CreateResponse, error)
	UpdateColumns(ctx context.Context, request partner.UpdateRequest) error
	Delete(ctx context.Context, id string) error
}
