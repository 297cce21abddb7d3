package activity

import (
	"context"

	"erp/backend/internal/entity"
)

type Activity interface {
	GetList(ctx context.Context, limit int) ([]entity.ActivityLog, error)
}
