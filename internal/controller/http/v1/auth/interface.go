package auth

import (
	"context"

	"erp/backend/internal/entity"
)

type User interface {
	GetByEmail(ctx context.Context, email string) (entity.AppUser, error)
}
