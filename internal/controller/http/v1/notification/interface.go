package notification

import (
	"context"

	"erp/backend/internal/repository/postgres/notification"
)

type Notification interface {
	GetList(ctx context.Context, filter notification.Filter) ([]notification.GetListResponse, int, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Send(ctx context.Context, request notification.SendRequest) (string, error)
	RegisterToken(ctx context.Context, request notification.RegisterTokenRequest) error
	UnregisterToken(ctx context.Context, request notification.UnregisterTokenRequest) error
}
