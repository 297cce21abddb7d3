package workrequest

import (
	"context"

	"erp/backend/internal/repository/postgres/activity"
	"erp/backend/internal/repository/postgres/notification"
	"erp/backend/internal/repository/postgres/workrequest"
)

type WorkRequest interface {
	Create(ctx context.Context, request workrequest.CreateRequest) (workrequest.CreateResponse, error)
	GetList(ctx context.Context, filter workrequest.Filter) ([]workrequest.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id string) (workrequest.GetDetailByIdResponse, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, request workrequest.RejectRequest) error
}

type Activity interface {
	Log(ctx context.Context, entry activity.Entry)
}

type Notifier interface {
	Notify(ctx context.Context, actorID string, request notification.SendRequest)
}
