package leave

import (
	"context"

	"erp/backend/internal/repository/postgres/activity"
	"erp/backend/internal/repository/postgres/leave"
)

type Leave interface {
	Balances(ctx context.Context, userID string, year int) ([]leave.BalanceResponse, error)
	Grants(ctx context.Context, userID string, year int) ([]leave.GrantResponse, error)
	CreateCompensatory(ctx context.Context, request leave.CreateCompensatoryRequest) (leave.CreateCompensatoryResponse, error)
	CompensatoryList(ctx context.Context, filter leave.Filter) ([]leave.CompensatoryListResponse, int, error)
	ApproveCompensatory(ctx context.Context, id string) error
	RejectCompensatory(ctx context.Context, request leave.RejectCompensatoryRequest) error
	GenerateYearly(ctx context.Context, year int) (leave.GenerateResponse, error)
	GenerateMonthly(ctx context.Context) (leave.GenerateResponse, error)
	PendingSummary(ctx context.Context) (leave.PendingSummaryResponse, error)
}

type Activity interface {
	Log(ctx context.Context, entry activity.Entry)
}
