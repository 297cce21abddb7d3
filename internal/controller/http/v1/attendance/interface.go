package attendance

import (
	"context"

	"erp/backend/internal/entity"
	"erp/backend/internal/repository/postgres/activity"
	"erp/backend/internal/repository/postgres/attendance"
	"erp/backend/internal/service/workhours"
)

type Attendance interface {
	CheckIn(ctx context.Context, request attendance.CheckInRequest) (attendance.CheckInResponse, error)
	CheckOut(ctx context.Context) (attendance.CheckOutResponse, error)
	Status(ctx context.Context) (attendance.StatusResponse, error)
	CorrectAutoCheckout(ctx context.Context, request attendance.CorrectAutoCheckoutRequest) error
	AutoCheckoutHistory(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id string) (attendance.GetDetailByIdResponse, error)
	AdminCreate(ctx context.Context, request attendance.AdminCreateRequest) (attendance.AdminCreateResponse, error)
	UpdateColumns(ctx context.Context, request attendance.UpdateRequest) error
	Delete(ctx context.Context, id string) error
	MonthlyLogs(ctx context.Context, userID string, year, month int) ([]entity.AttendanceLog, error)
	MonthlyStats(ctx context.Context, userID string, year, month int) (workhours.MonthlyStats, error)
	TeamStats(ctx context.Context, buCode, day string) (attendance.TeamStatsResponse, error)
	AutoCheckoutBatch(ctx context.Context) (attendance.AutoCheckoutBatchResponse, error)
}

type Activity interface {
	Log(ctx context.Context, entry activity.Entry)
}

type Users interface {
	GetByID(ctx context.Context, id string) (entity.AppUser, error)
}
