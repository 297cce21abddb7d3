package router

import (
	"erp/backend/foundation/web"
	"erp/backend/internal/auth"
	"erp/backend/internal/middleware"
	"erp/backend/internal/pkg/repository/postgresql"
	"erp/backend/internal/repository/postgres/activity"
	"erp/backend/internal/repository/postgres/attendance"
	"erp/backend/internal/repository/postgres/leave"
	"erp/backend/internal/repository/postgres/notification"
	"erp/backend/internal/repository/postgres/partner"
	"erp/backend/internal/repository/postgres/user"
	"erp/backend/internal/repository/postgres/workrequest"
	"erp/backend/internal/service/workhours"

	"github.com/redis/go-redis/v9"

	activity_controller "erp/backend/internal/controller/http/v1/activity"
	attendance_controller "erp/backend/internal/controller/http/v1/attendance"
	auth_controller "erp/backend/internal/controller/http/v1/auth"
	leave_controller "erp/backend/internal/controller/http/v1/leave"
	notification_controller "erp/backend/internal/controller/http/v1/notification"
	partner_controller "erp/backend/internal/controller/http/v1/partner"
	user_controller "erp/backend/internal/controller/http/v1/user"
	workrequest_controller "erp/backend/internal/controller/http/v1/workrequest"
)

type Router struct {
	*web.App
	postgresDB     *postgresql.Database
	redisDB        *redis.Client
	port           string
	auth           *auth.Auth
	baseURL        string
	privateKeyPath string
	policy         workhours.Policy
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	baseURL string,
	privateKeyPath string,
	policy workhours.Policy,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		baseURL,
		privateKeyPath,
		policy,
	}
}

func (r Router) Init() error {

	r.HandleMethodNotAllowed = true
	r.Use(middleware.CorsMiddleware())

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB, r.policy)
	workRequestPostgres := workrequest.NewRepository(r.postgresDB)
	leavePostgres := leave.NewRepository(r.postgresDB)
	activityPostgres := activity.NewRepository(r.postgresDB)
	notificationPostgres := notification.NewRepository(r.postgresDB, r.redisDB)
	partnerPostgres := partner.NewRepository(r.postgresDB)

	// controller
	authController := auth_controller.NewController(userPostgres, r.privateKeyPath)
	userController := user_controller.NewController(userPostgres, r.baseURL)
	attendanceController := attendance_controller.NewController(attendancePostgres, activityPostgres, userPostgres, r.policy)
	workRequestController := workrequest_controller.NewController(workRequestPostgres, activityPostgres, notificationPostgres)
	leaveController := leave_controller.NewController(leavePostgres, activityPostgres)
	notificationController := notification_controller.NewController(notificationPostgres)
	partnerController := partner_controller.NewController(partnerPostgres)
	activityController := activity_controller.NewController(activityPostgres)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #user
	r.Get("/api/v1/user/list", userController.GetUserList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleLeader, auth.RoleManager))
	r.Get("/api/v1/user/profile", userController.GetProfile, middleware.Authenticate(r.auth))
	r.Get("/api/v1/user/qrcode", userController.GetQrCode, middleware.Authenticate(r.auth))
	r.Post("/api/v1/user/create", userController.CreateUser, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/user/:id", userController.UpdateUserColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/user/:id", userController.DeleteUser, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #attendance
	r.Post("/api/v1/attendance/check-in", attendanceController.CheckIn, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/attendance/check-out", attendanceController.CheckOut, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/status", attendanceController.GetStatus, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/attendance/auto-checkout/:id", attendanceController.CorrectAutoCheckout, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/auto-checkout-history", attendanceController.GetAutoCheckoutHistory, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/list", attendanceController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/monthly", attendanceController.GetMonthlyStats, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/team", attendanceController.GetTeamStats, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/export_excel", attendanceController.ExportMonthlyExcel, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/export_pdf", attendanceController.ExportMonthlyPdf, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/:id", attendanceController.GetDetailById, middleware.Authenticate(r.auth))
	r.Post("/api/v1/attendance/create", attendanceController.AdminCreate, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleLeader, auth.RoleManager))
	r.Patch("/api/v1/attendance/:id", attendanceController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleLeader, auth.RoleManager))
	r.Delete("/api/v1/attendance/:id", attendanceController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleLeader, auth.RoleManager))
	r.Post("/api/v1/attendance/auto-checkout-batch", attendanceController.AutoCheckoutBatch, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #work-request
	r.Post("/api/v1/work-request/create", workRequestController.Create, middleware.Authenticate(r.auth))
	r.Get("/api/v1/work-request/list", workRequestController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/work-request/:id", workRequestController.GetDetailById, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/work-request/:id/approve", workRequestController.Approve, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/work-request/:id/reject", workRequestController.Reject, middleware.Authenticate(r.auth))

	// #leave
	r.Get("/api/v1/leave/balances", leaveController.GetBalances, middleware.Authenticate(r.auth))
	r.Get("/api/v1/leave/grants", leaveController.GetGrants, middleware.Authenticate(r.auth))
	r.Get("/api/v1/leave/pending-summary", leaveController.GetPendingSummary, middleware.Authenticate(r.auth))
	r.Post("/api/v1/leave/compensatory/create", leaveController.CreateCompensatory, middleware.Authenticate(r.auth))
	r.Get("/api/v1/leave/compensatory/list", leaveController.GetCompensatoryList, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/leave/compensatory/:id/approve", leaveController.ApproveCompensatory, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/leave/compensatory/:id/reject", leaveController.RejectCompensatory, middleware.Authenticate(r.auth))
	r.Post("/api/v1/leave/generate-yearly", leaveController.GenerateYearly, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/leave/generate-monthly", leaveController.GenerateMonthly, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #notification
	r.Get("/api/v1/notification/list", notificationController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/notification/unread-count", notificationController.GetUnreadCount, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/notification/read-all", notificationController.MarkAllRead, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/notification/:id/read", notificationController.MarkRead, middleware.Authenticate(r.auth))
	r.Post("/api/v1/notification/send", notificationController.Send, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleLeader, auth.RoleManager))
	r.Post("/api/v1/notification/token/register", notificationController.RegisterToken, middleware.Authenticate(r.auth))
	r.Post("/api/v1/notification/token/unregister", notificationController.UnregisterToken, middleware.Authenticate(r.auth))

	// #partner
	r.Get("/api/v1/partner/list", partnerController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/partner/:id", partnerController.GetDetailById, middleware.Authenticate(r.auth))
	r.Post("/api/v1/partner/create", partnerController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleLeader, auth.RoleManager))
	r.Patch("/api/v1/partner/:id", partnerController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleLeader, auth.RoleManager))
	r.Delete("/api/v1/partner/:id", partnerController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleLeader, auth.RoleManager))

	// #activity
	r.Get("/api/v1/activity/list", activityController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.port)
}
