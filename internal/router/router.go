package router

import (
	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/middleware"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/service/roster"
	"workforce/backend/internal/service/tracker"

	"github.com/redis/go-redis/v9"

	"workforce/backend/internal/repository/postgres/attendance"
	"workforce/backend/internal/repository/postgres/companyInfo"
	"workforce/backend/internal/repository/postgres/payroll"
	"workforce/backend/internal/repository/postgres/salary"
	"workforce/backend/internal/repository/postgres/user"

	attendance_controller "workforce/backend/internal/controller/http/v1/attendance"
	auth_controller "workforce/backend/internal/controller/http/v1/auth"
	companyInfo_controller "workforce/backend/internal/controller/http/v1/companyInfo"
	payroll_controller "workforce/backend/internal/controller/http/v1/payroll"
	salary_controller "workforce/backend/internal/controller/http/v1/salary"
	user_controller "workforce/backend/internal/controller/http/v1/user"
)

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	redisDB    *redis.Client
	port       string
	auth       *auth.Auth
	tracker    *tracker.Tracker
	notifier   *roster.Notifier
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	tracker *tracker.Tracker,
	notifier *roster.Notifier,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		tracker,
		notifier,
	}
}

func (r Router) Init() error {

	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORSMiddleware())

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	companyInfoPostgres := companyInfo.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB)
	salaryPostgres := salary.NewRepository(r.postgresDB)
	payrollPostgres := payroll.NewRepository(r.postgresDB)

	// controller
	authController := auth_controller.NewController(userPostgres)
	userController := user_controller.NewController(userPostgres)
	companyInfoController := companyInfo_controller.NewController(companyInfoPostgres)
	attendanceController := attendance_controller.NewController(attendancePostgres, userPostgres, r.tracker, r.notifier)
	salaryController := salary_controller.NewController(salaryPostgres)
	payrollController := payroll_controller.NewController(payrollPostgres, companyInfoPostgres)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #user
	r.Get("/api/v1/user/list", userController.GetUserList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/qrcode", userController.GetQrCodeByEmployeeId, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/qrcodelist", userController.GetQrCodeList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/:id", userController.GetUserDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/user/create", userController.CreateUser, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/user/:id", userController.UpdateUserColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/user/:id", userController.DeleteUser, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #companyInfo
	r.Get("/api/v1/company_info/list", companyInfoController.GetInfo, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Put("/api/v1/company_info", companyInfoController.UpdateAll, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #attendance
	r.Post("/api/v1/attendance/checkin", attendanceController.CheckIn, middleware.Authenticate(r.auth, auth.RoleEmployee, auth.RoleAdmin))
	r.Patch("/api/v1/attendance/checkout", attendanceController.CheckOut, middleware.Authenticate(r.auth, auth.RoleEmployee, auth.RoleAdmin))
	r.Post("/api/v1/attendance/heartbeat", attendanceController.Heartbeat, middleware.Authenticate(r.auth, auth.RoleEmployee, auth.RoleAdmin))
	r.Get("/api/v1/attendance/open", attendanceController.GetOpenSession, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/monthly", attendanceController.GetMonthlySummary, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/ranking", attendanceController.GetRanking, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Get("/api/v1/attendance/report", attendanceController.ExportReport, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance/live", attendanceController.LiveRoster, middleware.WsAuthenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Get("/api/v1/attendance/list", attendanceController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Get("/api/v1/attendance/:id", attendanceController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/attendance/:id", attendanceController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/attendance/:id", attendanceController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #salary
	r.Get("/api/v1/salary/list", salaryController.GetSalaryList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/salary/create", salaryController.CreateSalary, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/salary/:id", salaryController.UpdateSalaryColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/salary/:id", salaryController.DeleteSalary, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #payroll
	r.Post("/api/v1/payroll/process", payrollController.ProcessPayroll, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/payroll/batch", payrollController.CreateBatch, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/payroll/markpaid/:id", payrollController.MarkPaid, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/payroll/list", payrollController.GetPayrollList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/payroll/bank_transfer", payrollController.ExportBankTransfer, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/payroll/payslip", payrollController.Payslip, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/payroll/:id", payrollController.UpdatePayrollColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/payroll/:id", payrollController.DeletePayroll, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.port)
}
