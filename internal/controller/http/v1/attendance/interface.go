package attendance

import (
	"context"
	"time"
	domain "workforce/backend/internal/domain/attendance"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/repository/postgres/attendance"
	"workforce/backend/internal/repository/postgres/user"
)

type Attendance interface {
	CheckIn(ctx context.Context, request attendance.CheckInRequest) (attendance.CheckInResponse, error)
	CheckOut(ctx context.Context, request attendance.CheckOutRequest) (attendance.CheckOutResponse, error)
	GetOpenSession(ctx context.Context, employeeID string) (attendance.OpenSessionResponse, error)
	GetMonthly(ctx context.Context, employeeID string, year int, month time.Month) ([]domain.Session, error)

	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (attendance.GetDetailByIdResponse, error)
	UpdateColumns(ctx context.Context, request attendance.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}

type User interface {
	GetList(ctx context.Context, filter user.Filter) ([]user.GetListResponse, int, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (entity.User, error)
}
