package salary

import (
	"context"
	"workforce/backend/internal/repository/postgres/salary"
)

type Salary interface {
	GetList(ctx context.Context, filter salary.Filter) ([]salary.GetListResponse, int, error)
	Create(ctx context.Context, request salary.CreateRequest) (salary.CreateResponse, error)
	UpdateColumns(ctx context.Context, request salary.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}
