package payroll

import (
	"context"
	"workforce/backend/internal/repository/postgres/payroll"
)

type Payroll interface {
	Process(ctx context.Context, request payroll.ProcessRequest) (payroll.ProcessResponse, error)
	CreateBatch(ctx context.Context, request payroll.BatchRequest) (payroll.BatchResponse, error)
	MarkPaid(ctx context.Context, request payroll.MarkPaidRequest) error
	UpdateColumns(ctx context.Context, request payroll.UpdateRequest) error
	GetList(ctx context.Context, filter payroll.Filter) ([]payroll.GetListResponse, int, error)
	GetPaidRoster(ctx context.Context, month, year int) ([]payroll.PaidRosterRow, error)
	Delete(ctx context.Context, id int) error
}
