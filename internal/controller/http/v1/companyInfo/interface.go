package companyInfo

import (
	"context"
	"workforce/backend/internal/repository/postgres/companyInfo"
)

type CompanyInfo interface {
	GetInfo(ctx context.Context) (companyInfo.GetInfoResponse, error)
	UpdateAll(ctx context.Context, request companyInfo.UpdateRequest) error
}
