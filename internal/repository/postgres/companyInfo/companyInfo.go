package companyInfo

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/repository/postgres"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetInfo(ctx context.Context) (GetInfoResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return GetInfoResponse{}, err
	}

	var info entity.CompanyInfo
	err := r.NewSelect().Model(&info).
		Where("deleted_at IS NULL").
		Order("id").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return GetInfoResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetInfoResponse{}, web.NewRequestError(errors.Wrap(err, "selecting company info"), http.StatusInternalServerError)
	}

	detail := GetInfoResponse{
		ID:          info.ID,
		CompanyName: info.CompanyName,
		Latitude:    info.Latitude,
		Longitude:   info.Longitude,
		Radius:      info.Radius,
	}
	if info.StartTime != nil {
		detail.StartTime = *info.StartTime
	}
	if info.EndTime != nil {
		detail.EndTime = *info.EndTime
	}
	if info.LateTime != nil {
		detail.LateTime = *info.LateTime
	}

	return detail, nil
}

func (r Repository) UpdateAll(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("company_info").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.CompanyName != nil {
		q.Set("company_name = ?", request.CompanyName)
	}
	if request.StartTime != nil {
		q.Set("start_time = ?", request.StartTime)
	}
	if request.EndTime != nil {
		q.Set("end_time = ?", request.EndTime)
	}
	if request.LateTime != nil {
		q.Set("late_time = ?", request.LateTime)
	}
	if request.Latitude != nil {
		q.Set("latitude = ?", request.Latitude)
	}
	if request.Longitude != nil {
		q.Set("longitude = ?", request.Longitude)
	}
	if request.Radius != nil {
		q.Set("radius = ?", request.Radius)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating company info"), http.StatusBadRequest)
	}

	return nil
}
