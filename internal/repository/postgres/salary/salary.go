package salary

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
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

// GetByUserID loads the salary profile payroll derives from.
func (r Repository) GetByUserID(ctx context.Context, userID int) (entity.SalaryProfile, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return entity.SalaryProfile{}, err
	}

	var detail entity.SalaryProfile
	err := r.NewSelect().Model(&detail).Where("user_id = ? AND deleted_at IS NULL", userID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.SalaryProfile{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.SalaryProfile{}, web.NewRequestError(errors.Wrap(err, "selecting salary profile"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				s.deleted_at IS NULL
			`

	var args []interface{}
	if filter.Search != nil {
		search := strings.Replace(*filter.Search, " ", "", -1)
		args = append(args, "%"+search+"%", "%"+search+"%")
		whereQuery += ` AND (u.employee_id ilike ? OR u.full_name ilike ?)`
	}

	orderQuery := "ORDER BY s.created_at desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery = fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery = fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			s.id,
			s.user_id,
			u.employee_id,
			u.full_name,
			s.basic_salary,
			s.housing_allowance,
			s.transport_allowance,
			s.other_allowance,
			s.overtime_rate,
			s.deduction
		FROM salary_profile s
		LEFT JOIN users u ON u.id = s.user_id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting salary profiles"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.EmployeeID,
			&detail.FullName,
			&detail.BasicSalary,
			&detail.HousingAllowance,
			&detail.TransportAllowance,
			&detail.OtherAllowance,
			&detail.OvertimeRate,
			&detail.Deduction); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning salary profiles"), http.StatusBadRequest)
		}
		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT count(s.id)
		FROM salary_profile s
		LEFT JOIN users u ON u.id = s.user_id
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting salary profiles"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// Create stores a profile for an employee. One profile per employee; a
// second create for the same user updates in place.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err = r.ValidateStruct(&request, "UserID", "BasicSalary"); err != nil {
		return CreateResponse{}, err
	}

	var existingID int
	err = r.QueryRowContext(ctx, `
		SELECT id FROM salary_profile WHERE deleted_at IS NULL AND user_id = ?
	`, *request.UserID).Scan(&existingID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "checking salary profile"), http.StatusInternalServerError)
	}

	response := CreateResponse{
		UserID:             request.UserID,
		BasicSalary:        request.BasicSalary,
		HousingAllowance:   request.HousingAllowance,
		TransportAllowance: request.TransportAllowance,
		OtherAllowance:     request.OtherAllowance,
		OvertimeRate:       request.OvertimeRate,
		Deduction:          request.Deduction,
		CreatedAt:          time.Now(),
		CreatedBy:          claims.UserId,
	}

	if existingID != 0 {
		response.ID = existingID
		q := r.NewUpdate().Table("salary_profile").Where("deleted_at IS NULL AND id = ?", existingID)
		q.Set("basic_salary = ?", request.BasicSalary)
		q.Set("housing_allowance = ?", request.HousingAllowance)
		q.Set("transport_allowance = ?", request.TransportAllowance)
		q.Set("other_allowance = ?", request.OtherAllowance)
		q.Set("overtime_rate = ?", request.OvertimeRate)
		q.Set("deduction = ?", request.Deduction)
		q.Set("updated_at = ?", time.Now())
		q.Set("updated_by = ?", claims.UserId)
		if _, err = q.Exec(ctx); err != nil {
			return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "updating salary profile"), http.StatusBadRequest)
		}
		return response, nil
	}

	if _, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating salary profile"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("salary_profile").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.BasicSalary != nil {
		q.Set("basic_salary = ?", request.BasicSalary)
	}
	if request.HousingAllowance != nil {
		q.Set("housing_allowance = ?", request.HousingAllowance)
	}
	if request.TransportAllowance != nil {
		q.Set("transport_allowance = ?", request.TransportAllowance)
	}
	if request.OtherAllowance != nil {
		q.Set("other_allowance = ?", request.OtherAllowance)
	}
	if request.OvertimeRate != nil {
		q.Set("overtime_rate = ?", request.OvertimeRate)
	}
	if request.Deduction != nil {
		q.Set("deduction = ?", request.Deduction)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating salary profile"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "salary_profile", id)
}
