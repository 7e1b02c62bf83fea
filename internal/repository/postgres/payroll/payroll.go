package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"workforce/backend/foundation/web"
	calc "workforce/backend/internal/domain/payroll"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func validPeriod(month, year int) error {
	if month < 1 || month > 12 {
		return web.NewRequestError(errors.Errorf("invalid month %d", month), http.StatusBadRequest)
	}
	if year < 2000 || year > 2100 {
		return web.NewRequestError(errors.Errorf("invalid year %d", year), http.StatusBadRequest)
	}
	return nil
}

func (r Repository) profile(ctx context.Context, db bun.IDB, userID int) (calc.Profile, error) {
	var p calc.Profile
	err := db.QueryRowContext(ctx, `
		SELECT
			COALESCE(basic_salary, 0),
			COALESCE(housing_allowance, 0),
			COALESCE(transport_allowance, 0),
			COALESCE(other_allowance, 0),
			COALESCE(overtime_rate, 0),
			COALESCE(deduction, 0)
		FROM salary_profile
		WHERE deleted_at IS NULL AND user_id = ?
	`, userID).Scan(&p.BasicSalary, &p.HousingAllowance, &p.TransportAllowance,
		&p.OtherAllowance, &p.OvertimeRate, &p.Deduction)
	if errors.Is(err, sql.ErrNoRows) {
		return calc.Profile{}, web.NewRequestError(errors.Wrapf(postgres.ErrNotFound, "salary profile for user %d", userID), http.StatusNotFound)
	}
	if err != nil {
		return calc.Profile{}, web.NewRequestError(errors.Wrap(err, "selecting salary profile"), http.StatusInternalServerError)
	}
	return p, nil
}

// overtimeHours sums the month's OVERTIME-tagged minutes for the employee.
// Open sessions count against now, mirroring the aggregator.
func (r Repository) overtimeHours(ctx context.Context, userID, month, year int) (float64, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	var minutes float64
	err := r.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(
			COALESCE(a.duration_minutes,
				EXTRACT(EPOCH FROM (COALESCE(a.leave_time, now()) - a.come_time)) / 60)
		), 0)
		FROM attendance a
		JOIN users u ON u.employee_id = a.employee_id
		WHERE a.deleted_at IS NULL AND u.id = ? AND a.tag = 'OVERTIME'
		  AND a.come_time >= ? AND a.come_time < ?
	`, userID, from, to).Scan(&minutes)
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "summing overtime minutes"), http.StatusInternalServerError)
	}

	return minutes / 60, nil
}

// Process derives and persists a single payroll record. Records are keyed by
// (user, month, year): re-processing the same period updates the existing
// row instead of duplicating it.
func (r Repository) Process(ctx context.Context, request ProcessRequest) (ProcessResponse, error) {
	claims, err := r.CheckClaims(ctx, "ADMIN")
	if err != nil {
		return ProcessResponse{}, err
	}

	if err = r.ValidateStruct(&request, "UserID", "Month", "Year"); err != nil {
		return ProcessResponse{}, err
	}
	if err = validPeriod(*request.Month, *request.Year); err != nil {
		return ProcessResponse{}, err
	}

	p, err := r.profile(ctx, r.DB, *request.UserID)
	if err != nil {
		return ProcessResponse{}, err
	}

	hours := 0.0
	if request.OvertimeHours != nil {
		hours = *request.OvertimeHours
	} else {
		if hours, err = r.overtimeHours(ctx, *request.UserID, *request.Month, *request.Year); err != nil {
			return ProcessResponse{}, err
		}
	}

	bonus := 0.0
	if request.Bonus != nil {
		bonus = *request.Bonus
	}
	extraDeduction := 0.0
	if request.Deduction != nil {
		extraDeduction = *request.Deduction
	}

	b := calc.Compute(p, hours, bonus, extraDeduction)
	if request.OvertimePay != nil {
		// The derived pay is only a suggested default.
		b.OvertimePay = *request.OvertimePay
	}

	response := ProcessResponse{
		UserID:        request.UserID,
		Month:         *request.Month,
		Year:          *request.Year,
		Basic:         b.Basic,
		Housing:       b.Housing,
		Transport:     b.Transport,
		OvertimePay:   b.OvertimePay,
		OvertimeHours: hours,
		Bonus:         b.Bonus,
		Deduction:     b.Deduction,
		NetSalary:     b.Net(),
		Status:        calc.StatusDraft,
		Notes:         request.Notes,
		CreatedAt:     time.Now(),
		CreatedBy:     claims.UserId,
	}

	var existingID int
	var existingStatus string
	err = r.QueryRowContext(ctx, `
		SELECT id, status FROM payroll
		WHERE deleted_at IS NULL AND user_id = ? AND month = ? AND year = ?
	`, *request.UserID, *request.Month, *request.Year).Scan(&existingID, &existingStatus)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return ProcessResponse{}, web.NewRequestError(errors.Wrap(err, "checking payroll record"), http.StatusInternalServerError)
	}

	if existingID != 0 {
		// Editing stays possible in either state; a PAID record keeps its
		// status through a re-process.
		response.ID = existingID
		response.Status = existingStatus

		q := r.NewUpdate().Table("payroll").Where("deleted_at IS NULL AND id = ?", existingID)
		q.Set("basic = ?", response.Basic)
		q.Set("housing = ?", response.Housing)
		q.Set("transport = ?", response.Transport)
		q.Set("overtime_pay = ?", response.OvertimePay)
		q.Set("overtime_hours = ?", response.OvertimeHours)
		q.Set("bonus = ?", response.Bonus)
		q.Set("deduction = ?", response.Deduction)
		q.Set("net_salary = ?", response.NetSalary)
		q.Set("notes = ?", response.Notes)
		q.Set("updated_at = ?", time.Now())
		q.Set("updated_by = ?", claims.UserId)
		if _, err = q.Exec(ctx); err != nil {
			return ProcessResponse{}, web.NewRequestError(errors.Wrap(err, "updating payroll record"), http.StatusBadRequest)
		}
		return response, nil
	}

	if _, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID); err != nil {
		return ProcessResponse{}, web.NewRequestError(errors.Wrap(err, "creating payroll record"), http.StatusBadRequest)
	}

	return response, nil
}

// CreateBatch generates payroll for a set of employees as one operation: one
// period, one payment date and method, per-employee bonus/deduction
// overrides, batch-mode net formula. The whole batch commits or none of it
// does.
func (r Repository) CreateBatch(ctx context.Context, request BatchRequest) (BatchResponse, error) {
	claims, err := r.CheckClaims(ctx, "ADMIN")
	if err != nil {
		return BatchResponse{}, err
	}

	if err = r.ValidateStruct(&request, "Month", "Year", "PaymentDate"); err != nil {
		return BatchResponse{}, err
	}
	if err = validPeriod(*request.Month, *request.Year); err != nil {
		return BatchResponse{}, err
	}
	if len(request.Items) == 0 {
		return BatchResponse{}, web.NewRequestError(errors.New("batch is empty"), http.StatusBadRequest)
	}

	paymentDate, err := time.Parse("2006-01-02", *request.PaymentDate)
	if err != nil {
		return BatchResponse{}, web.NewRequestError(errors.Wrap(err, "parsing payment date"), http.StatusBadRequest)
	}

	var response BatchResponse

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, item := range request.Items {
			if item.UserID == nil {
				return web.NewRequestError(errors.New("batch item missing user_id"), http.StatusBadRequest)
			}

			p, err := r.profile(ctx, tx, *item.UserID)
			if err != nil {
				return err
			}

			bonus := 0.0
			if item.Bonus != nil {
				bonus = *item.Bonus
			}
			deduction := 0.0
			if item.Deduction != nil {
				deduction = *item.Deduction
			}

			record := ProcessResponse{
				UserID:    item.UserID,
				Month:     *request.Month,
				Year:      *request.Year,
				Basic:     p.BasicSalary,
				Bonus:     bonus,
				Deduction: deduction,
				NetSalary: calc.BatchNet(p.BasicSalary, bonus, deduction),
				Status:    calc.StatusDraft,
				CreatedAt: time.Now(),
				CreatedBy: claims.UserId,
			}

			var existingID int
			var existingStatus string
			err = tx.QueryRowContext(ctx, `
				SELECT id, status FROM payroll
				WHERE deleted_at IS NULL AND user_id = ? AND month = ? AND year = ?
			`, *item.UserID, record.Month, record.Year).Scan(&existingID, &existingStatus)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return errors.Wrap(err, "checking batch payroll record")
			}

			if existingID != 0 {
				// a PAID record keeps its status through a batch re-run
				record.ID = existingID
				record.Status = existingStatus

				_, err = tx.ExecContext(ctx, `
					UPDATE payroll SET
						basic = ?, housing = 0, transport = 0,
						overtime_pay = 0, overtime_hours = 0,
						bonus = ?, deduction = ?, net_salary = ?,
						payment_date = ?, payment_method = ?,
						updated_at = now(), updated_by = ?
					WHERE deleted_at IS NULL AND id = ?
				`, record.Basic, record.Bonus, record.Deduction, record.NetSalary,
					paymentDate, request.PaymentMethod, claims.UserId, existingID)
				if err != nil {
					return errors.Wrap(err, "updating batch payroll record")
				}
			} else {
				_, err = tx.ExecContext(ctx, `
					INSERT INTO payroll
						(user_id, month, year, basic, housing, transport,
						 overtime_pay, overtime_hours, bonus, deduction, net_salary,
						 status, payment_date, payment_method, created_at, created_by)
					VALUES (?, ?, ?, ?, 0, 0, 0, 0, ?, ?, ?, ?, ?, ?, now(), ?)
				`, *item.UserID, record.Month, record.Year, record.Basic,
					record.Bonus, record.Deduction, record.NetSalary,
					record.Status, paymentDate, request.PaymentMethod, claims.UserId)
				if err != nil {
					return errors.Wrap(err, "inserting batch payroll record")
				}
			}

			response.Records = append(response.Records, record)
		}
		return nil
	})
	if err != nil {
		if _, ok := web.IsRequestError(err); ok {
			return BatchResponse{}, err
		}
		return BatchResponse{}, web.NewRequestError(errors.Wrap(err, "submitting payroll batch"), http.StatusBadRequest)
	}

	response.Count = len(response.Records)
	return response, nil
}

// MarkPaid transitions DRAFT -> PAID with an explicit payment date/method.
func (r Repository) MarkPaid(ctx context.Context, request MarkPaidRequest) error {
	claims, err := r.CheckClaims(ctx, "ADMIN")
	if err != nil {
		return err
	}

	if err = r.ValidateStruct(&request, "ID", "PaymentDate"); err != nil {
		return err
	}

	paymentDate, err := time.Parse("2006-01-02", request.PaymentDate)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "parsing payment date"), http.StatusBadRequest)
	}

	q := r.NewUpdate().Table("payroll").Where("deleted_at IS NULL AND id = ?", request.ID)
	q.Set("status = ?", calc.StatusPaid)
	q.Set("payment_date = ?", paymentDate)
	q.Set("payment_method = ?", request.PaymentMethod)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "marking payroll paid"), http.StatusBadRequest)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

// UpdateColumns edits a record's monetary fields and recomputes the net.
// There is no lock: PAID records stay editable.
func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, "ADMIN")
	if err != nil {
		return err
	}

	var b calc.Breakdown
	var hours float64
	err = r.QueryRowContext(ctx, `
		SELECT basic, housing, transport, overtime_pay, overtime_hours, bonus, deduction
		FROM payroll WHERE deleted_at IS NULL AND id = ?
	`, request.ID).Scan(&b.Basic, &b.Housing, &b.Transport, &b.OvertimePay, &hours, &b.Bonus, &b.Deduction)
	if errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "selecting payroll record"), http.StatusInternalServerError)
	}

	if request.Basic != nil {
		b.Basic = *request.Basic
	}
	if request.Housing != nil {
		b.Housing = *request.Housing
	}
	if request.Transport != nil {
		b.Transport = *request.Transport
	}
	if request.OvertimePay != nil {
		b.OvertimePay = *request.OvertimePay
	}
	if request.OvertimeHours != nil {
		hours = *request.OvertimeHours
	}
	if request.Bonus != nil {
		b.Bonus = *request.Bonus
	}
	if request.Deduction != nil {
		b.Deduction = *request.Deduction
	}

	q := r.NewUpdate().Table("payroll").Where("deleted_at IS NULL AND id = ?", request.ID)
	q.Set("basic = ?", b.Basic)
	q.Set("housing = ?", b.Housing)
	q.Set("transport = ?", b.Transport)
	q.Set("overtime_pay = ?", b.OvertimePay)
	q.Set("overtime_hours = ?", hours)
	q.Set("bonus = ?", b.Bonus)
	q.Set("deduction = ?", b.Deduction)
	q.Set("net_salary = ?", b.Net())
	if request.Notes != nil {
		q.Set("notes = ?", request.Notes)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating payroll record"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				p.deleted_at IS NULL
			`

	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return "?"
	}

	if filter.UserID != nil {
		whereQuery += fmt.Sprintf(` AND p.user_id = %s`, arg(*filter.UserID))
	}
	if filter.Month != nil {
		whereQuery += fmt.Sprintf(` AND p.month = %s`, arg(*filter.Month))
	}
	if filter.Year != nil {
		whereQuery += fmt.Sprintf(` AND p.year = %s`, arg(*filter.Year))
	}
	if filter.Status != nil {
		whereQuery += fmt.Sprintf(` AND p.status = %s`, arg(*filter.Status))
	}

	orderQuery := "ORDER BY p.year desc, p.month desc, p.created_at desc"

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
			p.id,
			p.user_id,
			u.employee_id,
			u.full_name,
			p.month,
			p.year,
			p.basic,
			p.housing,
			p.transport,
			p.overtime_pay,
			p.overtime_hours,
			p.bonus,
			p.deduction,
			p.net_salary,
			p.status,
			p.payment_date,
			p.payment_method,
			p.notes
		FROM payroll p
		LEFT JOIN users u ON u.id = p.user_id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting payroll"), http.StatusInternalServerError)
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
			&detail.Month,
			&detail.Year,
			&detail.Basic,
			&detail.Housing,
			&detail.Transport,
			&detail.OvertimePay,
			&detail.OvertimeHours,
			&detail.Bonus,
			&detail.Deduction,
			&detail.NetSalary,
			&detail.Status,
			&detail.PaymentDate,
			&detail.PaymentMethod,
			&detail.Notes); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning payroll list"), http.StatusBadRequest)
		}
		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT count(p.id)
		FROM payroll p
		LEFT JOIN users u ON u.id = p.user_id
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting payroll"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetPaidRoster lists the PAID records of a period. Only these rows may
// appear in a bank-transfer export.
func (r Repository) GetPaidRoster(ctx context.Context, month, year int) ([]PaidRosterRow, error) {
	if _, err := r.CheckClaims(ctx, "ADMIN"); err != nil {
		return nil, err
	}
	if err := validPeriod(month, year); err != nil {
		return nil, err
	}

	rows, err := r.QueryContext(ctx, `
		SELECT
			u.employee_id,
			COALESCE(u.full_name, ''),
			u.bank_account,
			p.net_salary,
			p.payment_date,
			p.notes
		FROM payroll p
		JOIN users u ON u.id = p.user_id
		WHERE p.deleted_at IS NULL AND p.status = ? AND p.month = ? AND p.year = ?
		ORDER BY u.employee_id
	`, calc.StatusPaid, month, year)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting paid roster"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var roster []PaidRosterRow
	for rows.Next() {
		var row PaidRosterRow
		if err = rows.Scan(&row.EmployeeID, &row.FullName, &row.BankAccount,
			&row.NetSalary, &row.PaymentDate, &row.Notes); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning paid roster"), http.StatusBadRequest)
		}
		roster = append(roster, row)
	}

	return roster, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "payroll", id)
}
