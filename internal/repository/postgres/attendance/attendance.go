package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"workforce/backend/foundation/web"
	domain "workforce/backend/internal/domain/attendance"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/repository/postgres"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// office is the geofence configuration loaded from company_info.
type office struct {
	Latitude  float64
	Longitude float64
	Radius    float64
	LateTime  string
}

func (r Repository) office(ctx context.Context) (office, bool, error) {
	var o office
	err := r.QueryRowContext(ctx, `
		SELECT latitude, longitude, radius, COALESCE(late_time::text, '')
		FROM company_info
		WHERE deleted_at IS NULL
		ORDER BY id
		LIMIT 1
	`).Scan(&o.Latitude, &o.Longitude, &o.Radius, &o.LateTime)
	if errors.Is(err, sql.ErrNoRows) {
		return office{}, false, nil
	}
	if err != nil {
		return office{}, false, web.NewRequestError(errors.Wrap(err, "selecting company info"), http.StatusInternalServerError)
	}
	return o, true, nil
}

// distanceMeters is the haversine distance between two coordinates.
func distanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadius = 6371000.0

	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func validTag(tag string) bool {
	switch tag {
	case entity.TagMorning, entity.TagSecond, entity.TagOvertime:
		return true
	}
	return false
}

// CheckIn opens a new session for the employee. It is the only transition out
// of the OUT state: it demands coordinates and photo evidence, enforces the
// office geofence, and refuses while another session is still open.
func (r Repository) CheckIn(ctx context.Context, request CheckInRequest) (CheckInResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CheckInResponse{}, err
	}

	if err = r.ValidateStruct(&request, "EmployeeID", "ShiftTag"); err != nil {
		return CheckInResponse{}, err
	}

	if request.Latitude == nil || request.Longitude == nil {
		return CheckInResponse{}, web.NewRequestError(postgres.ErrLocationUnavailable, http.StatusBadRequest)
	}
	if request.PhotoPath == nil || *request.PhotoPath == "" {
		return CheckInResponse{}, web.NewRequestError(postgres.ErrEvidenceMissing, http.StatusBadRequest)
	}
	if !validTag(*request.ShiftTag) {
		return CheckInResponse{}, web.NewRequestError(errors.Errorf("unknown shift tag %q", *request.ShiftTag), http.StatusBadRequest)
	}

	o, hasOffice, err := r.office(ctx)
	if err != nil {
		return CheckInResponse{}, err
	}
	if hasOffice && o.Radius > 0 {
		if distanceMeters(*request.Latitude, *request.Longitude, o.Latitude, o.Longitude) > o.Radius {
			return CheckInResponse{}, web.NewRequestError(postgres.ErrOutsideGeofence, http.StatusBadRequest)
		}
	}

	var openID int
	err = r.QueryRowContext(ctx, `
		SELECT id FROM attendance
		WHERE deleted_at IS NULL AND employee_id = ? AND leave_time IS NULL
	`, *request.EmployeeID).Scan(&openID)
	if err == nil {
		return CheckInResponse{}, web.NewRequestError(postgres.ErrSessionOpen, http.StatusBadRequest)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return CheckInResponse{}, web.NewRequestError(errors.Wrap(err, "checking open session"), http.StatusInternalServerError)
	}

	now := time.Now()

	status := entity.StatusPresent
	if *request.ShiftTag == entity.TagMorning && hasOffice && o.LateTime != "" {
		if now.Format("15:04:05") > o.LateTime {
			status = entity.StatusLate
		}
	}

	response := CheckInResponse{
		EmployeeID:    request.EmployeeID,
		WorkDay:       now.Format("2006-01-02"),
		ComeTime:      now,
		Tag:           request.ShiftTag,
		Status:        &status,
		ComeLatitude:  request.Latitude,
		ComeLongitude: request.Longitude,
		ComeAccuracy:  request.Accuracy,
		Device:        request.Device,
		PhotoPath:     request.PhotoPath,
		CreatedAt:     now,
		CreatedBy:     claims.UserId,
	}

	if _, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID); err != nil {
		return CheckInResponse{}, web.NewRequestError(errors.Wrap(err, "creating attendance session"), http.StatusBadRequest)
	}

	q := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND employee_id = ?", *request.EmployeeID).Set("status = true")
	if _, err = q.Exec(ctx); err != nil {
		return CheckInResponse{}, web.NewRequestError(errors.Wrap(err, "updating user status on check-in"), http.StatusBadRequest)
	}

	return response, nil
}

// CheckOut closes the employee's open session. Coordinates are still
// required; missing evidence photo is not (only check-in collects one).
func (r Repository) CheckOut(ctx context.Context, request CheckOutRequest) (CheckOutResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CheckOutResponse{}, err
	}

	if err = r.ValidateStruct(&request, "EmployeeID"); err != nil {
		return CheckOutResponse{}, err
	}

	if request.Latitude == nil || request.Longitude == nil {
		return CheckOutResponse{}, web.NewRequestError(postgres.ErrLocationUnavailable, http.StatusBadRequest)
	}

	var (
		id       int
		workDay  string
		comeTime time.Time
	)
	err = r.QueryRowContext(ctx, `
		SELECT id, work_day::text, come_time FROM attendance
		WHERE deleted_at IS NULL AND employee_id = ? AND leave_time IS NULL
	`, *request.EmployeeID).Scan(&id, &workDay, &comeTime)
	if errors.Is(err, sql.ErrNoRows) {
		return CheckOutResponse{}, web.NewRequestError(postgres.ErrNoActiveSession, http.StatusNotFound)
	}
	if err != nil {
		return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "selecting open session"), http.StatusInternalServerError)
	}

	now := time.Now()
	duration := int(now.Sub(comeTime).Minutes())
	if duration < 0 {
		duration = 0
	}

	q := r.NewUpdate().Table("attendance").Where("deleted_at IS NULL AND id = ?", id)
	q.Set("leave_time = ?", now)
	q.Set("duration_minutes = ?", duration)
	q.Set("leave_latitude = ?", request.Latitude)
	q.Set("leave_longitude = ?", request.Longitude)
	q.Set("leave_accuracy = ?", request.Accuracy)
	q.Set("updated_at = ?", now)
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "closing attendance session"), http.StatusBadRequest)
	}

	userUpdate := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND employee_id = ?", *request.EmployeeID).Set("status = false")
	if _, err = userUpdate.Exec(ctx); err != nil {
		return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "updating user status on check-out"), http.StatusBadRequest)
	}

	return CheckOutResponse{
		ID:              id,
		EmployeeID:      request.EmployeeID,
		WorkDay:         workDay,
		ComeTime:        comeTime,
		LeaveTime:       now,
		DurationMinutes: duration,
	}, nil
}

// GetOpenSession returns the live projection of the employee's open session.
// The elapsed minutes are a read-only display value; nothing here mutates
// the session.
func (r Repository) GetOpenSession(ctx context.Context, employeeID string) (OpenSessionResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return OpenSessionResponse{}, err
	}

	var response OpenSessionResponse
	err := r.QueryRowContext(ctx, `
		SELECT id, employee_id, COALESCE(tag, ''), come_time FROM attendance
		WHERE deleted_at IS NULL AND employee_id = ? AND leave_time IS NULL
	`, employeeID).Scan(&response.ID, &response.EmployeeID, &response.Tag, &response.ComeTime)
	if errors.Is(err, sql.ErrNoRows) {
		return OpenSessionResponse{}, web.NewRequestError(postgres.ErrNoActiveSession, http.StatusNotFound)
	}
	if err != nil {
		return OpenSessionResponse{}, web.NewRequestError(errors.Wrap(err, "selecting open session"), http.StatusInternalServerError)
	}

	response.ElapsedMinutes, response.Expired = domain.Elapsed(response.Tag, response.ComeTime, time.Now())

	return response, nil
}

// RecordPing stores one heartbeat location sample for an open session. It is
// called from the background tracker, outside any authenticated request.
func (r Repository) RecordPing(ctx context.Context, ping entity.LocationPing) error {
	ping.CreatedAt = time.Now()
	if _, err := r.NewInsert().Model(&ping).Exec(ctx); err != nil {
		return errors.Wrap(err, "inserting location ping")
	}
	return nil
}

// GetMonthly fetches the sessions feeding aggregation for one employee and
// period.
func (r Repository) GetMonthly(ctx context.Context, employeeID string, year int, month time.Month) ([]domain.Session, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	rows, err := r.QueryContext(ctx, `
		SELECT come_time, leave_time, COALESCE(tag, ''), COALESCE(status, ''),
		       duration_minutes, come_latitude, come_longitude
		FROM attendance
		WHERE deleted_at IS NULL AND employee_id = ?
		  AND come_time >= ? AND come_time < ?
		ORDER BY come_time
	`, employeeID, from, to)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting monthly sessions"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		s := domain.Session{EmployeeID: employeeID}
		if err = rows.Scan(&s.ComeTime, &s.LeaveTime, &s.Tag, &s.Status,
			&s.DurationMinutes, &s.Latitude, &s.Longitude); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning monthly sessions"), http.StatusInternalServerError)
		}
		sessions = append(sessions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading monthly sessions"), http.StatusInternalServerError)
	}

	return sessions, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				a.deleted_at IS NULL
			`

	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return "?"
	}

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, " ", "", -1)
		whereQuery += fmt.Sprintf(` AND (u.employee_id ilike %s OR u.full_name ilike %s)`,
			arg("%"+search+"%"), arg("%"+search+"%"))
	}
	if filter.EmployeeID != nil {
		whereQuery += fmt.Sprintf(` AND a.employee_id = %s`, arg(*filter.EmployeeID))
	}
	if filter.Tag != nil {
		whereQuery += fmt.Sprintf(` AND a.tag = %s`, arg(*filter.Tag))
	}
	if filter.Status != nil {
		whereQuery += fmt.Sprintf(` AND a.status = %s`, arg(*filter.Status))
	}
	if filter.Date != nil {
		day, err := time.Parse("2006-01-02", *filter.Date)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "date parse"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(` AND a.work_day = %s`, arg(day.Format("2006-01-02")))
	}

	orderQuery := "ORDER BY a.come_time desc"

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
			a.id,
			a.employee_id,
			u.full_name,
			a.work_day::text,
			a.tag,
			a.status,
			a.come_time,
			a.leave_time,
			a.duration_minutes
		FROM attendance as a
		LEFT JOIN users u ON a.employee_id = u.employee_id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		var workDayString string

		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.FullName,
			&workDayString,
			&detail.Tag,
			&detail.Status,
			&detail.ComeTime,
			&detail.LeaveTime,
			&detail.DurationMinutes); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance list"), http.StatusBadRequest)
		}

		workDay, err := date.ParseDate(workDayString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting work_day"), http.StatusBadRequest)
		}
		detail.WorkDay = &workDay

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT count(a.id)
		FROM attendance as a
		LEFT JOIN users u ON a.employee_id = u.employee_id
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting attendance"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	var detail GetDetailByIdResponse
	var workDayString string

	err = r.QueryRowContext(ctx, `
		SELECT
			a.id,
			a.employee_id,
			u.full_name,
			a.work_day::text,
			a.tag,
			a.status,
			a.come_time,
			a.leave_time,
			a.duration_minutes,
			a.come_latitude,
			a.come_longitude,
			a.device,
			a.photo_path
		FROM attendance as a
		LEFT JOIN users u ON a.employee_id = u.employee_id
		WHERE a.deleted_at IS NULL AND a.id = ?
	`, id).Scan(
		&detail.ID,
		&detail.EmployeeID,
		&detail.FullName,
		&workDayString,
		&detail.Tag,
		&detail.Status,
		&detail.ComeTime,
		&detail.LeaveTime,
		&detail.DurationMinutes,
		&detail.ComeLatitude,
		&detail.ComeLongitude,
		&detail.Device,
		&detail.PhotoPath,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting attendance detail"), http.StatusInternalServerError)
	}

	workDay, err := date.ParseDate(workDayString)
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "converting work_day"), http.StatusBadRequest)
	}
	detail.WorkDay = &workDay

	return detail, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, "ADMIN")
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("attendance").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.WorkDay != "" {
		q.Set("work_day = ?", request.WorkDay)
	}
	if request.ComeTime != "" {
		comeTime, err := time.Parse(time.RFC3339, request.ComeTime)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "parsing come time"), http.StatusBadRequest)
		}
		q.Set("come_time = ?", comeTime)
	}
	if request.LeaveTime != "" {
		leaveTime, err := time.Parse(time.RFC3339, request.LeaveTime)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "parsing leave time"), http.StatusBadRequest)
		}
		q.Set("leave_time = ?", leaveTime)
	}
	if request.Tag != nil {
		if !validTag(*request.Tag) {
			return web.NewRequestError(errors.Errorf("unknown shift tag %q", *request.Tag), http.StatusBadRequest)
		}
		q.Set("tag = ?", request.Tag)
	}
	if request.Status != nil {
		q.Set("status = ?", request.Status)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating attendance"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "attendance", id)
}
