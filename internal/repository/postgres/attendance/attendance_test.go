package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"workforce/backend/internal/auth"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	return NewRepository(postgresql.NewDBFromSQL(sqldb)), mock
}

func employeeCtx() context.Context {
	return context.WithValue(context.Background(), auth.Key, auth.Claims{UserId: 2, Role: auth.RoleEmployee})
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func checkInRequest() CheckInRequest {
	return CheckInRequest{
		EmployeeID: strPtr("EMP001"),
		ShiftTag:   strPtr(entity.TagMorning),
		Latitude:   f64Ptr(35.7031509),
		Longitude:  f64Ptr(139.7745439),
		PhotoPath:  strPtr("statics/photos/emp001.jpg"),
	}
}

func TestCheckInRequiresLocation(t *testing.T) {
	repo, mock := newMockRepository(t)

	request := checkInRequest()
	request.Latitude = nil
	request.Longitude = nil

	_, err := repo.CheckIn(employeeCtx(), request)
	require.ErrorIs(t, err, postgres.ErrLocationUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInRequiresPhotoEvidence(t *testing.T) {
	repo, mock := newMockRepository(t)

	request := checkInRequest()
	request.PhotoPath = nil

	_, err := repo.CheckIn(employeeCtx(), request)
	require.ErrorIs(t, err, postgres.ErrEvidenceMissing)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInRejectsUnknownTag(t *testing.T) {
	repo, mock := newMockRepository(t)

	request := checkInRequest()
	request.ShiftTag = strPtr("NIGHT")

	_, err := repo.CheckIn(employeeCtx(), request)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInRejectsOpenSession(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT latitude, longitude, radius(.|\s)*FROM company_info`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT id FROM attendance(.|\s)*employee_id = 'EMP001' AND leave_time IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	_, err := repo.CheckIn(employeeCtx(), checkInRequest())
	require.ErrorIs(t, err, postgres.ErrSessionOpen)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInRejectsOutsideGeofence(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT latitude, longitude, radius(.|\s)*FROM company_info`).
		WillReturnRows(sqlmock.NewRows([]string{"latitude", "longitude", "radius", "late_time"}).
			AddRow(35.7031509, 139.7745439, 200.0, ""))

	request := checkInRequest()
	request.Latitude = f64Ptr(36.0)
	request.Longitude = f64Ptr(140.0)

	_, err := repo.CheckIn(employeeCtx(), request)
	require.ErrorIs(t, err, postgres.ErrOutsideGeofence)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOutRequiresLocation(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.CheckOut(employeeCtx(), CheckOutRequest{EmployeeID: strPtr("EMP001")})
	require.ErrorIs(t, err, postgres.ErrLocationUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOutWithoutOpenSession(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT id, work_day(.|\s)*employee_id = 'EMP001' AND leave_time IS NULL`).
		WillReturnError(sql.ErrNoRows)

	request := CheckOutRequest{
		EmployeeID: strPtr("EMP001"),
		Latitude:   f64Ptr(35.7031509),
		Longitude:  f64Ptr(139.7745439),
	}

	_, err := repo.CheckOut(employeeCtx(), request)
	require.ErrorIs(t, err, postgres.ErrNoActiveSession)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOutClosesOpenSession(t *testing.T) {
	repo, mock := newMockRepository(t)

	comeTime := time.Now().Add(-90 * time.Minute)

	mock.ExpectQuery(`SELECT id, work_day(.|\s)*employee_id = 'EMP001' AND leave_time IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "work_day", "come_time"}).
			AddRow(7, comeTime.Format("2006-01-02"), comeTime))
	mock.ExpectExec(`UPDATE "attendance"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

	request := CheckOutRequest{
		EmployeeID: strPtr("EMP001"),
		Latitude:   f64Ptr(35.7031509),
		Longitude:  f64Ptr(139.7745439),
	}

	response, err := repo.CheckOut(employeeCtx(), request)
	require.NoError(t, err)
	require.Equal(t, 7, response.ID)

	// leave time is strictly after come time and the stored duration agrees
	require.True(t, response.LeaveTime.After(response.ComeTime))
	require.GreaterOrEqual(t, response.DurationMinutes, 89)
	require.LessOrEqual(t, response.DurationMinutes, 91)

	require.NoError(t, mock.ExpectationsWereMet())
}
