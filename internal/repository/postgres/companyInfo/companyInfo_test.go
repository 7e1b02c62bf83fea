package companyInfo

import (
	"context"
	"testing"
	"time"

	"workforce/backend/internal/auth"
	"workforce/backend/internal/pkg/repository/postgresql"

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

func adminCtx() context.Context {
	return context.WithValue(context.Background(), auth.Key, auth.Claims{UserId: 1, Role: auth.RoleAdmin})
}

func infoColumns() []string {
	return []string{"id", "created_at", "created_by", "updated_at", "updated_by", "deleted_at", "deleted_by",
		"company_name", "start_time", "end_time", "late_time", "latitude", "longitude", "radius"}
}

func TestGetInfo(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT(.|\s)*FROM "company_info"(.|\s)*deleted_at IS NULL`).
		WillReturnRows(sqlmock.NewRows(infoColumns()).
			AddRow(1, time.Now(), nil, nil, nil, nil, nil,
				"Workforce Inc", "09:00:00", "18:00:00", "09:15:00", 35.7031509, 139.7745439, 200.0))

	detail, err := repo.GetInfo(employeeCtx())
	require.NoError(t, err)
	require.Equal(t, "Workforce Inc", detail.CompanyName)
	require.Equal(t, "09:00:00", detail.StartTime)
	require.Equal(t, "09:15:00", detail.LateTime)
	require.Equal(t, 200.0, detail.Radius)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInfoWithUnsetSchedule(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT(.|\s)*FROM "company_info"(.|\s)*deleted_at IS NULL`).
		WillReturnRows(sqlmock.NewRows(infoColumns()).
			AddRow(1, time.Now(), nil, nil, nil, nil, nil,
				"Workforce Inc", nil, nil, nil, 35.7031509, 139.7745439, 200.0))

	detail, err := repo.GetInfo(adminCtx())
	require.NoError(t, err)
	require.Equal(t, "", detail.StartTime)
	require.Equal(t, "", detail.EndTime)
	require.Equal(t, "", detail.LateTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAllRequiresAdmin(t *testing.T) {
	repo, _ := newMockRepository(t)

	name := "Renamed"
	err := repo.UpdateAll(employeeCtx(), UpdateRequest{ID: 1, CompanyName: &name})
	require.Error(t, err)
}
