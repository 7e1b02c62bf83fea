package payroll

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"workforce/backend/internal/auth"
	calc "workforce/backend/internal/domain/payroll"
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

func adminCtx() context.Context {
	return context.WithValue(context.Background(), auth.Key, auth.Claims{UserId: 1, Role: auth.RoleAdmin})
}

func employeeCtx() context.Context {
	return context.WithValue(context.Background(), auth.Key, auth.Claims{UserId: 2, Role: auth.RoleEmployee})
}

func profileRows(basic, housing, transport, other, rate, deduction float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"basic_salary", "housing_allowance", "transport_allowance",
		"other_allowance", "overtime_rate", "deduction"}).
		AddRow(basic, housing, transport, other, rate, deduction)
}

func TestGetPaidRosterRequiresAdmin(t *testing.T) {
	repo, _ := newMockRepository(t)

	_, err := repo.GetPaidRoster(context.Background(), 6, 2025)
	require.Error(t, err, "missing claims")

	_, err = repo.GetPaidRoster(employeeCtx(), 6, 2025)
	require.Error(t, err, "employee role")
}

func TestGetPaidRosterRejectsInvalidPeriod(t *testing.T) {
	repo, _ := newMockRepository(t)

	_, err := repo.GetPaidRoster(adminCtx(), 13, 2025)
	require.Error(t, err)

	_, err = repo.GetPaidRoster(adminCtx(), 0, 2025)
	require.Error(t, err)

	_, err = repo.GetPaidRoster(adminCtx(), 6, 1999)
	require.Error(t, err)
}

func TestGetPaidRoster(t *testing.T) {
	repo, mock := newMockRepository(t)

	account := "9860123412341234"
	paymentDate := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"employee_id", "full_name", "bank_account", "net_salary", "payment_date", "notes"}).
		AddRow("EMP001", "Aziza Karimova", account, 5200.0, paymentDate, nil).
		AddRow("EMP002", "Bekzod Toshev", nil, 3300.0, paymentDate, nil)

	mock.ExpectQuery(`SELECT(.|\s)*FROM payroll p(.|\s)*JOIN users u(.|\s)*p\.status = 'PAID' AND p\.month = 6 AND p\.year = 2025`).
		WillReturnRows(rows)

	roster, err := repo.GetPaidRoster(adminCtx(), 6, 2025)
	require.NoError(t, err)
	require.Len(t, roster, 2)

	require.Equal(t, "EMP001", roster[0].EmployeeID)
	require.NotNil(t, roster[0].BankAccount)
	require.Equal(t, account, *roster[0].BankAccount)
	require.Equal(t, 5200.0, roster[0].NetSalary)

	// missing account stays nil, the exporter substitutes its placeholder
	require.Nil(t, roster[1].BankAccount)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBatch(t *testing.T) {
	repo, mock := newMockRepository(t)

	month, year := 6, 2025
	paymentDate := "2025-07-01"
	method := "BANK"
	bonus := 200.0
	deduction := 150.0
	newUser, paidUser := 3, 4

	mock.ExpectBegin()

	// new record for user 3
	mock.ExpectQuery(`SELECT(.|\s)*FROM salary_profile(.|\s)*user_id = 3`).
		WillReturnRows(profileRows(4800, 500, 300, 0, 1.5, 100))
	mock.ExpectQuery(`SELECT id, status FROM payroll(.|\s)*user_id = 3 AND month = 6 AND year = 2025`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO payroll(.|\s)*2025-07-01`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	// user 4 already has a PAID record for the period
	mock.ExpectQuery(`SELECT(.|\s)*FROM salary_profile(.|\s)*user_id = 4`).
		WillReturnRows(profileRows(3000, 0, 0, 0, 0, 0))
	mock.ExpectQuery(`SELECT id, status FROM payroll(.|\s)*user_id = 4 AND month = 6 AND year = 2025`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(9, calc.StatusPaid))
	mock.ExpectExec(`UPDATE payroll SET(.|\s)*2025-07-01(.|\s)*id = 9`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	response, err := repo.CreateBatch(adminCtx(), BatchRequest{
		Month:         &month,
		Year:          &year,
		PaymentDate:   &paymentDate,
		PaymentMethod: &method,
		Items: []BatchItem{
			{UserID: &newUser, Bonus: &bonus},
			{UserID: &paidUser, Deduction: &deduction},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 2, response.Count)
	require.Len(t, response.Records, 2)

	// batch-mode net: basic + bonus - deduction
	require.Equal(t, 5000.0, response.Records[0].NetSalary)
	require.Equal(t, calc.StatusDraft, response.Records[0].Status)

	// an existing PAID record keeps its status through a batch re-run
	require.Equal(t, 2850.0, response.Records[1].NetSalary)
	require.Equal(t, 9, response.Records[1].ID)
	require.Equal(t, calc.StatusPaid, response.Records[1].Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBatchRollsBackOnMissingProfile(t *testing.T) {
	repo, mock := newMockRepository(t)

	month, year := 6, 2025
	paymentDate := "2025-07-01"
	userID := 3

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT(.|\s)*FROM salary_profile(.|\s)*user_id = 3`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.CreateBatch(adminCtx(), BatchRequest{
		Month:       &month,
		Year:        &year,
		PaymentDate: &paymentDate,
		Items:       []BatchItem{{UserID: &userID}},
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaidRejectsBadDate(t *testing.T) {
	repo, _ := newMockRepository(t)

	err := repo.MarkPaid(adminCtx(), MarkPaidRequest{ID: 1, PaymentDate: "01-07-2025"})
	require.Error(t, err)
}

func TestProcessRequiresAdmin(t *testing.T) {
	repo, _ := newMockRepository(t)

	userID, month, year := 3, 6, 2025
	_, err := repo.Process(employeeCtx(), ProcessRequest{UserID: &userID, Month: &month, Year: &year})
	require.Error(t, err)
}
