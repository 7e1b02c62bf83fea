package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteBankTransferFile(t *testing.T) {
	account := "1234567890"
	paid := time.Date(2025, time.June, 28, 0, 0, 0, 0, time.UTC)

	rows := []TransferRow{
		{EmployeeID: "E001", FullName: "Alice", BankAccount: &account, Amount: 5200, PaymentDate: &paid, Remarks: "June salary"},
		{EmployeeID: "E002", FullName: "Bob", Amount: 3300, PaymentDate: &paid},
	}

	fileName := filepath.Join(t.TempDir(), "transfer.xlsx")
	require.NoError(t, WriteBankTransferFile(rows, fileName))

	f, err := excelize.OpenFile(fileName)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Sheet1")
	require.NoError(t, err)

	// header + one row per input
	require.Len(t, got, 3)
	assert.Equal(t, transferHeaders, got[0])
	assert.Equal(t, "E001", got[1][0])
	assert.Equal(t, account, got[1][2])
	assert.Equal(t, "2025-06-28", got[1][4])

	// missing account falls back to the placeholder, never an error
	assert.Equal(t, PlaceholderBankAccount, got[2][2])
}

func TestWriteBankTransferFileEmpty(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteBankTransferFile(nil, fileName))

	f, err := excelize.OpenFile(fileName)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, got, 1)
}
