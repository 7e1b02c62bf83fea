package service

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// PlaceholderBankAccount substitutes for a missing account number so an
// export never fails on incomplete employee data. The bank rejects the row
// and payroll follows up manually.
const PlaceholderBankAccount = "0000000000"

// TransferRow is one line of the fixed-column bank-transfer file. Only PAID
// payroll records may be turned into rows.
type TransferRow struct {
	EmployeeID  string
	FullName    string
	BankAccount *string
	Amount      float64
	PaymentDate *time.Time
	Remarks     string
}

var transferHeaders = []string{"Employee ID", "Name", "Bank Account", "Amount", "Payment Date", "Remarks"}

// WriteBankTransferFile writes the transfer rows into an xlsx workbook at
// fileName.
func WriteBankTransferFile(rows []TransferRow, fileName string) error {
	f := excelize.NewFile()
	sheet := "Sheet1"

	for i, header := range transferHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}

	rowNum := 2
	for _, entry := range rows {
		account := PlaceholderBankAccount
		if entry.BankAccount != nil && *entry.BankAccount != "" {
			account = *entry.BankAccount
		}

		paymentDate := ""
		if entry.PaymentDate != nil {
			paymentDate = entry.PaymentDate.Format("2006-01-02")
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), entry.EmployeeID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), entry.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), account)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), entry.Amount)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), paymentDate)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), entry.Remarks)
		rowNum++
	}

	if err := f.SaveAs(fileName); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}
