package service

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
)

// Payslip is the printable breakdown of one payroll record.
type Payslip struct {
	EmployeeID    string
	FullName      string
	Month         int
	Year          int
	Basic         float64
	Housing       float64
	Transport     float64
	OvertimePay   float64
	OvertimeHours float64
	Bonus         float64
	Deduction     float64
	NetSalary     float64
	Status        string
	PaymentDate   *time.Time
	PaymentMethod string
}

// WritePayslipPDF renders the payslip into a PDF at fileName.
func WritePayslipPDF(slip Payslip, companyName, fileName string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Payslip %02d/%d", slip.Month, slip.Year), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(40, 7, "Employee", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("%s (%s)", slip.FullName, slip.EmployeeID), "", 1, "L", false, 0, "")
	if slip.PaymentDate != nil {
		pdf.CellFormat(40, 7, "Payment date", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, slip.PaymentDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	}
	if slip.PaymentMethod != "" {
		pdf.CellFormat(40, 7, "Payment method", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, slip.PaymentMethod, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	line := func(label string, amount float64) {
		pdf.CellFormat(100, 7, label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("%.2f", amount), "B", 1, "R", false, 0, "")
	}

	line("Basic salary", slip.Basic)
	line("Housing allowance", slip.Housing)
	line("Transport allowance", slip.Transport)
	line(fmt.Sprintf("Overtime pay (%.1f h)", slip.OvertimeHours), slip.OvertimePay)
	line("Bonus", slip.Bonus)
	line("Deduction", -slip.Deduction)

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 12)
	line("Net salary", slip.NetSalary)

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", slip.Status), "", 1, "L", false, 0, "")

	return pdf.OutputFileAndClose(fileName)
}
