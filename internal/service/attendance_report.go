package service

import (
	"fmt"

	"workforce/backend/internal/domain/attendance"

	"github.com/xuri/excelize/v2"
)

// WriteAttendanceReport exports per-employee month summaries to an xlsx
// workbook. Rows keep the aggregator's ordering: employees descending by
// total minutes, days descending by date.
func WriteAttendanceReport(summaries []attendance.EmployeeSummary, fileName string) error {
	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Employee ID", "Name", "Date", "Status", "Regular Minutes", "Overtime Minutes", "Total Minutes"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}

	rowNum := 2
	for _, es := range summaries {
		for _, day := range es.Summary.Days {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), es.EmployeeID)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), es.FullName)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), day.Date.Format("2006-01-02"))
			f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), day.Status)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), day.RegularMinutes)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), day.OvertimeMinutes)
			f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), day.TotalMinutes)
			rowNum++
		}
	}

	if err := f.SaveAs(fileName); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}
