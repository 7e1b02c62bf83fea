package payroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"workforce/backend/foundation/web"
	"workforce/backend/internal/repository/postgres/companyInfo"
	"workforce/backend/internal/repository/postgres/payroll"
	"workforce/backend/internal/service"
)

type CompanyInfo interface {
	GetInfo(ctx context.Context) (companyInfo.GetInfoResponse, error)
}

type Controller struct {
	payroll Payroll
	company CompanyInfo
}

func NewController(payroll Payroll, company CompanyInfo) *Controller {
	return &Controller{payroll, company}
}

func (uc Controller) ProcessPayroll(c *web.Context) error {
	var request payroll.ProcessRequest
	if err := c.BindFunc(&request, "UserID", "Month", "Year"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.payroll.Process(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) CreateBatch(c *web.Context) error {
	var request payroll.BatchRequest
	if err := c.BindFunc(&request, "Month", "Year", "PaymentDate"); err != nil {
		return c.RespondError(err)
	}
	if len(request.Items) == 0 {
		return c.RespondError(web.NewRequestError(errors.New("items must not be empty"), http.StatusBadRequest))
	}

	response, err := uc.payroll.CreateBatch(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) MarkPaid(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request payroll.MarkPaidRequest
	if err := c.BindFunc(&request, "PaymentDate"); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := uc.payroll.MarkPaid(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdatePayrollColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request payroll.UpdateRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := uc.payroll.UpdateColumns(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetPayrollList(c *web.Context) error {
	var filter payroll.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if userID, ok := c.GetQueryFunc(reflect.Int, "user_id").(*int); ok {
		filter.UserID = userID
	}
	if month, ok := c.GetQueryFunc(reflect.Int, "month").(*int); ok {
		filter.Month = month
	}
	if year, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok {
		filter.Year = year
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.payroll.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

// ExportBankTransfer writes the paid roster of a period into the
// fixed-column transfer workbook and streams it back.
func (uc Controller) ExportBankTransfer(c *web.Context) error {
	month, year, err := periodQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	roster, err := uc.payroll.GetPaidRoster(c.Ctx, month, year)
	if err != nil {
		return c.RespondError(err)
	}

	rows := make([]service.TransferRow, 0, len(roster))
	for _, entry := range roster {
		remarks := fmt.Sprintf("Salary %02d/%d", month, year)
		if entry.Notes != nil && *entry.Notes != "" {
			remarks = *entry.Notes
		}
		rows = append(rows, service.TransferRow{
			EmployeeID:  entry.EmployeeID,
			FullName:    entry.FullName,
			BankAccount: entry.BankAccount,
			Amount:      entry.NetSalary,
			PaymentDate: entry.PaymentDate,
			Remarks:     remarks,
		})
	}

	fileName := fmt.Sprintf("bank_transfer_%d_%02d.xlsx", year, month)
	if err := service.WriteBankTransferFile(rows, fileName); err != nil {
		return c.RespondError(err)
	}

	return streamFile(c, fileName, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// Payslip renders one employee's payroll record of a period as PDF.
func (uc Controller) Payslip(c *web.Context) error {
	userID, ok := c.GetQueryFunc(reflect.Int, "user_id").(*int)
	if !ok || userID == nil {
		return c.RespondError(web.NewRequestError(errors.New("user_id parameter is required"), http.StatusBadRequest))
	}
	month, year, err := periodQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, _, err := uc.payroll.GetList(c.Ctx, payroll.Filter{UserID: userID, Month: &month, Year: &year})
	if err != nil {
		return c.RespondError(err)
	}
	if len(list) == 0 {
		return c.RespondError(web.NewRequestError(errors.New("payroll record not found"), http.StatusNotFound))
	}
	record := list[0]

	company, err := uc.company.GetInfo(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	slip := service.Payslip{
		Month: month,
		Year:  year,
	}
	if record.EmployeeID != nil {
		slip.EmployeeID = *record.EmployeeID
	}
	if record.FullName != nil {
		slip.FullName = *record.FullName
	}
	if record.Basic != nil {
		slip.Basic = *record.Basic
	}
	if record.Housing != nil {
		slip.Housing = *record.Housing
	}
	if record.Transport != nil {
		slip.Transport = *record.Transport
	}
	if record.OvertimePay != nil {
		slip.OvertimePay = *record.OvertimePay
	}
	if record.OvertimeHours != nil {
		slip.OvertimeHours = *record.OvertimeHours
	}
	if record.Bonus != nil {
		slip.Bonus = *record.Bonus
	}
	if record.Deduction != nil {
		slip.Deduction = *record.Deduction
	}
	if record.NetSalary != nil {
		slip.NetSalary = *record.NetSalary
	}
	if record.Status != nil {
		slip.Status = *record.Status
	}
	if record.PaymentMethod != nil {
		slip.PaymentMethod = *record.PaymentMethod
	}
	slip.PaymentDate = record.PaymentDate

	fileName := fmt.Sprintf("payslip_%d_%d_%02d.pdf", record.ID, year, month)
	if err := service.WritePayslipPDF(slip, company.CompanyName, fileName); err != nil {
		return c.RespondError(err)
	}

	return streamFile(c, fileName, "application/pdf")
}

func (uc Controller) DeletePayroll(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.payroll.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func periodQuery(c *web.Context) (int, int, error) {
	month, ok := c.GetQueryFunc(reflect.Int, "month").(*int)
	if !ok || month == nil {
		return 0, 0, web.NewRequestError(errors.New("month parameter is required"), http.StatusBadRequest)
	}
	year, ok := c.GetQueryFunc(reflect.Int, "year").(*int)
	if !ok || year == nil {
		return 0, 0, web.NewRequestError(errors.New("year parameter is required"), http.StatusBadRequest)
	}
	if err := c.ValidQuery(); err != nil {
		return 0, 0, err
	}
	if *month < 1 || *month > 12 {
		return 0, 0, web.NewRequestError(errors.New("month must be between 1 and 12"), http.StatusBadRequest)
	}

	return *month, *year, nil
}

func streamFile(c *web.Context, fileName, contentType string) error {
	file, err := os.Open(fileName)
	if err != nil {
		return c.RespondError(err)
	}
	defer file.Close()

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	if _, err = io.Copy(c.Writer, file); err != nil {
		return c.RespondError(err)
	}
	return nil
}
