package attendance

import (
	"errors"
	"io"
	"net/http"
	"os"
	"reflect"
	"time"
	"workforce/backend/foundation/web"
	domain "workforce/backend/internal/domain/attendance"
	"workforce/backend/internal/repository/postgres/attendance"
	"workforce/backend/internal/repository/postgres/user"
	"workforce/backend/internal/service"
	"workforce/backend/internal/service/roster"
	"workforce/backend/internal/service/tracker"
)

type Controller struct {
	attendance Attendance
	user       User
	tracker    *tracker.Tracker
	notifier   *roster.Notifier
}

func NewController(attendance Attendance, user User, tracker *tracker.Tracker, notifier *roster.Notifier) *Controller {
	return &Controller{attendance, user, tracker, notifier}
}

type HeartbeatRequest struct {
	SessionID *int     `json:"session_id" form:"session_id"`
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
	Accuracy  *float64 `json:"accuracy" form:"accuracy"`
}

func (uc Controller) CheckIn(c *web.Context) error {
	var request attendance.CheckInRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.CheckIn(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	uc.tracker.Start(response.ID)
	uc.notify(c, response.EmployeeID, "COME", response.ComeTime)

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) CheckOut(c *web.Context) error {
	var request attendance.CheckOutRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.CheckOut(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	uc.tracker.Stop(response.ID)
	uc.notify(c, response.EmployeeID, "LEAVE", response.LeaveTime)

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// notify publishes a roster change. The full name lookup is best effort;
// the event still goes out without it.
func (uc Controller) notify(c *web.Context, employeeID *string, kind string, at time.Time) {
	if employeeID == nil {
		return
	}

	fullName := ""
	if detail, err := uc.user.GetByEmployeeID(c.Ctx, *employeeID); err == nil && detail.FullName != nil {
		fullName = *detail.FullName
	}

	uc.notifier.Notify(c.Ctx, roster.Notification{
		EmployeeID: *employeeID,
		FullName:   fullName,
		Kind:       kind,
		At:         at,
	})
}

func (uc Controller) Heartbeat(c *web.Context) error {
	var request HeartbeatRequest
	if err := c.BindFunc(&request, "SessionID", "Latitude", "Longitude"); err != nil {
		return c.RespondError(err)
	}

	accuracy := 0.0
	if request.Accuracy != nil {
		accuracy = *request.Accuracy
	}
	uc.tracker.Observe(*request.SessionID, *request.Latitude, *request.Longitude, accuracy)

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetOpenSession(c *web.Context) error {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		return c.RespondError(web.NewRequestError(errors.New("employee_id parameter is required"), http.StatusBadRequest))
	}

	response, err := uc.attendance.GetOpenSession(c.Ctx, employeeID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetMonthlySummary(c *web.Context) error {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		return c.RespondError(web.NewRequestError(errors.New("employee_id parameter is required"), http.StatusBadRequest))
	}

	year, month, err := periodQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	sessions, err := uc.attendance.GetMonthly(c.Ctx, employeeID, year, month)
	if err != nil {
		return c.RespondError(err)
	}

	summary := domain.Summarize(sessions, year, month, time.Now())

	return c.Respond(map[string]interface{}{
		"data":   summary,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetRanking(c *web.Context) error {
	year, month, err := periodQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	summaries, err := uc.summaries(c, year, month)
	if err != nil {
		return c.RespondError(err)
	}
	domain.Rank(summaries)

	return c.Respond(map[string]interface{}{
		"data":   summaries,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) ExportReport(c *web.Context) error {
	year, month, err := periodQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	summaries, err := uc.summaries(c, year, month)
	if err != nil {
		return c.RespondError(err)
	}
	domain.Rank(summaries)

	fileName := "attendance_report.xlsx"
	if err := service.WriteAttendanceReport(summaries, fileName); err != nil {
		return c.RespondError(err)
	}

	file, err := os.Open(fileName)
	if err != nil {
		return c.RespondError(err)
	}
	defer file.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\"attendance_report.xlsx\"")
	if _, err = io.Copy(c.Writer, file); err != nil {
		return c.RespondError(err)
	}
	return nil
}

func (uc Controller) summaries(c *web.Context, year int, month time.Month) ([]domain.EmployeeSummary, error) {
	employees, _, err := uc.user.GetList(c.Ctx, user.Filter{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	summaries := make([]domain.EmployeeSummary, 0, len(employees))
	for _, employee := range employees {
		if employee.EmployeeID == nil {
			continue
		}

		sessions, err := uc.attendance.GetMonthly(c.Ctx, *employee.EmployeeID, year, month)
		if err != nil {
			return nil, err
		}

		entry := domain.EmployeeSummary{
			EmployeeID: *employee.EmployeeID,
			Summary:    domain.Summarize(sessions, year, month, now),
		}
		if employee.FullName != nil {
			entry.FullName = *employee.FullName
		}
		summaries = append(summaries, entry)
	}

	return summaries, nil
}

// LiveRoster streams presence changes to the dashboard over SSE. Duplicate
// and out-of-order deliveries are filtered by sequence number.
func (uc Controller) LiveRoster(c *web.Context) error {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	var cursor roster.Cursor
	err := uc.notifier.Listen(c.Request.Context(), func(note roster.Notification) {
		if !cursor.Admit(note.Seq) {
			return
		}
		c.SSEvent("roster", note)
		c.Writer.Flush()
	})
	if err != nil && !errors.Is(err, c.Request.Context().Err()) {
		return c.RespondError(err)
	}
	return nil
}

func (uc Controller) GetList(c *web.Context) error {
	var filter attendance.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if tag, ok := c.GetQueryFunc(reflect.String, "tag").(*string); ok {
		filter.Tag = tag
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if filterDate, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = filterDate
	}
	if employeeID, ok := c.GetQueryFunc(reflect.String, "employee_id").(*string); ok {
		filter.EmployeeID = employeeID
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetList(c.Ctx, filter)
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

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request attendance.UpdateRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := uc.attendance.UpdateColumns(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.attendance.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func periodQuery(c *web.Context) (int, time.Month, error) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if y, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok && y != nil {
		year = *y
	}
	if m, ok := c.GetQueryFunc(reflect.Int, "month").(*int); ok && m != nil {
		month = *m
	}
	if err := c.ValidQuery(); err != nil {
		return 0, 0, err
	}
	if month < 1 || month > 12 {
		return 0, 0, web.NewRequestError(errors.New("month must be between 1 and 12"), http.StatusBadRequest)
	}

	return year, time.Month(month), nil
}
