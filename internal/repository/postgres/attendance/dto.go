package attendance

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit      *int
	Offset     *int
	Page       *int
	Search     *string
	Tag        *string
	Status     *string
	Date       *string
	EmployeeID *string
}

type CheckInRequest struct {
	EmployeeID *string  `json:"employee_id" form:"employee_id"`
	Latitude   *float64 `json:"latitude" form:"latitude"`
	Longitude  *float64 `json:"longitude" form:"longitude"`
	Accuracy   *float64 `json:"accuracy" form:"accuracy"`
	PhotoPath  *string  `json:"photo_path" form:"photo_path"`
	Device     *string  `json:"device" form:"device"`
	ShiftTag   *string  `json:"shift_tag" form:"shift_tag"`
}

type CheckInResponse struct {
	bun.BaseModel `bun:"table:attendance"`

	ID            int       `json:"id" bun:"-"`
	EmployeeID    *string   `json:"employee_id" bun:"employee_id"`
	WorkDay       string    `json:"work_day" bun:"work_day"`
	ComeTime      time.Time `json:"come_time" bun:"come_time"`
	Tag           *string   `json:"tag" bun:"tag"`
	Status        *string   `json:"status" bun:"status"`
	ComeLatitude  *float64  `json:"-" bun:"come_latitude"`
	ComeLongitude *float64  `json:"-" bun:"come_longitude"`
	ComeAccuracy  *float64  `json:"-" bun:"come_accuracy"`
	Device        *string   `json:"-" bun:"device"`
	PhotoPath     *string   `json:"-" bun:"photo_path"`
	CreatedAt     time.Time `json:"-" bun:"created_at"`
	CreatedBy     int       `json:"-" bun:"created_by"`
}

type CheckOutRequest struct {
	EmployeeID *string  `json:"employee_id" form:"employee_id"`
	Latitude   *float64 `json:"latitude" form:"latitude"`
	Longitude  *float64 `json:"longitude" form:"longitude"`
	Accuracy   *float64 `json:"accuracy" form:"accuracy"`
	Device     *string  `json:"device" form:"device"`
}

type CheckOutResponse struct {
	ID              int       `json:"id"`
	EmployeeID      *string   `json:"employee_id"`
	WorkDay         string    `json:"work_day"`
	ComeTime        time.Time `json:"come_time"`
	LeaveTime       time.Time `json:"leave_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

// OpenSessionResponse is the live projection of an employee's open session.
// ElapsedMinutes is clamped at the morning cutoff when Expired is set.
type OpenSessionResponse struct {
	ID             int       `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	Tag            string    `json:"tag"`
	ComeTime       time.Time `json:"come_time"`
	ElapsedMinutes int       `json:"elapsed_minutes"`
	Expired        bool      `json:"expired"`
}

type GetListResponse struct {
	ID              int        `json:"id"`
	EmployeeID      *string    `json:"employee_id"`
	FullName        *string    `json:"full_name"`
	WorkDay         *date.Date `json:"work_day"`
	Tag             *string    `json:"tag"`
	Status          *string    `json:"status"`
	ComeTime        *time.Time `json:"come_time"`
	LeaveTime       *time.Time `json:"leave_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
}

type GetDetailByIdResponse struct {
	ID              int        `json:"id"`
	EmployeeID      *string    `json:"employee_id"`
	FullName        *string    `json:"full_name"`
	WorkDay         *date.Date `json:"work_day"`
	Tag             *string    `json:"tag"`
	Status          *string    `json:"status"`
	ComeTime        *time.Time `json:"come_time"`
	LeaveTime       *time.Time `json:"leave_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	ComeLatitude    *float64   `json:"come_latitude,omitempty"`
	ComeLongitude   *float64   `json:"come_longitude,omitempty"`
	Device          *string    `json:"device,omitempty"`
	PhotoPath       *string    `json:"photo_path,omitempty"`
}

type UpdateRequest struct {
	ID        int     `json:"id" form:"id"`
	WorkDay   string  `json:"work_day" form:"work_day"`
	ComeTime  string  `json:"come_time" form:"come_time"`
	LeaveTime string  `json:"leave_time" form:"leave_time"`
	Tag       *string `json:"tag" form:"tag"`
	Status    *string `json:"status" form:"status"`
}
