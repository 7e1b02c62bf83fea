package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Shift tags classify a session and drive payroll bucketing.
const (
	TagMorning  = "MORNING"
	TagSecond   = "SECOND"
	TagOvertime = "OVERTIME"
)

// Day statuses as they appear on summaries.
const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
	StatusLeave   = "LEAVE"
)

// Attendance is one clock session. LeaveTime is nil while the session is
// open; at most one open session may exist per employee.
type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	EmployeeID      *string    `json:"employee_id" bun:"employee_id"`
	WorkDay         string     `json:"work_day" bun:"work_day"`
	ComeTime        *time.Time `json:"come_time" bun:"come_time"`
	LeaveTime       *time.Time `json:"leave_time" bun:"leave_time"`
	Tag             *string    `json:"tag" bun:"tag"`
	Status          *string    `json:"status" bun:"status"`
	DurationMinutes *int       `json:"duration_minutes" bun:"duration_minutes"`
	ComeLatitude    *float64   `json:"come_latitude" bun:"come_latitude"`
	ComeLongitude   *float64   `json:"come_longitude" bun:"come_longitude"`
	ComeAccuracy    *float64   `json:"come_accuracy" bun:"come_accuracy"`
	LeaveLatitude   *float64   `json:"leave_latitude" bun:"leave_latitude"`
	LeaveLongitude  *float64   `json:"leave_longitude" bun:"leave_longitude"`
	LeaveAccuracy   *float64   `json:"leave_accuracy" bun:"leave_accuracy"`
	Device          *string    `json:"device" bun:"device"`
	PhotoPath       *string    `json:"photo_path" bun:"photo_path"`
}

// LocationPing is one heartbeat sample recorded while a session is open.
type LocationPing struct {
	bun.BaseModel `bun:"table:location_ping"`

	ID           int       `json:"id" bun:"id,pk,autoincrement"`
	AttendanceID int       `json:"attendance_id" bun:"attendance_id"`
	Latitude     float64   `json:"latitude" bun:"latitude"`
	Longitude    float64   `json:"longitude" bun:"longitude"`
	Accuracy     float64   `json:"accuracy" bun:"accuracy"`
	CreatedAt    time.Time `json:"created_at" bun:"created_at"`
}
