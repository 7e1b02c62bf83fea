package payroll

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	UserID *int
	Month  *int
	Year   *int
	Status *string
}

// ProcessRequest drives the single-record engine. OvertimeHours and
// OvertimePay default from aggregation and the rate mode; both can be
// overridden by the operator.
type ProcessRequest struct {
	UserID        *int     `json:"user_id" form:"user_id"`
	Month         *int     `json:"month" form:"month"`
	Year          *int     `json:"year" form:"year"`
	OvertimeHours *float64 `json:"overtime_hours" form:"overtime_hours"`
	OvertimePay   *float64 `json:"overtime_pay" form:"overtime_pay"`
	Bonus         *float64 `json:"bonus" form:"bonus"`
	Deduction     *float64 `json:"deduction" form:"deduction"`
	Notes         *string  `json:"notes" form:"notes"`
}

type ProcessResponse struct {
	bun.BaseModel `bun:"table:payroll"`

	ID            int       `json:"id" bun:"-"`
	UserID        *int      `json:"user_id" bun:"user_id"`
	Month         int       `json:"month" bun:"month"`
	Year          int       `json:"year" bun:"year"`
	Basic         float64   `json:"basic" bun:"basic"`
	Housing       float64   `json:"housing" bun:"housing"`
	Transport     float64   `json:"transport" bun:"transport"`
	OvertimePay   float64   `json:"overtime_pay" bun:"overtime_pay"`
	OvertimeHours float64   `json:"overtime_hours" bun:"overtime_hours"`
	Bonus         float64   `json:"bonus" bun:"bonus"`
	Deduction     float64   `json:"deduction" bun:"deduction"`
	NetSalary     float64   `json:"net_salary" bun:"net_salary"`
	Status        string    `json:"status" bun:"status"`
	Notes         *string   `json:"notes" bun:"notes"`
	CreatedAt     time.Time `json:"-" bun:"created_at"`
	CreatedBy     int       `json:"-" bun:"created_by"`
}

type MarkPaidRequest struct {
	ID            int     `json:"id" form:"id"`
	PaymentDate   string  `json:"payment_date" form:"payment_date"`
	PaymentMethod *string `json:"payment_method" form:"payment_method"`
}

// BatchItem is one employee's row in a batch run. Only bonus and deduction
// can vary per employee; everything else is shared.
type BatchItem struct {
	UserID    *int     `json:"user_id" form:"user_id"`
	Bonus     *float64 `json:"bonus" form:"bonus"`
	Deduction *float64 `json:"deduction" form:"deduction"`
}

type BatchRequest struct {
	Month         *int        `json:"month" form:"month"`
	Year          *int        `json:"year" form:"year"`
	PaymentDate   *string     `json:"payment_date" form:"payment_date"`
	PaymentMethod *string     `json:"payment_method" form:"payment_method"`
	Items         []BatchItem `json:"items" form:"items"`
}

type BatchResponse struct {
	Count   int               `json:"count"`
	Records []ProcessResponse `json:"records"`
}

type GetListResponse struct {
	ID            int        `json:"id"`
	UserID        *int       `json:"user_id"`
	EmployeeID    *string    `json:"employee_id"`
	FullName      *string    `json:"full_name"`
	Month         *int       `json:"month"`
	Year          *int       `json:"year"`
	Basic         *float64   `json:"basic"`
	Housing       *float64   `json:"housing"`
	Transport     *float64   `json:"transport"`
	OvertimePay   *float64   `json:"overtime_pay"`
	OvertimeHours *float64   `json:"overtime_hours"`
	Bonus         *float64   `json:"bonus"`
	Deduction     *float64   `json:"deduction"`
	NetSalary     *float64   `json:"net_salary"`
	Status        *string    `json:"status"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

type UpdateRequest struct {
	ID            int      `json:"id" form:"id"`
	Basic         *float64 `json:"basic" form:"basic"`
	Housing       *float64 `json:"housing" form:"housing"`
	Transport     *float64 `json:"transport" form:"transport"`
	OvertimePay   *float64 `json:"overtime_pay" form:"overtime_pay"`
	OvertimeHours *float64 `json:"overtime_hours" form:"overtime_hours"`
	Bonus         *float64 `json:"bonus" form:"bonus"`
	Deduction     *float64 `json:"deduction" form:"deduction"`
	Notes         *string  `json:"notes" form:"notes"`
}

// PaidRosterRow feeds the bank-transfer export. BankAccount may be nil; the
// exporter substitutes a documented placeholder.
type PaidRosterRow struct {
	EmployeeID  string     `json:"employee_id"`
	FullName    string     `json:"full_name"`
	BankAccount *string    `json:"bank_account"`
	NetSalary   float64    `json:"net_salary"`
	PaymentDate *time.Time `json:"payment_date"`
	Notes       *string    `json:"notes"`
}
