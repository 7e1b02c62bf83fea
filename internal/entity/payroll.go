package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Payroll is one monthly disbursement record, logically keyed by
// (user, month, year). Re-processing the same period updates in place.
type Payroll struct {
	bun.BaseModel `bun:"table:payroll"`

	BasicEntity
	UserID        *int       `json:"user_id" bun:"user_id"`
	Month         *int       `json:"month" bun:"month"`
	Year          *int       `json:"year" bun:"year"`
	Basic         *float64   `json:"basic" bun:"basic"`
	Housing       *float64   `json:"housing" bun:"housing"`
	Transport     *float64   `json:"transport" bun:"transport"`
	OvertimePay   *float64   `json:"overtime_pay" bun:"overtime_pay"`
	OvertimeHours *float64   `json:"overtime_hours" bun:"overtime_hours"`
	Bonus         *float64   `json:"bonus" bun:"bonus"`
	Deduction     *float64   `json:"deduction" bun:"deduction"`
	NetSalary     *float64   `json:"net_salary" bun:"net_salary"`
	Status        *string    `json:"status" bun:"status"`
	PaymentDate   *time.Time `json:"payment_date" bun:"payment_date"`
	PaymentMethod *string    `json:"payment_method" bun:"payment_method"`
	Notes         *string    `json:"notes" bun:"notes"`
}
