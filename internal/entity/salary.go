package entity

import (
	"github.com/uptrace/bun"
)

// SalaryProfile is the per-employee pay configuration payroll derives from.
// OvertimeRate is magnitude-dual: values above 5 are a currency-per-hour
// amount, values at or below 5 a multiplier of the hourly wage.
type SalaryProfile struct {
	bun.BaseModel `bun:"table:salary_profile"`

	BasicEntity
	UserID             *int     `json:"user_id" bun:"user_id"`
	BasicSalary        *float64 `json:"basic_salary" bun:"basic_salary"`
	HousingAllowance   *float64 `json:"housing_allowance" bun:"housing_allowance"`
	TransportAllowance *float64 `json:"transport_allowance" bun:"transport_allowance"`
	OtherAllowance     *float64 `json:"other_allowance" bun:"other_allowance"`
	OvertimeRate       *float64 `json:"overtime_rate" bun:"overtime_rate"`
	Deduction          *float64 `json:"deduction" bun:"deduction"`
}
