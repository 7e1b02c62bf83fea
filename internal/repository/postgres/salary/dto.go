package salary

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
}

type GetListResponse struct {
	ID                 int      `json:"id"`
	UserID             *int     `json:"user_id"`
	EmployeeID         *string  `json:"employee_id"`
	FullName           *string  `json:"full_name"`
	BasicSalary        *float64 `json:"basic_salary"`
	HousingAllowance   *float64 `json:"housing_allowance"`
	TransportAllowance *float64 `json:"transport_allowance"`
	OtherAllowance     *float64 `json:"other_allowance"`
	OvertimeRate       *float64 `json:"overtime_rate"`
	Deduction          *float64 `json:"deduction"`
}

type CreateRequest struct {
	UserID             *int     `json:"user_id" form:"user_id"`
	BasicSalary        *float64 `json:"basic_salary" form:"basic_salary"`
	HousingAllowance   *float64 `json:"housing_allowance" form:"housing_allowance"`
	TransportAllowance *float64 `json:"transport_allowance" form:"transport_allowance"`
	OtherAllowance     *float64 `json:"other_allowance" form:"other_allowance"`
	OvertimeRate       *float64 `json:"overtime_rate" form:"overtime_rate"`
	Deduction          *float64 `json:"deduction" form:"deduction"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:salary_profile"`

	ID                 int       `json:"id" bun:"-"`
	UserID             *int      `json:"user_id" bun:"user_id"`
	BasicSalary        *float64  `json:"basic_salary" bun:"basic_salary"`
	HousingAllowance   *float64  `json:"housing_allowance" bun:"housing_allowance"`
	TransportAllowance *float64  `json:"transport_allowance" bun:"transport_allowance"`
	OtherAllowance     *float64  `json:"other_allowance" bun:"other_allowance"`
	OvertimeRate       *float64  `json:"overtime_rate" bun:"overtime_rate"`
	Deduction          *float64  `json:"deduction" bun:"deduction"`
	CreatedAt          time.Time `json:"-" bun:"created_at"`
	CreatedBy          int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID                 int      `json:"id" form:"id"`
	BasicSalary        *float64 `json:"basic_salary" form:"basic_salary"`
	HousingAllowance   *float64 `json:"housing_allowance" form:"housing_allowance"`
	TransportAllowance *float64 `json:"transport_allowance" form:"transport_allowance"`
	OtherAllowance     *float64 `json:"other_allowance" form:"other_allowance"`
	OvertimeRate       *float64 `json:"overtime_rate" form:"overtime_rate"`
	Deduction          *float64 `json:"deduction" form:"deduction"`
}
