package entity

import (
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	EmployeeID  *string `json:"employee_id"   bun:"employee_id"`
	Password    *string `json:"password"   bun:"password"`
	Role        *string `json:"role"       bun:"role"`
	FullName    *string `json:"full_name"  bun:"full_name"`
	Phone       *string `json:"phone"      bun:"phone"`
	Email       *string `json:"email"      bun:"email"`
	BankAccount *string `json:"bank_account" bun:"bank_account"`
	Status      *bool   `json:"status"     bun:"status"`
}
