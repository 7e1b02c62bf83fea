package user

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
	Role   *string
}

type SignInRequest struct {
	EmployeeID string `json:"employee_id" form:"employee_id"`
	Password   string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token" form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type GetListResponse struct {
	ID          int     `json:"id"`
	EmployeeID  *string `json:"employee_id"`
	FullName    *string `json:"full_name"`
	Role        *string `json:"role"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	BankAccount *string `json:"bank_account"`
	Status      *bool   `json:"status"`
}

type GetDetailByIdResponse struct {
	ID          int     `json:"id"`
	EmployeeID  *string `json:"employee_id"`
	FullName    *string `json:"full_name"`
	Role        *string `json:"role"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	BankAccount *string `json:"bank_account"`
	Status      *bool   `json:"status"`
}

type CreateRequest struct {
	EmployeeID  *string `json:"employee_id" form:"employee_id"`
	Password    *string `json:"password" form:"password"`
	Role        *string `json:"role" form:"role"`
	FullName    *string `json:"full_name" form:"full_name"`
	Phone       *string `json:"phone" form:"phone"`
	Email       *string `json:"email" form:"email"`
	BankAccount *string `json:"bank_account" form:"bank_account"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:users"`

	ID          int       `json:"id" bun:"-"`
	EmployeeID  *string   `json:"employee_id" bun:"employee_id"`
	Password    *string   `json:"-" bun:"password"`
	Role        *string   `json:"role" bun:"role"`
	FullName    *string   `json:"full_name" bun:"full_name"`
	Phone       *string   `json:"phone" bun:"phone"`
	Email       *string   `json:"email" bun:"email"`
	BankAccount *string   `json:"bank_account" bun:"bank_account"`
	CreatedAt   time.Time `json:"-" bun:"created_at"`
	CreatedBy   int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID          int     `json:"id" form:"id"`
	Password    *string `json:"password" form:"password"`
	Role        *string `json:"role" form:"role"`
	FullName    *string `json:"full_name" form:"full_name"`
	Phone       *string `json:"phone" form:"phone"`
	Email       *string `json:"email" form:"email"`
	BankAccount *string `json:"bank_account" form:"bank_account"`
}
