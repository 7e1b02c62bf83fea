package entity

import (
	"github.com/uptrace/bun"
)

type CompanyInfo struct {
	bun.BaseModel `bun:"table:company_info"`

	BasicEntity
	CompanyName string  `json:"company_name" bun:"company_name"`
	StartTime   *string `json:"start_time" bun:"start_time"`
	EndTime     *string `json:"end_time" bun:"end_time"`
	LateTime    *string `json:"late_time" bun:"late_time"`
	Latitude    float64 `json:"latitude" bun:"latitude"`
	Longitude   float64 `json:"longitude" bun:"longitude"`
	Radius      float64 `json:"radius" bun:"radius"`
}
