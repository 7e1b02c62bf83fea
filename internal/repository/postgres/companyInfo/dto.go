package companyInfo

type GetInfoResponse struct {
	ID          int     `json:"id"`
	CompanyName string  `json:"company_name"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	LateTime    string  `json:"late_time"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Radius      float64 `json:"radius"`
}

type UpdateRequest struct {
	ID          int      `json:"id" form:"id"`
	CompanyName *string  `json:"company_name" form:"company_name"`
	StartTime   *string  `json:"start_time" form:"start_time"`
	EndTime     *string  `json:"end_time" form:"end_time"`
	LateTime    *string  `json:"late_time" form:"late_time"`
	Latitude    *float64 `json:"latitude" form:"latitude"`
	Longitude   *float64 `json:"longitude" form:"longitude"`
	Radius      *float64 `json:"radius" form:"radius"`
}
