package companyInfo

import (
	"net/http"
	"workforce/backend/foundation/web"
	"workforce/backend/internal/repository/postgres/companyInfo"
)

type Controller struct {
	companyInfo CompanyInfo
}

func NewController(companyInfo CompanyInfo) *Controller {
	return &Controller{companyInfo}
}

func (uc Controller) GetInfo(c *web.Context) error {
	response, err := uc.companyInfo.GetInfo(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateAll(c *web.Context) error {
	var request companyInfo.UpdateRequest
	if err := c.BindFunc(&request, "CompanyName", "Latitude", "Longitude", "Radius"); err != nil {
		return c.RespondError(err)
	}

	if err := uc.companyInfo.UpdateAll(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
