package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rtphub/rtphub.go/lib/service"
)

// HealthController : Health check controller struct
type HealthController struct {
	svc *service.RtphubService
}

func NewHealthController(svc *service.RtphubService) *HealthController {
	return &HealthController{svc: svc}
}

func (controller *HealthController) Health(c echo.Context) error {
	if err := controller.svc.DB.PingContext(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
