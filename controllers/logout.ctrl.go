package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rtphub/rtphub.go/lib/service"
)

// LogoutController : Logout controller struct
type LogoutController struct {
	svc *service.RtphubService
}

func NewLogoutController(svc *service.RtphubService) *LogoutController {
	return &LogoutController{svc: svc}
}

// Logout ends the session from the portal's point of view and notifies
// subscribers so dependent views can redirect.
func (controller *LogoutController) Logout(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	controller.svc.Logout(c.Request().Context(), userId)

	return c.NoContent(http.StatusNoContent)
}
