package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rtphub/rtphub.go/lib/service"
)

// StatsController : Statistics aggregator controller struct
type StatsController struct {
	svc *service.RtphubService
}

func NewStatsController(svc *service.RtphubService) *StatsController {
	return &StatsController{svc: svc}
}

// GetStats returns the user's derived dashboard figures.
func (controller *StatsController) GetStats(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	stats, err := controller.svc.UserStatsFor(c.Request().Context(), userId)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &stats)
}
