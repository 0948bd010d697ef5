package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rtphub/rtphub.go/lib/service"
	"github.com/shopspring/decimal"
)

// BalanceController : Profile funds controller struct
type BalanceController struct {
	svc *service.RtphubService
}

func NewBalanceController(svc *service.RtphubService) *BalanceController {
	return &BalanceController{svc: svc}
}

type BalanceResponseBody struct {
	FundsAvailable decimal.Decimal `json:"funds_available"`
	IsVerified     bool            `json:"is_verified"`
	FullName       string          `json:"full_name,omitempty"`
}

// Balance returns the read-only profile figures. Funds are maintained
// externally, this core never mutates them.
func (controller *BalanceController) Balance(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	user, err := controller.svc.FindUser(c.Request().Context(), userId)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &BalanceResponseBody{
		FundsAvailable: user.FundsAvailable,
		IsVerified:     user.IsVerified,
		FullName:       user.FullName,
	})
}
