package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/rtphub/rtphub.go/lib/responses"
	"github.com/rtphub/rtphub.go/lib/service"
)

// UpdatePaymentController : admin-driven status transitions. This is the
// HTTP face of the external settlement process; the rabbitmq consumer is
// the other one.
type UpdatePaymentController struct {
	svc *service.RtphubService
}

func NewUpdatePaymentController(svc *service.RtphubService) *UpdatePaymentController {
	return &UpdatePaymentController{svc: svc}
}

type UpdatePaymentStatusRequestBody struct {
	UserID        int64  `json:"user_id" validate:"required"`
	Status        string `json:"status" validate:"required"`
	PaymentMethod string `json:"payment_method"`
}

func (controller *UpdatePaymentController) UpdatePaymentStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body UpdatePaymentStatusRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load update payment status request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err = controller.svc.HandleSettlementEvent(c.Request().Context(), service.SettlementEvent{
		UserID:           body.UserID,
		PaymentRequestID: id,
		Status:           body.Status,
		PaymentMethod:    body.PaymentMethod,
	})
	if err != nil {
		c.Logger().Errorf("Error applying settlement event: payment_request_id:%v error: %v", id, err)
		sentry.CaptureException(err)
		return mapTransitionError(c, err)
	}

	paymentRequest, err := controller.svc.FindPaymentRequest(c.Request().Context(), body.UserID, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	response := newPaymentRequestResponse(paymentRequest)
	return c.JSON(http.StatusOK, &response)
}

// mapTransitionError translates domain errors to wire responses.
func mapTransitionError(c echo.Context, err error) error {
	var validationErr *service.ValidationError
	var transitionErr *service.InvalidTransitionError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	case errors.As(err, &validationErr):
		response := responses.BadArgumentsError
		response.Message = validationErr.Error()
		return c.JSON(http.StatusBadRequest, response)
	case errors.As(err, &transitionErr):
		response := responses.InvalidTransitionError
		response.Message = transitionErr.Error()
		return c.JSON(http.StatusConflict, response)
	default:
		return err
	}
}
