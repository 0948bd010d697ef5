package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/rtphub/rtphub.go/db/models"
	"github.com/rtphub/rtphub.go/lib/responses"
	"github.com/rtphub/rtphub.go/lib/service"
	"github.com/shopspring/decimal"
)

// PaymentController : Payment request controller struct
type PaymentController struct {
	svc *service.RtphubService
}

func NewPaymentController(svc *service.RtphubService) *PaymentController {
	return &PaymentController{svc: svc}
}

type PaymentRequest struct {
	ID            int64           `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	SettledAt     time.Time       `json:"settled_at"`
}

type AddPaymentRequestRequestBody struct {
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description" validate:"required"`
	InvoiceNumber string          `json:"invoice_number"`
	DueDate       *time.Time      `json:"due_date"`
}

type GetPaymentRequestsResponseBody struct {
	PaymentRequests []PaymentRequest `json:"payment_requests"`
}

func newPaymentRequestResponse(paymentRequest *models.PaymentRequest) PaymentRequest {
	return PaymentRequest{
		ID:            paymentRequest.ID,
		Amount:        paymentRequest.Amount,
		Description:   paymentRequest.Description,
		InvoiceNumber: paymentRequest.InvoiceNumber,
		DueDate:       paymentRequest.DueDate.Time,
		Status:        paymentRequest.Status,
		CreatedAt:     paymentRequest.CreatedAt,
		SettledAt:     paymentRequest.SettledAt.Time,
	}
}

// AddPaymentRequest creates a new pending payment request for the
// authenticated user.
func (controller *PaymentController) AddPaymentRequest(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	var body AddPaymentRequestRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load payment request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid payment request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	c.Logger().Infof("Adding payment request: user_id:%v amount:%v description:%s", userId, body.Amount, body.Description)

	paymentRequest, err := controller.svc.CreatePaymentRequest(c.Request().Context(), userId, body.Amount, body.Description, body.InvoiceNumber, body.DueDate)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			response := responses.BadArgumentsError
			response.Message = validationErr.Error()
			return c.JSON(http.StatusBadRequest, response)
		}
		c.Logger().Errorf("Error creating payment request: user_id:%v error: %v", userId, err)
		sentry.CaptureException(err)
		return err
	}

	response := newPaymentRequestResponse(paymentRequest)
	return c.JSON(http.StatusOK, &response)
}

// GetPaymentRequests returns the user's payment requests, newest first.
func (controller *PaymentController) GetPaymentRequests(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	limit := 0
	if c.QueryParams().Has("limit") {
		parsed, err := strconv.Atoi(c.QueryParam("limit"))
		if err != nil || parsed < 0 {
			c.Logger().Errorf("Invalid limit param: user_id:%v limit:%s", userId, c.QueryParam("limit"))
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
		limit = parsed
	}

	paymentRequests, err := controller.svc.PaymentRequestsFor(c.Request().Context(), userId, limit)
	if err != nil {
		return err
	}

	response := make([]PaymentRequest, len(paymentRequests))
	for i := range paymentRequests {
		response[i] = newPaymentRequestResponse(&paymentRequests[i])
	}
	return c.JSON(http.StatusOK, &GetPaymentRequestsResponseBody{PaymentRequests: response})
}

// GetPaymentRequest returns a single payment request by id.
func (controller *PaymentController) GetPaymentRequest(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	paymentRequest, err := controller.svc.FindPaymentRequest(c.Request().Context(), userId, id)
	if err != nil {
		c.Logger().Errorf("Payment request not found: user_id:%v id:%v", userId, id)
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	response := newPaymentRequestResponse(paymentRequest)
	return c.JSON(http.StatusOK, &response)
}
