package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/rtphub/rtphub.go/db/models"
	"github.com/rtphub/rtphub.go/lib/responses"
	"github.com/rtphub/rtphub.go/lib/service"
)

// RecipientController : Recipient directory controller struct
type RecipientController struct {
	svc *service.RtphubService
}

func NewRecipientController(svc *service.RtphubService) *RecipientController {
	return &RecipientController{svc: svc}
}

type Recipient struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	VerifiedAt         time.Time `json:"verified_at"`
}

type AddRecipientRequestBody struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

type GetRecipientsResponseBody struct {
	Recipients []Recipient `json:"recipients"`
}

func newRecipientResponse(recipient *models.Recipient) Recipient {
	return Recipient{
		ID:                 recipient.ID,
		Name:               recipient.Name,
		Email:              recipient.Email,
		Phone:              recipient.Phone,
		VerificationStatus: recipient.VerificationStatus,
		CreatedAt:          recipient.CreatedAt,
		VerifiedAt:         recipient.VerifiedAt.Time,
	}
}

// AddRecipient adds a payee to the user's trust list.
func (controller *RecipientController) AddRecipient(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	var body AddRecipientRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load add recipient request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid add recipient request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	recipient, err := controller.svc.AddRecipient(c.Request().Context(), userId, body.Name, body.Email, body.Phone)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			response := responses.BadArgumentsError
			response.Message = validationErr.Error()
			return c.JSON(http.StatusBadRequest, response)
		}
		c.Logger().Errorf("Error adding recipient: user_id:%v error: %v", userId, err)
		sentry.CaptureException(err)
		return err
	}

	response := newRecipientResponse(recipient)
	return c.JSON(http.StatusOK, &response)
}

// GetRecipients returns the user's trust list, newest first.
func (controller *RecipientController) GetRecipients(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	recipients, err := controller.svc.RecipientsFor(c.Request().Context(), userId)
	if err != nil {
		return err
	}

	response := make([]Recipient, len(recipients))
	for i := range recipients {
		response[i] = newRecipientResponse(&recipients[i])
	}
	return c.JSON(http.StatusOK, &GetRecipientsResponseBody{Recipients: response})
}
