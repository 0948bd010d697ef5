package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rtphub/rtphub.go/db/models"
	"github.com/rtphub/rtphub.go/lib/responses"
	"github.com/rtphub/rtphub.go/lib/service"
	"github.com/shopspring/decimal"
)

// ReceiptController : Receipt store controller struct
type ReceiptController struct {
	svc *service.RtphubService
}

func NewReceiptController(svc *service.RtphubService) *ReceiptController {
	return &ReceiptController{svc: svc}
}

type Receipt struct {
	ID              int64           `json:"id"`
	ReceiptNumber   string          `json:"receipt_number"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transaction_date"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type GetReceiptsResponseBody struct {
	Receipts []Receipt `json:"receipts"`
}

func newReceiptResponse(receipt *models.Receipt) Receipt {
	return Receipt{
		ID:              receipt.ID,
		ReceiptNumber:   receipt.ReceiptNumber,
		Amount:          receipt.Amount,
		TransactionDate: receipt.TransactionDate,
		PaymentMethod:   receipt.PaymentMethod,
		Notes:           receipt.Notes,
	}
}

// GetReceipts returns the user's receipts, most recent transaction first.
func (controller *ReceiptController) GetReceipts(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	receipts, err := controller.svc.ReceiptsFor(c.Request().Context(), userId)
	if err != nil {
		return err
	}

	response := make([]Receipt, len(receipts))
	for i := range receipts {
		response[i] = newReceiptResponse(&receipts[i])
	}
	return c.JSON(http.StatusOK, &GetReceiptsResponseBody{Receipts: response})
}

// ExportReceipt serves the formatted plain-text receipt as a download.
func (controller *ReceiptController) ExportReceipt(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	receipt, err := controller.svc.FindReceipt(c.Request().Context(), userId, id)
	if err != nil {
		c.Logger().Errorf("Receipt not found: user_id:%v id:%v", userId, id)
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+service.FormatReceiptFileName(receipt)+`"`)
	return c.String(http.StatusOK, service.FormatReceiptText(receipt))
}
