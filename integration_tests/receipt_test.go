package integration_tests

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rtphub/rtphub.go/common"
	"github.com/rtphub/rtphub.go/controllers"
	"github.com/rtphub/rtphub.go/lib"
	"github.com/rtphub/rtphub.go/lib/responses"
	"github.com/rtphub/rtphub.go/lib/service"
	"github.com/rtphub/rtphub.go/lib/tokens"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ReceiptTestSuite struct {
	TestSuite
	Service   *service.RtphubService
	userToken string
	userId    int64
}

func (suite *ReceiptTestSuite) SetupSuite() {
	svc, err := RtphubTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	_, userTokens, err := createUsers(svc, 1)
	if err != nil {
		log.Fatalf("Error creating test users %v", err)
	}
	suite.Service = svc
	suite.userToken = userTokens[0]
	suite.userId = getUserIdFromToken(userTokens[0])
	e := echo.New()

	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e
	suite.echo.Use(tokens.Middleware(suite.Service.Config.JWTSecret))
	receiptCtrl := controllers.NewReceiptController(suite.Service)
	suite.echo.GET("/v2/receipts", receiptCtrl.GetReceipts)
	suite.echo.GET("/v2/receipts/:id/export", receiptCtrl.ExportReceipt)

	// settle one payment request so the suite has a receipt to look at
	ctx := context.Background()
	paymentRequest, err := svc.CreatePaymentRequest(ctx, suite.userId, decimal.RequireFromString("120.50"), "Website design", "INV-7", nil)
	if err != nil {
		log.Fatalf("Error creating payment request: %v", err)
	}
	err = svc.HandleSettlementEvent(ctx, service.SettlementEvent{
		UserID:           suite.userId,
		PaymentRequestID: paymentRequest.ID,
		Status:           common.PaymentStatusPaid,
		PaymentMethod:    "bank_transfer",
	})
	if err != nil {
		log.Fatalf("Error settling payment request: %v", err)
	}
}

func (suite *ReceiptTestSuite) TestExportReceipt() {
	receipts, err := suite.Service.ReceiptsFor(context.Background(), suite.userId)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, len(receipts))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v2/receipts/%d/export", receipts[0].ID), nil)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", suite.userToken))
	suite.echo.ServeHTTP(rec, req)

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Header().Get(echo.HeaderContentDisposition), fmt.Sprintf("receipt-%s.txt", receipts[0].ReceiptNumber))
	body := rec.Body.String()
	assert.True(suite.T(), strings.HasPrefix(body, "RTP PORTAL - OFFICIAL RECEIPT"))
	assert.Contains(suite.T(), body, fmt.Sprintf("Receipt #: %s", receipts[0].ReceiptNumber))
	assert.Contains(suite.T(), body, "Amount: $120.50")
	assert.Contains(suite.T(), body, "Payment Method: bank_transfer")
	assert.True(suite.T(), strings.HasSuffix(body, "Thank you for your payment!"))
}

func (suite *ReceiptTestSuite) TestExportUnknownReceipt() {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v2/receipts/999999/export", nil)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", suite.userToken))
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *ReceiptTestSuite) TestGetReceipts() {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v2/receipts", nil)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", suite.userToken))
	suite.echo.ServeHTTP(rec, req)

	responseBody := &controllers.GetReceiptsResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(responseBody))
	assert.Equal(suite.T(), 1, len(responseBody.Receipts))
	receipt := responseBody.Receipts[0]
	assert.True(suite.T(), strings.HasPrefix(receipt.ReceiptNumber, "RCPT-"))
	assert.Equal(suite.T(), "120.5", receipt.Amount.String())
	assert.Equal(suite.T(), "bank_transfer", receipt.PaymentMethod)
	assert.False(suite.T(), receipt.TransactionDate.IsZero())
}

func TestReceiptTestSuite(t *testing.T) {
	suite.Run(t, new(ReceiptTestSuite))
}
