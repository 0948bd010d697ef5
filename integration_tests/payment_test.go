package integration_tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
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

type PaymentTestSuite struct {
	TestSuite
	Service    *service.RtphubService
	userTokens []string
}

func (suite *PaymentTestSuite) SetupSuite() {
	svc, err := RtphubTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	// a fresh user per test keeps list assertions independent
	_, userTokens, err := createUsers(svc, 4)
	if err != nil {
		log.Fatalf("Error creating test users %v", err)
	}
	suite.Service = svc
	suite.userTokens = userTokens
	e := echo.New()

	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e
	suite.echo.Use(tokens.Middleware(suite.Service.Config.JWTSecret))
	paymentCtrl := controllers.NewPaymentController(suite.Service)
	suite.echo.POST("/v2/payments", paymentCtrl.AddPaymentRequest)
	suite.echo.GET("/v2/payments", paymentCtrl.GetPaymentRequests)
	suite.echo.GET("/v2/payments/:id", paymentCtrl.GetPaymentRequest)
}

func (suite *PaymentTestSuite) listPaymentRequests(token, query string) *controllers.GetPaymentRequestsResponseBody {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v2/payments"+query, nil)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	suite.echo.ServeHTTP(rec, req)
	responseBody := &controllers.GetPaymentRequestsResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(responseBody))
	return responseBody
}

func (suite *PaymentTestSuite) TestAddPaymentRequest() {
	paymentRequest := suite.createPaymentRequestReq("120.50", "Website design", suite.userTokens[0])

	assert.NotZero(suite.T(), paymentRequest.ID)
	assert.Equal(suite.T(), common.PaymentStatusPending, paymentRequest.Status)
	assert.Equal(suite.T(), "120.5", paymentRequest.Amount.String())
	assert.Equal(suite.T(), "Website design", paymentRequest.Description)
	assert.True(suite.T(), paymentRequest.SettledAt.IsZero())
}

func (suite *PaymentTestSuite) TestAddPaymentRequestRequiresDescription() {
	rec := httptest.NewRecorder()
	var buf bytes.Buffer
	assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(&controllers.AddPaymentRequestRequestBody{
		Amount: decimal.RequireFromString("10"),
	}))
	req := httptest.NewRequest(http.MethodPost, "/v2/payments", &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", suite.userTokens[1]))
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *PaymentTestSuite) TestAddPaymentRequestRequiresPositiveAmount() {
	rec := httptest.NewRecorder()
	var buf bytes.Buffer
	assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(&controllers.AddPaymentRequestRequestBody{
		Amount:      decimal.Zero,
		Description: "free lunch",
	}))
	req := httptest.NewRequest(http.MethodPost, "/v2/payments", &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", suite.userTokens[1]))
	suite.echo.ServeHTTP(rec, req)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Contains(suite.T(), errorResponse.Message, "amount")

	// the rejected request left no trace
	responseBody := suite.listPaymentRequests(suite.userTokens[1], "")
	assert.Empty(suite.T(), responseBody.PaymentRequests)
}

func (suite *PaymentTestSuite) TestGetPaymentRequestById() {
	created := suite.createPaymentRequestReq("42.00", "Consulting", suite.userTokens[2])

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v2/payments/%d", created.ID), nil)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", suite.userTokens[2]))
	suite.echo.ServeHTTP(rec, req)
	responseBody := &controllers.PaymentRequest{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(responseBody))
	assert.Equal(suite.T(), created.ID, responseBody.ID)
	assert.Equal(suite.T(), "Consulting", responseBody.Description)

	// another user cannot see it
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v2/payments/%d", created.ID), nil)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", suite.userTokens[0]))
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *PaymentTestSuite) TestGetPaymentRequestNotFound() {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v2/payments/999999", nil)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", suite.userTokens[1]))
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *PaymentTestSuite) TestGetPaymentRequests() {
	suite.createPaymentRequestReq("10.00", "First", suite.userTokens[3])
	suite.createPaymentRequestReq("20.00", "Second", suite.userTokens[3])

	responseBody := suite.listPaymentRequests(suite.userTokens[3], "")
	assert.Equal(suite.T(), 2, len(responseBody.PaymentRequests))
	descriptions := []string{
		responseBody.PaymentRequests[0].Description,
		responseBody.PaymentRequests[1].Description,
	}
	assert.Contains(suite.T(), descriptions, "First")
	assert.Contains(suite.T(), descriptions, "Second")

	responseBody = suite.listPaymentRequests(suite.userTokens[3], "?limit=1")
	assert.Equal(suite.T(), 1, len(responseBody.PaymentRequests))
}

func (suite *PaymentTestSuite) TestInvalidLimitParam() {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v2/payments?limit=nope", nil)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", suite.userTokens[1]))
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *PaymentTestSuite) TestMissingTokenIsRejected() {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v2/payments", nil)
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func TestPaymentTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentTestSuite))
}
