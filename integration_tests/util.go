package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/rtphub/rtphub.go/controllers"
	"github.com/rtphub/rtphub.go/db"
	"github.com/rtphub/rtphub.go/db/migrations"
	"github.com/rtphub/rtphub.go/lib"
	"github.com/rtphub/rtphub.go/lib/responses"
	"github.com/rtphub/rtphub.go/lib/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/uptrace/bun/migrate"
)

const testAdminToken = "testadmintoken"

func RtphubTestServiceInit() (svc *service.RtphubService, err error) {
	c := &service.Config{
		// all suites share one in-memory database, every test scopes its
		// data to its own user
		DatabaseUri:             "sqlite://file::memory:?cache=shared",
		DatabaseMaxConns:        1,
		DatabaseMaxIdleConns:    1,
		DatabaseConnMaxLifetime: 10,
		JWTSecret:               []byte("SECRET"),
		JWTAccessTokenExpiry:    3600,
		JWTRefreshTokenExpiry:   3600,
		AdminToken:              testAdminToken,
		DefaultListLimit:        100,
		DefaultRateLimit:        100,
		StrictRateLimit:         100,
		BurstRateLimit:          100,
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	_, err = migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logger := lib.Logger(c.LogFilePath)
	svc = &service.RtphubService{
		Config:        c,
		DB:            dbConn,
		Logger:        logger,
		SessionPubSub: service.NewPubsub(),
	}
	return svc, nil
}

// unsafe parse jwt method to pull out userId claim
// should be used only in integration_tests package
func getUserIdFromToken(token string) int64 {
	parsedToken, _, _ := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	claims, _ := parsedToken.Claims.(jwt.MapClaims)
	return int64(claims["id"].(float64))
}

func createUsers(svc *service.RtphubService, usersToCreate int) (logins []controllers.CreateUserResponseBody, tokens []string, err error) {
	logins = []controllers.CreateUserResponseBody{}
	tokens = []string{}
	for i := 0; i < usersToCreate; i++ {
		user, err := svc.CreateUser(context.Background(), "", "")
		if err != nil {
			return nil, nil, err
		}
		var login controllers.CreateUserResponseBody
		login.Login = user.Login
		login.Password = user.Password
		logins = append(logins, login)
		token, _, err := svc.GenerateToken(context.Background(), login.Login, login.Password, "")
		if err != nil {
			return nil, nil, err
		}
		tokens = append(tokens, token)
	}
	return logins, tokens, nil
}

type TestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func checkErrResponse(suite *TestSuite, rec *httptest.ResponseRecorder) *responses.ErrorResponse {
	errorResponse := &responses.ErrorResponse{}
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errorResponse))
	return errorResponse
}

func (suite *TestSuite) createPaymentRequestReq(amount string, description, token string) *controllers.PaymentRequest {
	rec := httptest.NewRecorder()
	var buf bytes.Buffer
	assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(&controllers.AddPaymentRequestRequestBody{
		Amount:      decimal.RequireFromString(amount),
		Description: description,
	}))
	req := httptest.NewRequest(http.MethodPost, "/v2/payments", &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	suite.echo.ServeHTTP(rec, req)
	paymentResponse := &controllers.PaymentRequest{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(paymentResponse))
	return paymentResponse
}

func (suite *TestSuite) updatePaymentStatusReq(paymentRequestId int64, userId int64, status, paymentMethod, adminToken string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var buf bytes.Buffer
	assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(&controllers.UpdatePaymentStatusRequestBody{
		UserID:        userId,
		Status:        status,
		PaymentMethod: paymentMethod,
	}))
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/v2/admin/payments/%d/status", paymentRequestId), &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", adminToken))
	suite.echo.ServeHTTP(rec, req)
	return rec
}
