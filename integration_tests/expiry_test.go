package integration_tests

import (
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/rtphub/rtphub.go/common"
	"github.com/rtphub/rtphub.go/lib/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ExpiryTestSuite struct {
	suite.Suite
	Service *service.RtphubService
	userId  int64
}

func (suite *ExpiryTestSuite) SetupSuite() {
	svc, err := RtphubTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	_, userTokens, err := createUsers(svc, 1)
	if err != nil {
		log.Fatalf("Error creating test users %v", err)
	}
	suite.Service = svc
	suite.userId = getUserIdFromToken(userTokens[0])
}

func (suite *ExpiryTestSuite) TestOverduePendingRequestsExpire() {
	ctx := context.Background()
	svc := suite.Service
	overdueDate := time.Now().Add(-24 * time.Hour)
	futureDate := time.Now().Add(24 * time.Hour)

	overdue, err := svc.CreatePaymentRequest(ctx, suite.userId, decimal.RequireFromString("10.00"), "Overdue", "", &overdueDate)
	assert.NoError(suite.T(), err)
	notDue, err := svc.CreatePaymentRequest(ctx, suite.userId, decimal.RequireFromString("20.00"), "Not due yet", "", &futureDate)
	assert.NoError(suite.T(), err)
	// settled before the sweep, the past due date no longer matters
	settled, err := svc.CreatePaymentRequest(ctx, suite.userId, decimal.RequireFromString("30.00"), "Settled", "", &overdueDate)
	assert.NoError(suite.T(), err)
	_, err = svc.TransitionPaymentRequest(ctx, settled, common.PaymentStatusPaid)
	assert.NoError(suite.T(), err)

	assert.NoError(suite.T(), svc.ExpireOverduePaymentRequests(ctx))

	refreshed, err := svc.FindPaymentRequest(ctx, suite.userId, overdue.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.PaymentStatusExpired, refreshed.Status)

	refreshed, err = svc.FindPaymentRequest(ctx, suite.userId, notDue.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.PaymentStatusPending, refreshed.Status)

	refreshed, err = svc.FindPaymentRequest(ctx, suite.userId, settled.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.PaymentStatusPaid, refreshed.Status)
}

func (suite *ExpiryTestSuite) TestExpiredRequestStaysExpired() {
	ctx := context.Background()
	svc := suite.Service
	overdueDate := time.Now().Add(-time.Hour)

	paymentRequest, err := svc.CreatePaymentRequest(ctx, suite.userId, decimal.RequireFromString("5.00"), "Twice swept", "", &overdueDate)
	assert.NoError(suite.T(), err)

	assert.NoError(suite.T(), svc.ExpireOverduePaymentRequests(ctx))
	assert.NoError(suite.T(), svc.ExpireOverduePaymentRequests(ctx))

	refreshed, err := svc.FindPaymentRequest(ctx, suite.userId, paymentRequest.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.PaymentStatusExpired, refreshed.Status)
}

func (suite *ExpiryTestSuite) TestStaleHandleCannotOverrideExpiry() {
	ctx := context.Background()
	svc := suite.Service
	overdueDate := time.Now().Add(-time.Hour)

	paymentRequest, err := svc.CreatePaymentRequest(ctx, suite.userId, decimal.RequireFromString("8.00"), "Raced by the sweep", "", &overdueDate)
	assert.NoError(suite.T(), err)
	stale := *paymentRequest

	assert.NoError(suite.T(), svc.ExpireOverduePaymentRequests(ctx))

	// the stale handle still believes the request is pending; settling it
	// must fail instead of reporting a payment that never happened
	_, err = svc.TransitionPaymentRequest(ctx, &stale, common.PaymentStatusPaid)
	var transitionErr *service.InvalidTransitionError
	assert.Error(suite.T(), err)
	assert.True(suite.T(), errors.As(err, &transitionErr))
	assert.Equal(suite.T(), common.PaymentStatusExpired, transitionErr.From)
	assert.Equal(suite.T(), common.PaymentStatusPending, stale.Status)
	assert.True(suite.T(), stale.SettledAt.IsZero())

	refreshed, err := svc.FindPaymentRequest(ctx, suite.userId, paymentRequest.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.PaymentStatusExpired, refreshed.Status)
	assert.True(suite.T(), refreshed.SettledAt.IsZero())
}

func TestExpiryTestSuite(t *testing.T) {
	suite.Run(t, new(ExpiryTestSuite))
}
