package service

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rtphub/rtphub.go/common"
)

// StartExpiryRoutine periodically expires pending payment requests whose due
// date has passed. Expiry goes through the same state machine as every other
// transition, so a request settled between scan and update is left alone.
func (svc *RtphubService) StartExpiryRoutine(ctx context.Context) error {
	interval := time.Duration(svc.Config.ExpiryCheckIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := svc.ExpireOverduePaymentRequests(ctx); err != nil {
				svc.Logger.Errorf("Error expiring overdue payment requests: %v", err)
				sentry.CaptureException(err)
			}
		}
	}
}

func (svc *RtphubService) ExpireOverduePaymentRequests(ctx context.Context) error {
	overdue, err := svc.PendingOverduePaymentRequests(ctx, time.Now())
	if err != nil {
		return err
	}
	for i := range overdue {
		paymentRequest := overdue[i]
		if _, err := svc.TransitionPaymentRequest(ctx, &paymentRequest, common.PaymentStatusExpired); err != nil {
			svc.Logger.Errorf("Error expiring payment request: id:%v error: %v", paymentRequest.ID, err)
			continue
		}
		svc.Logger.Infof("Expired payment request: id:%v user_id:%v", paymentRequest.ID, paymentRequest.UserID)
	}
	return nil
}
