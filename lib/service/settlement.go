package service

import (
	"context"

	"github.com/rtphub/rtphub.go/common"
)

// SettlementEvent is the message shape delivered by whatever external
// process settles, withdraws or expires a payment request.
type SettlementEvent struct {
	UserID           int64  `json:"user_id"`
	PaymentRequestID int64  `json:"payment_request_id"`
	Status           string `json:"status"`
	PaymentMethod    string `json:"payment_method,omitempty"`
}

// HandleSettlementEvent validates an externally decided outcome against the
// state machine and records a receipt when a request settles. Validation and
// transition errors mean the event itself is bad; callers decide whether
// that is a 4xx or a dropped message.
func (svc *RtphubService) HandleSettlementEvent(ctx context.Context, event SettlementEvent) error {
	paymentRequest, err := svc.FindPaymentRequest(ctx, event.UserID, event.PaymentRequestID)
	if err != nil {
		return err
	}

	wasPending := paymentRequest.Status == common.PaymentStatusPending
	updated, err := svc.TransitionPaymentRequest(ctx, paymentRequest, event.Status)
	if err != nil {
		return err
	}

	if wasPending && updated.Status == common.PaymentStatusPaid {
		receipt, err := svc.CreateReceiptForPayment(ctx, updated, event.PaymentMethod)
		if err != nil {
			return err
		}
		svc.Logger.Infof("Created receipt: receipt_number:%s user_id:%v", receipt.ReceiptNumber, receipt.UserID)
	}
	return nil
}
