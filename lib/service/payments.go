package service

import (
	"context"
	"strings"
	"time"

	"github.com/rtphub/rtphub.go/common"
	"github.com/rtphub/rtphub.go/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// CreatePaymentRequest is the sole creation path for payment requests: every
// new request starts out pending, the caller never sets a status.
func (svc *RtphubService) CreatePaymentRequest(ctx context.Context, userId int64, amount decimal.Decimal, description, invoiceNumber string, dueDate *time.Time) (*models.PaymentRequest, error) {
	if !amount.IsPositive() {
		return nil, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if strings.TrimSpace(description) == "" {
		return nil, &ValidationError{Field: "description", Reason: "must not be empty"}
	}

	paymentRequest := &models.PaymentRequest{
		UserID:        userId,
		Amount:        amount,
		Description:   description,
		InvoiceNumber: invoiceNumber,
		Status:        common.PaymentStatusPending,
	}
	if dueDate != nil {
		paymentRequest.DueDate = bun.NullTime{Time: *dueDate}
	}

	_, err := svc.DB.NewInsert().Model(paymentRequest).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return paymentRequest, nil
}

func (svc *RtphubService) PaymentRequestsFor(ctx context.Context, userId int64, limit int) ([]models.PaymentRequest, error) {
	paymentRequests := []models.PaymentRequest{}

	if limit <= 0 {
		limit = svc.Config.DefaultListLimit
	}
	err := svc.DB.NewSelect().
		Model(&paymentRequests).
		Where("user_id = ?", userId).
		OrderExpr("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return paymentRequests, nil
}

func (svc *RtphubService) FindPaymentRequest(ctx context.Context, userId int64, id int64) (*models.PaymentRequest, error) {
	var paymentRequest models.PaymentRequest

	err := svc.DB.NewSelect().Model(&paymentRequest).Where("user_id = ? AND id = ?", userId, id).Limit(1).Scan(ctx)
	if err != nil {
		return &paymentRequest, err
	}
	return &paymentRequest, nil
}

// TransitionPaymentRequest applies an externally driven status change after
// validating it against the state machine. Re-applying the current terminal
// status is a no-op success so the settlement feed can deliver
// at-least-once.
func (svc *RtphubService) TransitionPaymentRequest(ctx context.Context, paymentRequest *models.PaymentRequest, newStatus string) (*models.PaymentRequest, error) {
	if !models.IsValidPaymentStatus(newStatus) {
		return nil, &ValidationError{Field: "status", Reason: "unknown status " + newStatus}
	}
	if paymentRequest.Status == newStatus && models.IsTerminalPaymentStatus(newStatus) {
		return paymentRequest, nil
	}
	if !models.CanTransitionPayment(paymentRequest.Status, newStatus) {
		return nil, &InvalidTransitionError{From: paymentRequest.Status, To: newStatus}
	}

	previousStatus := paymentRequest.Status
	previousSettledAt := paymentRequest.SettledAt
	paymentRequest.Status = newStatus
	if newStatus == common.PaymentStatusPaid {
		paymentRequest.SettledAt = bun.NullTime{Time: time.Now()}
	}

	// the status guard keeps a concurrent transition from being overwritten
	res, err := svc.DB.NewUpdate().
		Model(paymentRequest).
		WherePK().
		Where("status = ?", previousStatus).
		Exec(ctx)
	if err != nil {
		paymentRequest.Status = previousStatus
		paymentRequest.SettledAt = previousSettledAt
		return nil, err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		paymentRequest.Status = previousStatus
		paymentRequest.SettledAt = previousSettledAt
		return nil, err
	}
	if rowsAffected == 0 {
		// the row moved under us, a concurrent transition won the guard
		paymentRequest.Status = previousStatus
		paymentRequest.SettledAt = previousSettledAt
		current, findErr := svc.FindPaymentRequest(ctx, paymentRequest.UserID, paymentRequest.ID)
		if findErr != nil {
			return nil, findErr
		}
		return nil, &InvalidTransitionError{From: current.Status, To: newStatus}
	}
	return paymentRequest, nil
}

// PendingOverduePaymentRequests returns pending requests whose due date has
// passed, across all users. Used by the expiry routine.
func (svc *RtphubService) PendingOverduePaymentRequests(ctx context.Context, now time.Time) ([]models.PaymentRequest, error) {
	paymentRequests := []models.PaymentRequest{}

	err := svc.DB.NewSelect().
		Model(&paymentRequests).
		Where("status = ?", common.PaymentStatusPending).
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return paymentRequests, nil
}
