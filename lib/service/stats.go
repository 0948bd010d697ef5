package service

import (
	"context"

	"github.com/rtphub/rtphub.go/common"
	"github.com/rtphub/rtphub.go/db/models"
	"github.com/shopspring/decimal"
)

type UserStats struct {
	TotalReceived          decimal.Decimal `json:"total_received"`
	PendingAmount          decimal.Decimal `json:"pending_amount"`
	VerifiedRecipientCount int             `json:"verified_recipient_count"`
}

// CalcUserStats reduces a snapshot of requests and recipients to the
// dashboard figures. Cancelled and expired requests contribute to neither
// sum, that is policy and not an oversight.
func CalcUserStats(paymentRequests []models.PaymentRequest, recipients []models.Recipient) UserStats {
	stats := UserStats{
		TotalReceived: decimal.Zero,
		PendingAmount: decimal.Zero,
	}
	for _, paymentRequest := range paymentRequests {
		switch paymentRequest.Status {
		case common.PaymentStatusPaid:
			stats.TotalReceived = stats.TotalReceived.Add(paymentRequest.Amount)
		case common.PaymentStatusPending:
			stats.PendingAmount = stats.PendingAmount.Add(paymentRequest.Amount)
		}
	}
	for _, recipient := range recipients {
		if recipient.VerificationStatus == common.RecipientStatusVerified {
			stats.VerifiedRecipientCount++
		}
	}
	return stats
}

// UserStatsFor awaits both snapshots before deriving figures: a failed read
// fails the whole call rather than reporting a half-zeroed result. The
// request scan is unbounded on purpose, the sums cover all records.
func (svc *RtphubService) UserStatsFor(ctx context.Context, userId int64) (UserStats, error) {
	paymentRequests := []models.PaymentRequest{}
	err := svc.DB.NewSelect().
		Model(&paymentRequests).
		Where("user_id = ?", userId).
		Scan(ctx)
	if err != nil {
		return UserStats{}, err
	}
	recipients, err := svc.RecipientsFor(ctx, userId)
	if err != nil {
		return UserStats{}, err
	}
	return CalcUserStats(paymentRequests, recipients), nil
}
