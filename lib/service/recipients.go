package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rtphub/rtphub.go/common"
	"github.com/rtphub/rtphub.go/db/models"
	"github.com/uptrace/bun"
)

var recipientValidator = validator.New()

// AddRecipient stores a payee on the owner's trust list. Being added by the
// owner counts as attestation, so the record is verified immediately; the
// pending and rejected states exist for an external review process that the
// portal does not run.
func (svc *RtphubService) AddRecipient(ctx context.Context, userId int64, name, email, phone string) (*models.Recipient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(email) == "" {
		return nil, &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if err := recipientValidator.Var(email, "email"); err != nil {
		return nil, &ValidationError{Field: "email", Reason: "not a valid email address"}
	}

	recipient := &models.Recipient{
		UserID:             userId,
		Name:               name,
		Email:              email,
		Phone:              phone,
		VerificationStatus: common.RecipientStatusVerified,
		VerifiedAt:         bun.NullTime{Time: time.Now()},
	}

	_, err := svc.DB.NewInsert().Model(recipient).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return recipient, nil
}

func (svc *RtphubService) RecipientsFor(ctx context.Context, userId int64) ([]models.Recipient, error) {
	recipients := []models.Recipient{}

	err := svc.DB.NewSelect().
		Model(&recipients).
		Where("user_id = ?", userId).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return recipients, nil
}
