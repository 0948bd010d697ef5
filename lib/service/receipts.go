package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rtphub/rtphub.go/db/models"
)

func (svc *RtphubService) ReceiptsFor(ctx context.Context, userId int64) ([]models.Receipt, error) {
	receipts := []models.Receipt{}

	err := svc.DB.NewSelect().
		Model(&receipts).
		Where("user_id = ?", userId).
		OrderExpr("transaction_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

func (svc *RtphubService) FindReceipt(ctx context.Context, userId int64, id int64) (*models.Receipt, error) {
	var receipt models.Receipt

	err := svc.DB.NewSelect().Model(&receipt).Where("user_id = ? AND id = ?", userId, id).Limit(1).Scan(ctx)
	if err != nil {
		return &receipt, err
	}
	return &receipt, nil
}

// CreateReceiptForPayment records the receipt for a freshly settled payment
// request. The receipt copies the amount but carries no reference to the
// request: receipts stay independently fetchable by owner.
func (svc *RtphubService) CreateReceiptForPayment(ctx context.Context, paymentRequest *models.PaymentRequest, paymentMethod string) (*models.Receipt, error) {
	receipt := &models.Receipt{
		UserID:          paymentRequest.UserID,
		ReceiptNumber:   fmt.Sprintf("RCPT-%s", strings.ToUpper(uuid.NewString()[:8])),
		Amount:          paymentRequest.Amount,
		TransactionDate: paymentRequest.SettledAt.Time,
		PaymentMethod:   paymentMethod,
		Notes:           paymentRequest.Description,
	}

	_, err := svc.DB.NewInsert().Model(receipt).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// FormatReceiptText renders the downloadable plain-text receipt. Pure: the
// same receipt always produces the same document, writing it anywhere is the
// caller's business.
func FormatReceiptText(receipt *models.Receipt) string {
	var b strings.Builder

	b.WriteString("RTP PORTAL - OFFICIAL RECEIPT\n")
	b.WriteString("================================\n\n")
	fmt.Fprintf(&b, "Receipt #: %s\n", receipt.ReceiptNumber)
	fmt.Fprintf(&b, "Date: %s\n", receipt.TransactionDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Amount: $%s\n", receipt.Amount.StringFixed(2))
	method := receipt.PaymentMethod
	if method == "" {
		method = "N/A"
	}
	fmt.Fprintf(&b, "Payment Method: %s\n", method)
	if receipt.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", receipt.Notes)
	}
	b.WriteString("\n================================\n")
	b.WriteString("Thank you for your payment!")

	return b.String()
}

// FormatReceiptFileName follows the portal's download convention.
func FormatReceiptFileName(receipt *models.Receipt) string {
	return fmt.Sprintf("receipt-%s.txt", receipt.ReceiptNumber)
}
