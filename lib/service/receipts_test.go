package service

import (
	"strings"
	"testing"
	"time"

	"github.com/rtphub/rtphub.go/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatReceiptText(t *testing.T) {
	receipt := &models.Receipt{
		ReceiptNumber:   "R-1",
		Amount:          decimal.RequireFromString("42.5"),
		TransactionDate: time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC),
		PaymentMethod:   "bank_transfer",
	}

	text := FormatReceiptText(receipt)

	assert.True(t, strings.HasPrefix(text, "RTP PORTAL - OFFICIAL RECEIPT\n"))
	assert.Contains(t, text, "Receipt #: R-1\n")
	assert.Contains(t, text, "Date: 2024-01-16\n")
	assert.Contains(t, text, "Amount: $42.50\n")
	assert.Contains(t, text, "Payment Method: bank_transfer\n")
	assert.True(t, strings.HasSuffix(text, "Thank you for your payment!"))
}

func TestFormatReceiptTextMissingPaymentMethod(t *testing.T) {
	receipt := &models.Receipt{
		ReceiptNumber:   "R-2",
		Amount:          decimal.RequireFromString("10"),
		TransactionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	text := FormatReceiptText(receipt)

	assert.Contains(t, text, "Payment Method: N/A\n")
	assert.NotContains(t, text, "Notes:")
}

func TestFormatReceiptTextWithNotes(t *testing.T) {
	receipt := &models.Receipt{
		ReceiptNumber:   "R-3",
		Amount:          decimal.RequireFromString("99.99"),
		TransactionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Notes:           "March invoice",
	}

	text := FormatReceiptText(receipt)

	assert.Contains(t, text, "\nNotes: March invoice\n")
}

func TestFormatReceiptTextIsDeterministic(t *testing.T) {
	receipt := &models.Receipt{
		ReceiptNumber:   "R-4",
		Amount:          decimal.RequireFromString("1.23"),
		TransactionDate: time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, FormatReceiptText(receipt), FormatReceiptText(receipt))
}

func TestFormatReceiptFileName(t *testing.T) {
	receipt := &models.Receipt{ReceiptNumber: "RCPT-1A2B3C4D"}

	assert.Equal(t, "receipt-RCPT-1A2B3C4D.txt", FormatReceiptFileName(receipt))
}
