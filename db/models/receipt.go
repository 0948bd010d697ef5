package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt : immutable record of a settled payment. Append-only; receipts
// are fetched by owner only, there is deliberately no payment foreign key.
type Receipt struct {
	ID              int64           `json:"id" bun:",pk,autoincrement"`
	UserID          int64           `json:"user_id" bun:",notnull"`
	User            *User           `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	ReceiptNumber   string          `json:"receipt_number" bun:",unique,notnull"`
	Amount          decimal.Decimal `json:"amount" bun:",notnull,type:numeric(12,2)"`
	TransactionDate time.Time       `json:"transaction_date" bun:",notnull"`
	PaymentMethod   string          `json:"payment_method,omitempty" bun:",nullzero"`
	Notes           string          `json:"notes,omitempty" bun:",nullzero"`
	CreatedAt       time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
