package models

import (
	"context"
	"time"

	"github.com/rtphub/rtphub.go/common"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// PaymentRequest : money requested by the portal user from a payer.
// Requests are never deleted, only transitioned along the status machine
// below.
type PaymentRequest struct {
	ID            int64           `json:"id" bun:",pk,autoincrement"`
	UserID        int64           `json:"user_id" bun:",notnull"`
	User          *User           `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Amount        decimal.Decimal `json:"amount" bun:",notnull,type:numeric(12,2)"`
	Description   string          `json:"description" bun:",notnull"`
	InvoiceNumber string          `json:"invoice_number,omitempty" bun:",nullzero"`
	DueDate       bun.NullTime    `json:"due_date"`
	Status        string          `json:"status" bun:",notnull,default:'pending'"`
	CreatedAt     time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     bun.NullTime    `json:"updated_at"`
	SettledAt     bun.NullTime    `json:"settled_at"`
}

func (p *PaymentRequest) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		p.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*PaymentRequest)(nil)

// paymentTransitions is the closed status machine: pending is the only
// non-terminal state, the other three are absorbing.
var paymentTransitions = map[string][]string{
	common.PaymentStatusPending: {
		common.PaymentStatusPaid,
		common.PaymentStatusCancelled,
		common.PaymentStatusExpired,
	},
	common.PaymentStatusPaid:      {},
	common.PaymentStatusCancelled: {},
	common.PaymentStatusExpired:   {},
}

// IsValidPaymentStatus reports whether s belongs to the status vocabulary.
func IsValidPaymentStatus(s string) bool {
	_, ok := paymentTransitions[s]
	return ok
}

// IsTerminalPaymentStatus reports whether s has no outgoing transitions.
func IsTerminalPaymentStatus(s string) bool {
	next, ok := paymentTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionPayment reports whether from -> to is in the transition table.
func CanTransitionPayment(from, to string) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
