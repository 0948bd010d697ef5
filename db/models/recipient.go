package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Recipient : a payee the user trusts. The status vocabulary supports a
// pending-review workflow but the portal attests recipients on creation,
// so only the verified state is reachable through the service.
type Recipient struct {
	ID                 int64        `json:"id" bun:",pk,autoincrement"`
	UserID             int64        `json:"user_id" bun:",notnull"`
	User               *User        `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Name               string       `json:"name" bun:"recipient_name,notnull"`
	Email              string       `json:"email" bun:"recipient_email,notnull"`
	Phone              string       `json:"phone,omitempty" bun:"recipient_phone,nullzero"`
	VerificationStatus string       `json:"verification_status" bun:",notnull,default:'pending'"`
	CreatedAt          time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	VerifiedAt         bun.NullTime `json:"verified_at"`
}
