package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// User : Portal account plus the read-only profile fields rendered on the
// dashboard. Funds and the verification flag are maintained externally.
type User struct {
	ID             int64           `json:"id" bun:",pk,autoincrement"`
	Login          string          `json:"login" bun:",unique,notnull"`
	Password       string          `json:"-" bun:",notnull"`
	FullName       string          `json:"full_name" bun:",nullzero"`
	FundsAvailable decimal.Decimal `json:"funds_available" bun:"funds_available,notnull,type:numeric(12,2),default:0"`
	IsVerified     bool            `json:"is_verified" bun:",default:false"`
	CreatedAt      time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt      bun.NullTime    `json:"updated_at"`
}

func (u *User) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		u.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*User)(nil)
