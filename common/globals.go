package common

const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusExpired   = "expired"

	RecipientStatusPending  = "pending"
	RecipientStatusVerified = "verified"
	RecipientStatusRejected = "rejected"
)
