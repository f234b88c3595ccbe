package model

import "time"

// CustomerMapping maps local user IDs to Stripe customer IDs.
// user_id carries the hard uniqueness constraint; a Stripe customer id is
// expected to appear at most once but that is not enforced here.
type CustomerMapping struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           int64     `gorm:"column:user_id;unique;not null;index" json:"user_id"`
	StripeCustomerID string    `gorm:"column:stripe_customer_id;not null;size:100;index" json:"stripe_customer_id"`
	CreatedAt        time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (CustomerMapping) TableName() string {
	return "customer_mappings"
}
