package model

import "time"

// ListingPayment links a listing to a Stripe payment intent. Rows are
// append-only and carry no uniqueness on either alternate key: repeated
// payment attempts for the same listing produce multiple rows, and the
// payout aggregation deduplicates by transaction id instead.
type ListingPayment struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerStripeID string    `gorm:"column:owner_stripe_id;not null;size:100;index" json:"owner_stripe_id"`
	ListingID     int64     `gorm:"column:listing_id;index" json:"listing_id"`
	TransactionID string    `gorm:"column:transaction_id;not null;size:100;index" json:"transaction_id"`
	CreatedAt     time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt     time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (ListingPayment) TableName() string {
	return "listing_payments"
}
