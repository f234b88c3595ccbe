package entity

import "time"

// CustomerMapping links a local user to the Stripe customer created for them.
type CustomerMapping struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	StripeCustomerID string    `json:"stripeCustomerId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
