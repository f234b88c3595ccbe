package entity

import "time"

// ListingPayment is a mapping row between a listing and a Stripe payment
// intent. OwnerStripeID records the payer: the customer id when one was
// known at payment time, otherwise the payment intent id itself.
type ListingPayment struct {
	ID            int64     `json:"id"`
	OwnerStripeID string    `json:"stripeId"`
	ListingID     int64     `json:"jobId"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
}
