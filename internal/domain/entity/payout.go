package entity

import "time"

// Payment statuses this service cares about. Anything else is passed
// through as reported by Stripe.
const (
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusUnknown   = "unknown"
)

// Payout is the unified view over a payment intent, whether it came from a
// direct job payment or from a subscription invoice. Amount is nil when the
// underlying intent could not be retrieved.
type Payout struct {
	PaymentID string     `json:"paymentId"`
	ListingID int64      `json:"jobId,omitempty"`
	Amount    *int64     `json:"amount"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	Created   *time.Time `json:"created,omitempty"`
}

// PayoutList is the aggregation result. Note collects non-fatal warnings
// gathered while building the list (semicolon-joined).
type PayoutList struct {
	Payouts []Payout `json:"payouts"`
	Note    string   `json:"note,omitempty"`
}

// UserPayment is one formatted entry of the user-payments listing.
// ListingID and GuardianID come from intent metadata and stay strings.
type UserPayment struct {
	PaymentID   string     `json:"paymentId"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	Created     *time.Time `json:"created,omitempty"`
	ListingID   string     `json:"jobId,omitempty"`
	GuardianID  string     `json:"guardianId,omitempty"`
	CustomerID  string     `json:"customerId,omitempty"`
	Captured    bool       `json:"captured"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type"`
}

type UserPaymentList struct {
	Payments []UserPayment `json:"payments"`
	Count    int           `json:"count"`
}

// GuardianTransfer is a Stripe transfer tagged with a guardianId.
type GuardianTransfer struct {
	TransferID string            `json:"transferId"`
	Amount     int64             `json:"amount"`
	Currency   string            `json:"currency"`
	Created    time.Time         `json:"created"`
	Reversed   bool              `json:"reversed"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type GuardianTransferList struct {
	GuardianID string             `json:"guardianId"`
	Email      string             `json:"email"`
	Transfers  []GuardianTransfer `json:"transfers"`
	Note       string             `json:"note,omitempty"`
}
