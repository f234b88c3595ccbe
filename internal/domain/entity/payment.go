package entity

// Response shapes returned by the orchestration layer. Field names mirror
// what the frontend consumes, hence the camelCase JSON keys.

type CreatedCustomer struct {
	CustomerID string `json:"customerId"`
	Email      string `json:"email"`
}

type CustomerSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type SubscriptionSummary struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	PriceID           string `json:"priceId,omitempty"`
	CancelAtPeriodEnd bool   `json:"cancelAtPeriodEnd"`
	CurrentPeriodEnd  int64  `json:"currentPeriodEnd"`
}

type CustomerInfo struct {
	Customer           CustomerSummary      `json:"customer"`
	Email              string               `json:"email"`
	ActiveSubscription *SubscriptionSummary `json:"activeSubscription"`
	ActivePriceID      string               `json:"activePriceId,omitempty"`
}

type SubscriptionResult struct {
	SubscriptionID string `json:"subscriptionId"`
	ClientSecret   string `json:"clientSecret,omitempty"`
}

type CancelSubscriptionResult struct {
	SubscriptionID    string `json:"subscriptionId"`
	Status            string `json:"status"`
	CancelAtPeriodEnd bool   `json:"cancelAtPeriodEnd"`
	CurrentPeriodEnd  int64  `json:"currentPeriodEnd"`
	CanceledAt        *int64 `json:"canceledAt"`
}

type PaymentIntentResult struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type JobPaymentResult struct {
	PaymentID    string `json:"paymentId"`
	ClientSecret string `json:"clientSecret"`
}

type RefundResult struct {
	RefundID string `json:"refundId"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
}

// PaymentDetails is the single-payment lookup response. Mapping is the
// first matching local row, nil when none was recorded.
type PaymentDetails struct {
	PaymentID  string          `json:"paymentId"`
	Status     string          `json:"status"`
	Amount     int64           `json:"amount"`
	Currency   string          `json:"currency"`
	ListingID  string          `json:"jobId,omitempty"`
	GuardianID string          `json:"guardianId,omitempty"`
	Captured   bool            `json:"captured"`
	Mapping    *ListingPayment `json:"dbMapping"`
}

// ReleaseResult acknowledges a simulated fund release. No money moves:
// production use requires a Stripe Connect transfer to a connected account.
type ReleaseResult struct {
	Status        string `json:"status"`
	TransferID    string `json:"transferId"`
	GuardianEmail string `json:"guardianEmail"`
	Amount        int64  `json:"amount"`
	Message       string `json:"message"`
	Note          string `json:"note"`
}
