package gateway

import "context"

// PaymentGateway wraps the subset of Stripe operations this service
// depends on behind explicit request/response types. Implementations are
// injected so tests can substitute the remote processor.
type PaymentGateway interface {
	CreateCustomer(ctx context.Context, email string) (*Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)

	ListPrices(ctx context.Context) ([]*Price, error)

	// ListSubscriptions returns the customer's subscriptions across all
	// statuses, price expanded.
	ListSubscriptions(ctx context.Context, customerID string, limit int) ([]*Subscription, error)
	// CreateSubscription starts an incomplete subscription and expands the
	// latest invoice's payment intent so the client secret is available.
	CreateSubscription(ctx context.Context, in CreateSubscriptionInput) (*Subscription, error)
	CancelSubscription(ctx context.Context, subscriptionID string, atPeriodEnd bool) (*Subscription, error)

	CreatePaymentIntent(ctx context.Context, in CreatePaymentIntentInput) (*PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)
	ListPaymentIntents(ctx context.Context, customerID string, limit int) ([]*PaymentIntent, error)

	CreateRefund(ctx context.Context, paymentIntentID string) (*Refund, error)
	// HasRefund reports whether at least one refund exists for the intent.
	HasRefund(ctx context.Context, paymentIntentID string) (bool, error)

	// ListInvoices returns the customer's invoices with payment intents
	// expanded where Stripe allows it.
	ListInvoices(ctx context.Context, customerID string, limit int) ([]*Invoice, error)

	ListAccountPayouts(ctx context.Context, limit int) ([]*AccountPayout, error)
	ListTransfers(ctx context.Context, limit int) ([]*Transfer, error)
}

type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Price struct {
	ID            string `json:"id"`
	Nickname      string `json:"nickname,omitempty"`
	Currency      string `json:"currency"`
	UnitAmount    int64  `json:"unitAmount"`
	ProductID     string `json:"productId,omitempty"`
	ProductName   string `json:"productName,omitempty"`
	Interval      string `json:"interval,omitempty"`
	IntervalCount int64  `json:"intervalCount,omitempty"`
}

type Subscription struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	PriceID           string `json:"priceId,omitempty"`
	CancelAtPeriodEnd bool   `json:"cancelAtPeriodEnd"`
	CurrentPeriodEnd  int64  `json:"currentPeriodEnd"`
	CanceledAt        int64  `json:"canceledAt,omitempty"`
	// LatestInvoice is only populated by CreateSubscription.
	LatestInvoice *Invoice `json:"latestInvoice,omitempty"`
}

type PaymentIntent struct {
	ID             string            `json:"id"`
	Status         string            `json:"status"`
	Amount         int64             `json:"amount"`
	AmountReceived int64             `json:"amountReceived"`
	Currency       string            `json:"currency"`
	ClientSecret   string            `json:"clientSecret,omitempty"`
	CustomerID     string            `json:"customerId,omitempty"`
	Created        int64             `json:"created"`
	Description    string            `json:"description,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// Invoice carries either the expanded payment intent or, when Stripe
// returned a plain reference, just its id. Both may be empty for invoices
// without an attached intent.
type Invoice struct {
	ID              string         `json:"id"`
	SubscriptionID  string         `json:"subscriptionId,omitempty"`
	AmountDue       int64          `json:"amountDue"`
	AmountPaid      int64          `json:"amountPaid"`
	Currency        string         `json:"currency"`
	Status          string         `json:"status"`
	Created         int64          `json:"created"`
	PaymentIntent   *PaymentIntent `json:"paymentIntent,omitempty"`
	PaymentIntentID string         `json:"paymentIntentId,omitempty"`
}

type Refund struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}

type AccountPayout struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	ArrivalDate int64  `json:"arrivalDate"`
	Created     int64  `json:"created"`
}

type Transfer struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Created  int64             `json:"created"`
	Reversed bool              `json:"reversed"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type CreateSubscriptionInput struct {
	CustomerID string
	PriceID    string
}

type CreatePaymentIntentInput struct {
	Amount     int64
	Currency   string
	CustomerID string
	Metadata   map[string]string
}
