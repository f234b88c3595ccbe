package stripe

import (
	"context"

	"github.com/guardlink/payment-service/internal/domain/gateway"
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"
)

// Gateway implements gateway.PaymentGateway on top of the stripe-go client.
// The API key is injected through the constructor instead of the package
// global so multiple instances (and tests) can coexist.
type Gateway struct {
	api    *client.API
	logger *zap.Logger
}

func NewGateway(secretKey string, logger *zap.Logger) *Gateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Gateway{
		api:    api,
		logger: logger,
	}
}

func (g *Gateway) CreateCustomer(ctx context.Context, email string) (*gateway.Customer, error) {
	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(email),
	}
	cust, err := g.api.Customers.New(params)
	if err != nil {
		return nil, err
	}
	return &gateway.Customer{ID: cust.ID, Email: cust.Email}, nil
}

func (g *Gateway) GetCustomer(ctx context.Context, customerID string) (*gateway.Customer, error) {
	params := &stripe.CustomerParams{Params: stripe.Params{Context: ctx}}
	cust, err := g.api.Customers.Get(customerID, params)
	if err != nil {
		return nil, err
	}
	return &gateway.Customer{ID: cust.ID, Email: cust.Email}, nil
}

func (g *Gateway) ListPrices(ctx context.Context) ([]*gateway.Price, error) {
	params := &stripe.PriceListParams{
		ListParams: stripe.ListParams{Context: ctx},
		Active:     stripe.Bool(true),
	}
	params.AddExpand("data.product")

	var prices []*gateway.Price
	iter := g.api.Prices.List(params)
	for iter.Next() {
		p := iter.Price()
		price := &gateway.Price{
			ID:         p.ID,
			Nickname:   p.Nickname,
			Currency:   string(p.Currency),
			UnitAmount: p.UnitAmount,
		}
		if p.Product != nil {
			price.ProductID = p.Product.ID
			price.ProductName = p.Product.Name
		}
		if p.Recurring != nil {
			price.Interval = string(p.Recurring.Interval)
			price.IntervalCount = p.Recurring.IntervalCount
		}
		prices = append(prices, price)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return prices, nil
}

func (g *Gateway) ListSubscriptions(ctx context.Context, customerID string, limit int) ([]*gateway.Subscription, error) {
	params := &stripe.SubscriptionListParams{
		ListParams: stripe.ListParams{Context: ctx},
		Customer:   stripe.String(customerID),
		Status:     stripe.String("all"),
	}
	if limit > 0 {
		params.Limit = stripe.Int64(int64(limit))
	}
	params.AddExpand("data.items.data.price")

	var subs []*gateway.Subscription
	iter := g.api.Subscriptions.List(params)
	for iter.Next() {
		subs = append(subs, convertSubscription(iter.Subscription()))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

func (g *Gateway) CreateSubscription(ctx context.Context, in gateway.CreateSubscriptionInput) (*gateway.Subscription, error) {
	params := &stripe.SubscriptionParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(in.CustomerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(in.PriceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
		PaymentSettings: &stripe.SubscriptionPaymentSettingsParams{
			SaveDefaultPaymentMethod: stripe.String("on_subscription"),
			PaymentMethodTypes:       stripe.StringSlice([]string{"card"}),
		},
		Expand: stripe.StringSlice([]string{"latest_invoice.payment_intent"}),
	}
	sub, err := g.api.Subscriptions.New(params)
	if err != nil {
		return nil, err
	}
	converted := convertSubscription(sub)
	if sub.LatestInvoice != nil {
		converted.LatestInvoice = convertInvoice(sub.LatestInvoice)
	} else {
		g.logger.Warn("subscription created without latest invoice",
			zap.String("subscription_id", sub.ID))
	}
	return converted, nil
}

func (g *Gateway) CancelSubscription(ctx context.Context, subscriptionID string, atPeriodEnd bool) (*gateway.Subscription, error) {
	if atPeriodEnd {
		params := &stripe.SubscriptionParams{
			Params:            stripe.Params{Context: ctx},
			CancelAtPeriodEnd: stripe.Bool(true),
		}
		sub, err := g.api.Subscriptions.Update(subscriptionID, params)
		if err != nil {
			return nil, err
		}
		return convertSubscription(sub), nil
	}
	params := &stripe.SubscriptionCancelParams{Params: stripe.Params{Context: ctx}}
	sub, err := g.api.Subscriptions.Cancel(subscriptionID, params)
	if err != nil {
		return nil, err
	}
	return convertSubscription(sub), nil
}

func (g *Gateway) CreatePaymentIntent(ctx context.Context, in gateway.CreatePaymentIntentInput) (*gateway.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(in.Amount),
		Currency:           stripe.String(in.Currency),
		CaptureMethod:      stripe.String("automatic"),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	if in.CustomerID != "" {
		params.Customer = stripe.String(in.CustomerID)
	}
	for key, value := range in.Metadata {
		params.AddMetadata(key, value)
	}
	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return convertPaymentIntent(pi), nil
}

func (g *Gateway) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*gateway.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	pi, err := g.api.PaymentIntents.Get(paymentIntentID, params)
	if err != nil {
		return nil, err
	}
	return convertPaymentIntent(pi), nil
}

func (g *Gateway) ListPaymentIntents(ctx context.Context, customerID string, limit int) ([]*gateway.PaymentIntent, error) {
	params := &stripe.PaymentIntentListParams{
		ListParams: stripe.ListParams{Context: ctx},
		Customer:   stripe.String(customerID),
	}
	if limit > 0 {
		params.Limit = stripe.Int64(int64(limit))
	}

	var intents []*gateway.PaymentIntent
	iter := g.api.PaymentIntents.List(params)
	for iter.Next() {
		intents = append(intents, convertPaymentIntent(iter.PaymentIntent()))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return intents, nil
}

func (g *Gateway) CreateRefund(ctx context.Context, paymentIntentID string) (*gateway.Refund, error) {
	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(paymentIntentID),
	}
	refund, err := g.api.Refunds.New(params)
	if err != nil {
		return nil, err
	}
	return &gateway.Refund{
		ID:     refund.ID,
		Status: string(refund.Status),
		Amount: refund.Amount,
	}, nil
}

// HasRefund only needs existence, so a single-item page is enough.
func (g *Gateway) HasRefund(ctx context.Context, paymentIntentID string) (bool, error) {
	params := &stripe.RefundListParams{
		ListParams:    stripe.ListParams{Context: ctx, Limit: stripe.Int64(1)},
		PaymentIntent: stripe.String(paymentIntentID),
	}
	iter := g.api.Refunds.List(params)
	exists := iter.Next()
	if err := iter.Err(); err != nil {
		return false, err
	}
	return exists, nil
}

func (g *Gateway) ListInvoices(ctx context.Context, customerID string, limit int) ([]*gateway.Invoice, error) {
	params := &stripe.InvoiceListParams{
		ListParams: stripe.ListParams{Context: ctx},
		Customer:   stripe.String(customerID),
	}
	if limit > 0 {
		params.Limit = stripe.Int64(int64(limit))
	}
	params.AddExpand("data.payment_intent")

	var invoices []*gateway.Invoice
	iter := g.api.Invoices.List(params)
	for iter.Next() {
		invoices = append(invoices, convertInvoice(iter.Invoice()))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (g *Gateway) ListAccountPayouts(ctx context.Context, limit int) ([]*gateway.AccountPayout, error) {
	params := &stripe.PayoutListParams{
		ListParams: stripe.ListParams{Context: ctx},
	}
	if limit > 0 {
		params.Limit = stripe.Int64(int64(limit))
	}

	var payouts []*gateway.AccountPayout
	iter := g.api.Payouts.List(params)
	for iter.Next() {
		p := iter.Payout()
		payouts = append(payouts, &gateway.AccountPayout{
			ID:          p.ID,
			Amount:      p.Amount,
			Currency:    string(p.Currency),
			Status:      string(p.Status),
			ArrivalDate: p.ArrivalDate,
			Created:     p.Created,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return payouts, nil
}

func (g *Gateway) ListTransfers(ctx context.Context, limit int) ([]*gateway.Transfer, error) {
	params := &stripe.TransferListParams{
		ListParams: stripe.ListParams{Context: ctx},
	}
	if limit > 0 {
		params.Limit = stripe.Int64(int64(limit))
	}

	var transfers []*gateway.Transfer
	iter := g.api.Transfers.List(params)
	for iter.Next() {
		t := iter.Transfer()
		transfers = append(transfers, &gateway.Transfer{
			ID:       t.ID,
			Amount:   t.Amount,
			Currency: string(t.Currency),
			Created:  t.Created,
			Reversed: t.Reversed,
			Metadata: t.Metadata,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

func convertSubscription(sub *stripe.Subscription) *gateway.Subscription {
	converted := &gateway.Subscription{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		CurrentPeriodEnd:  sub.CurrentPeriodEnd,
		CanceledAt:        sub.CanceledAt,
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		converted.PriceID = sub.Items.Data[0].Price.ID
	}
	return converted
}

func convertPaymentIntent(pi *stripe.PaymentIntent) *gateway.PaymentIntent {
	converted := &gateway.PaymentIntent{
		ID:             pi.ID,
		Status:         string(pi.Status),
		Amount:         pi.Amount,
		AmountReceived: pi.AmountReceived,
		Currency:       string(pi.Currency),
		ClientSecret:   pi.ClientSecret,
		Created:        pi.Created,
		Description:    pi.Description,
		Metadata:       pi.Metadata,
	}
	if pi.Customer != nil {
		converted.CustomerID = pi.Customer.ID
	}
	return converted
}

// convertInvoice distinguishes an expanded payment intent from a bare
// reference: an unexpanded intent comes back with only its id set.
func convertInvoice(inv *stripe.Invoice) *gateway.Invoice {
	converted := &gateway.Invoice{
		ID:         inv.ID,
		AmountDue:  inv.AmountDue,
		AmountPaid: inv.AmountPaid,
		Currency:   string(inv.Currency),
		Status:     string(inv.Status),
		Created:    inv.Created,
	}
	if inv.Subscription != nil {
		converted.SubscriptionID = inv.Subscription.ID
	}
	if inv.PaymentIntent != nil {
		if inv.PaymentIntent.Status != "" {
			converted.PaymentIntent = convertPaymentIntent(inv.PaymentIntent)
		}
		converted.PaymentIntentID = inv.PaymentIntent.ID
	}
	return converted
}
