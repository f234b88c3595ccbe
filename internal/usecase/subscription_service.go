package usecase

import (
	"context"
	"fmt"

	"github.com/guardlink/payment-service/internal/domain/entity"
	"github.com/guardlink/payment-service/internal/domain/gateway"
	"go.uber.org/zap"
)

// SubscriptionService handles price listing and subscription lifecycle.
type SubscriptionService struct {
	gateway gateway.PaymentGateway
	logger  *zap.Logger
}

func NewSubscriptionService(gw gateway.PaymentGateway, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		gateway: gw,
		logger:  logger,
	}
}

func (s *SubscriptionService) ListPrices(ctx context.Context) ([]*gateway.Price, error) {
	prices, err := s.gateway.ListPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	return prices, nil
}

// CreateSubscription starts an incomplete subscription. The client secret
// comes from the latest invoice's payment intent when Stripe expanded it;
// callers confirm the payment client-side.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, customerID, priceID string) (*entity.SubscriptionResult, error) {
	sub, err := s.gateway.CreateSubscription(ctx, gateway.CreateSubscriptionInput{
		CustomerID: customerID,
		PriceID:    priceID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	result := &entity.SubscriptionResult{SubscriptionID: sub.ID}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		result.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}

	s.logger.Info("subscription created",
		zap.String("subscription_id", sub.ID),
		zap.String("customer_id", customerID),
		zap.String("price_id", priceID))

	return result, nil
}

func (s *SubscriptionService) CancelSubscription(ctx context.Context, subscriptionID string, atPeriodEnd bool) (*entity.CancelSubscriptionResult, error) {
	sub, err := s.gateway.CancelSubscription(ctx, subscriptionID, atPeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel subscription: %w", err)
	}

	result := &entity.CancelSubscriptionResult{
		SubscriptionID:    sub.ID,
		Status:            sub.Status,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		CurrentPeriodEnd:  sub.CurrentPeriodEnd,
	}
	if sub.CanceledAt != 0 {
		canceledAt := sub.CanceledAt
		result.CanceledAt = &canceledAt
	}

	s.logger.Info("subscription canceled",
		zap.String("subscription_id", sub.ID),
		zap.Bool("at_period_end", atPeriodEnd))

	return result, nil
}
