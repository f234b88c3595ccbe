package usecase

import (
	"context"
	"fmt"

	"github.com/guardlink/payment-service/internal/domain/entity"
	"github.com/guardlink/payment-service/internal/domain/gateway"
	"github.com/guardlink/payment-service/internal/domain/repository"
	"go.uber.org/zap"
)

// CustomerService handles Stripe customer lifecycle and the local
// user-to-customer mapping.
type CustomerService struct {
	customerMappingRepo repository.CustomerMappingRepository
	gateway             gateway.PaymentGateway
	logger              *zap.Logger
}

func NewCustomerService(
	customerMappingRepo repository.CustomerMappingRepository,
	gw gateway.PaymentGateway,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerMappingRepo: customerMappingRepo,
		gateway:             gw,
		logger:              logger,
	}
}

// Subscription statuses treated as "active-like" for the customer summary.
var activeLikeStatuses = map[string]struct{}{
	"active":     {},
	"trialing":   {},
	"past_due":   {},
	"incomplete": {},
}

// CreateCustomer creates the Stripe customer. When a user id is supplied the
// mapping is upserted as well; a mapping failure is logged but does not fail
// the operation since the customer already exists on Stripe.
func (s *CustomerService) CreateCustomer(ctx context.Context, email string, userID int64) (*entity.CreatedCustomer, error) {
	cust, err := s.gateway.CreateCustomer(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	if userID != 0 {
		if _, err := s.customerMappingRepo.Upsert(ctx, userID, cust.ID); err != nil {
			s.logger.Error("failed to persist customer mapping",
				zap.Int64("user_id", userID),
				zap.String("customer_id", cust.ID),
				zap.Error(err))
		}
	}

	return &entity.CreatedCustomer{CustomerID: cust.ID, Email: cust.Email}, nil
}

// GetCustomerInfo returns the customer and a summary of their first
// active-like subscription, if any.
func (s *CustomerService) GetCustomerInfo(ctx context.Context, customerID string) (*entity.CustomerInfo, error) {
	cust, err := s.gateway.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve customer: %w", err)
	}

	subs, err := s.gateway.ListSubscriptions(ctx, customerID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	info := &entity.CustomerInfo{
		Customer: entity.CustomerSummary{ID: cust.ID, Email: cust.Email},
		Email:    cust.Email,
	}
	for _, sub := range subs {
		if _, ok := activeLikeStatuses[sub.Status]; !ok {
			continue
		}
		info.ActiveSubscription = &entity.SubscriptionSummary{
			ID:                sub.ID,
			Status:            sub.Status,
			PriceID:           sub.PriceID,
			CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
			CurrentPeriodEnd:  sub.CurrentPeriodEnd,
		}
		info.ActivePriceID = sub.PriceID
		break
	}

	return info, nil
}
