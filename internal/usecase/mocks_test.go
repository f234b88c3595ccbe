package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guardlink/payment-service/internal/domain/entity"
	"github.com/guardlink/payment-service/internal/domain/gateway"
)

// MockPaymentGateway is a mock implementation of gateway.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCustomer(ctx context.Context, email string) (*gateway.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Customer), args.Error(1)
}

func (m *MockPaymentGateway) GetCustomer(ctx context.Context, customerID string) (*gateway.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Customer), args.Error(1)
}

func (m *MockPaymentGateway) ListPrices(ctx context.Context) ([]*gateway.Price, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*gateway.Price), args.Error(1)
}

func (m *MockPaymentGateway) ListSubscriptions(ctx context.Context, customerID string, limit int) ([]*gateway.Subscription, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*gateway.Subscription), args.Error(1)
}

func (m *MockPaymentGateway) CreateSubscription(ctx context.Context, in gateway.CreateSubscriptionInput) (*gateway.Subscription, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Subscription), args.Error(1)
}

func (m *MockPaymentGateway) CancelSubscription(ctx context.Context, subscriptionID string, atPeriodEnd bool) (*gateway.Subscription, error) {
	args := m.Called(ctx, subscriptionID, atPeriodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Subscription), args.Error(1)
}

func (m *MockPaymentGateway) CreatePaymentIntent(ctx context.Context, in gateway.CreatePaymentIntentInput) (*gateway.PaymentIntent, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.PaymentIntent), args.Error(1)
}

func (m *MockPaymentGateway) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*gateway.PaymentIntent, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.PaymentIntent), args.Error(1)
}

func (m *MockPaymentGateway) ListPaymentIntents(ctx context.Context, customerID string, limit int) ([]*gateway.PaymentIntent, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*gateway.PaymentIntent), args.Error(1)
}

func (m *MockPaymentGateway) CreateRefund(ctx context.Context, paymentIntentID string) (*gateway.Refund, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Refund), args.Error(1)
}

func (m *MockPaymentGateway) HasRefund(ctx context.Context, paymentIntentID string) (bool, error) {
	args := m.Called(ctx, paymentIntentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentGateway) ListInvoices(ctx context.Context, customerID string, limit int) ([]*gateway.Invoice, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*gateway.Invoice), args.Error(1)
}

func (m *MockPaymentGateway) ListAccountPayouts(ctx context.Context, limit int) ([]*gateway.AccountPayout, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*gateway.AccountPayout), args.Error(1)
}

func (m *MockPaymentGateway) ListTransfers(ctx context.Context, limit int) ([]*gateway.Transfer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*gateway.Transfer), args.Error(1)
}

// MockCustomerMappingRepository is a mock implementation of repository.CustomerMappingRepository
type MockCustomerMappingRepository struct {
	mock.Mock
}

func (m *MockCustomerMappingRepository) Upsert(ctx context.Context, userID int64, stripeCustomerID string) (*entity.CustomerMapping, error) {
	args := m.Called(ctx, userID, stripeCustomerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CustomerMapping), args.Error(1)
}

func (m *MockCustomerMappingRepository) GetByUserID(ctx context.Context, userID int64) (*entity.CustomerMapping, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CustomerMapping), args.Error(1)
}

func (m *MockCustomerMappingRepository) GetByStripeCustomerID(ctx context.Context, stripeCustomerID string) (*entity.CustomerMapping, error) {
	args := m.Called(ctx, stripeCustomerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CustomerMapping), args.Error(1)
}

// MockListingPaymentRepository is a mock implementation of repository.ListingPaymentRepository
type MockListingPaymentRepository struct {
	mock.Mock
}

func (m *MockListingPaymentRepository) Create(ctx context.Context, payment *entity.ListingPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockListingPaymentRepository) FindByOwnerStripeID(ctx context.Context, ownerStripeID string) ([]*entity.ListingPayment, error) {
	args := m.Called(ctx, ownerStripeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ListingPayment), args.Error(1)
}

func (m *MockListingPaymentRepository) FindByListingID(ctx context.Context, listingID int64) ([]*entity.ListingPayment, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ListingPayment), args.Error(1)
}

func (m *MockListingPaymentRepository) FindByAnyID(ctx context.Context, key string) (*entity.ListingPayment, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ListingPayment), args.Error(1)
}
