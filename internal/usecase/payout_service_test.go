package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/guardlink/payment-service/internal/domain/entity"
	domainErrors "github.com/guardlink/payment-service/internal/domain/errors"
	"github.com/guardlink/payment-service/internal/domain/gateway"
	"github.com/guardlink/payment-service/internal/usecase"
)

func newPayoutService(mappingRepo *MockCustomerMappingRepository, paymentRepo *MockListingPaymentRepository, gw *MockPaymentGateway) *usecase.PayoutService {
	return usecase.NewPayoutService(mappingRepo, paymentRepo, gw, "guardian-test@example.com", zap.NewNop())
}

func TestPayoutService_ResolveCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("customer id passes through without a lookup", func(t *testing.T) {
		mappingRepo := new(MockCustomerMappingRepository)
		service := newPayoutService(mappingRepo, new(MockListingPaymentRepository), new(MockPaymentGateway))

		res := service.ResolveCustomer(ctx, "cus_abc123")

		assert.Equal(t, entity.ResolvedCustomer, res.Kind)
		assert.Equal(t, "cus_abc123", res.CustomerID)
		assert.Equal(t, "cus_abc123", res.LookupKey)
		mappingRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	})

	t.Run("numeric user id resolves through the mapping table", func(t *testing.T) {
		mappingRepo := new(MockCustomerMappingRepository)
		mappingRepo.On("GetByUserID", ctx, int64(42)).Return(&entity.CustomerMapping{
			UserID:           42,
			StripeCustomerID: "cus_from_mapping",
		}, nil)
		service := newPayoutService(mappingRepo, new(MockListingPaymentRepository), new(MockPaymentGateway))

		res := service.ResolveCustomer(ctx, "42")

		assert.Equal(t, entity.ResolvedByUserID, res.Kind)
		assert.Equal(t, "cus_from_mapping", res.CustomerID)
		assert.Equal(t, "cus_from_mapping", res.LookupKey)
		mappingRepo.AssertExpectations(t)
	})

	t.Run("unmapped user id falls back to the raw key", func(t *testing.T) {
		mappingRepo := new(MockCustomerMappingRepository)
		mappingRepo.On("GetByUserID", ctx, int64(42)).Return(nil, nil)
		service := newPayoutService(mappingRepo, new(MockListingPaymentRepository), new(MockPaymentGateway))

		res := service.ResolveCustomer(ctx, "42")

		assert.Equal(t, entity.Unresolved, res.Kind)
		assert.False(t, res.HasCustomer())
		assert.Equal(t, "42", res.LookupKey)
	})

	t.Run("mapping lookup failure degrades instead of erroring", func(t *testing.T) {
		mappingRepo := new(MockCustomerMappingRepository)
		mappingRepo.On("GetByUserID", ctx, int64(42)).Return(nil, errors.New("db down"))
		service := newPayoutService(mappingRepo, new(MockListingPaymentRepository), new(MockPaymentGateway))

		res := service.ResolveCustomer(ctx, "42")

		assert.Equal(t, entity.Unresolved, res.Kind)
		assert.Equal(t, "42", res.LookupKey)
	})

	t.Run("empty identifier is unresolved with no lookup key", func(t *testing.T) {
		service := newPayoutService(new(MockCustomerMappingRepository), new(MockListingPaymentRepository), new(MockPaymentGateway))

		res := service.ResolveCustomer(ctx, "")

		assert.Equal(t, entity.Unresolved, res.Kind)
		assert.Empty(t, res.LookupKey)
	})
}

func TestPayoutService_ListPayouts(t *testing.T) {
	ctx := context.Background()
	created := int64(1700000000)
	createdAt := time.Unix(created, 0).UTC()

	t.Run("merges job and subscription payouts with job payments winning collisions", func(t *testing.T) {
		paymentRepo := new(MockListingPaymentRepository)
		paymentRepo.On("FindByOwnerStripeID", ctx, "cus_1").Return([]*entity.ListingPayment{
			{OwnerStripeID: "cus_1", ListingID: 7, TransactionID: "pi_job"},
		}, nil)

		gw := new(MockPaymentGateway)
		gw.On("GetPaymentIntent", ctx, "pi_job").Return(&gateway.PaymentIntent{
			ID: "pi_job", Status: "succeeded", Amount: 5000, Currency: "eur", Created: created,
		}, nil)
		gw.On("ListInvoices", ctx, "cus_1", 10).Return([]*gateway.Invoice{
			{
				ID: "in_1", SubscriptionID: "sub_1",
				PaymentIntent: &gateway.PaymentIntent{ID: "pi_sub", Status: "succeeded", Amount: 999, Currency: "eur", Created: created},
			},
			{
				// Same intent surfaced again via an invoice; the job record wins.
				ID: "in_2", SubscriptionID: "sub_1",
				PaymentIntent: &gateway.PaymentIntent{ID: "pi_job", Status: "succeeded", Amount: 5000, Currency: "eur", Created: created},
			},
			{ID: "in_3", AmountDue: 100, Status: "paid", Created: created},
		}, nil)
		gw.On("HasRefund", ctx, "pi_job").Return(false, nil)
		gw.On("HasRefund", ctx, "pi_sub").Return(false, nil)

		service := newPayoutService(new(MockCustomerMappingRepository), paymentRepo, gw)

		result, err := service.ListPayouts(ctx, "cus_1", 10)

		assert.NoError(t, err)
		assert.Len(t, result.Payouts, 2)
		assert.Equal(t, "pi_job", result.Payouts[0].PaymentID)
		assert.Equal(t, int64(7), result.Payouts[0].ListingID)
		assert.Equal(t, "pi_sub", result.Payouts[1].PaymentID)
		assert.Equal(t, &createdAt, result.Payouts[1].Created)
		assert.Empty(t, result.Note)

		// Same inputs, same merged list.
		again, err := service.ListPayouts(ctx, "cus_1", 10)
		assert.NoError(t, err)
		assert.Equal(t, result, again)
		gw.AssertExpectations(t)
	})

	t.Run("unexpanded invoice falls back to its own amount and status", func(t *testing.T) {
		paymentRepo := new(MockListingPaymentRepository)
		paymentRepo.On("FindByOwnerStripeID", ctx, "cus_2").Return([]*entity.ListingPayment{}, nil)

		gw := new(MockPaymentGateway)
		gw.On("ListInvoices", ctx, "cus_2", 10).Return([]*gateway.Invoice{
			{
				ID: "in_9", SubscriptionID: "sub_9", PaymentIntentID: "pi_ref",
				AmountDue: 777, Currency: "usd", Status: "open", Created: created,
			},
		}, nil)

		service := newPayoutService(new(MockCustomerMappingRepository), paymentRepo, gw)

		result, err := service.ListPayouts(ctx, "cus_2", 10)

		assert.NoError(t, err)
		assert.Len(t, result.Payouts, 1)
		payout := result.Payouts[0]
		assert.Equal(t, "pi_ref", payout.PaymentID)
		assert.Equal(t, int64(777), *payout.Amount)
		assert.Equal(t, "usd", payout.Currency)
		assert.Equal(t, "open", payout.Status)
	})

	t.Run("one failed retrieval degrades to an unknown placeholder without sinking the batch", func(t *testing.T) {
		paymentRepo := new(MockListingPaymentRepository)
		paymentRepo.On("FindByOwnerStripeID", ctx, "someone").Return([]*entity.ListingPayment{
			{ListingID: 1, TransactionID: "pi_a"},
			{ListingID: 2, TransactionID: "pi_b"},
		}, nil)

		gw := new(MockPaymentGateway)
		gw.On("GetPaymentIntent", ctx, "pi_a").Return(&gateway.PaymentIntent{
			ID: "pi_a", Status: "succeeded", Amount: 1000, Currency: "eur", Created: created,
		}, nil)
		gw.On("GetPaymentIntent", ctx, "pi_b").Return(nil, errors.New("no such payment_intent"))
		gw.On("HasRefund", ctx, "pi_a").Return(false, nil)

		service := newPayoutService(new(MockCustomerMappingRepository), paymentRepo, gw)

		result, err := service.ListPayouts(ctx, "someone", 10)

		assert.NoError(t, err)
		assert.Len(t, result.Payouts, 2)
		assert.Equal(t, "succeeded", result.Payouts[0].Status)
		degraded := result.Payouts[1]
		assert.Equal(t, "pi_b", degraded.PaymentID)
		assert.Equal(t, int64(2), degraded.ListingID)
		assert.Equal(t, entity.PaymentStatusUnknown, degraded.Status)
		assert.Nil(t, degraded.Amount)
		// No customer resolved for a raw key, so invoices are never queried.
		gw.AssertNotCalled(t, "ListInvoices", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("refund supersedes succeeded", func(t *testing.T) {
		paymentRepo := new(MockListingPaymentRepository)
		paymentRepo.On("FindByOwnerStripeID", ctx, "cus_3").Return([]*entity.ListingPayment{
			{ListingID: 3, TransactionID: "pi_refunded"},
		}, nil)

		gw := new(MockPaymentGateway)
		gw.On("GetPaymentIntent", ctx, "pi_refunded").Return(&gateway.PaymentIntent{
			ID: "pi_refunded", Status: "succeeded", Amount: 2500, Currency: "eur", Created: created,
		}, nil)
		gw.On("ListInvoices", ctx, "cus_3", 10).Return([]*gateway.Invoice{}, nil)
		gw.On("HasRefund", ctx, "pi_refunded").Return(true, nil)

		service := newPayoutService(new(MockCustomerMappingRepository), paymentRepo, gw)

		result, err := service.ListPayouts(ctx, "cus_3", 10)

		assert.NoError(t, err)
		assert.Len(t, result.Payouts, 1)
		assert.Equal(t, entity.PaymentStatusRefunded, result.Payouts[0].Status)
	})

	t.Run("failed refund check keeps the reported status", func(t *testing.T) {
		paymentRepo := new(MockListingPaymentRepository)
		paymentRepo.On("FindByOwnerStripeID", ctx, "cus_4").Return([]*entity.ListingPayment{
			{ListingID: 4, TransactionID: "pi_ok"},
		}, nil)

		gw := new(MockPaymentGateway)
		gw.On("GetPaymentIntent", ctx, "pi_ok").Return(&gateway.PaymentIntent{
			ID: "pi_ok", Status: "succeeded", Amount: 100, Currency: "eur", Created: created,
		}, nil)
		gw.On("ListInvoices", ctx, "cus_4", 10).Return([]*gateway.Invoice{}, nil)
		gw.On("HasRefund", ctx, "pi_ok").Return(false, errors.New("rate limited"))

		service := newPayoutService(new(MockCustomerMappingRepository), paymentRepo, gw)

		result, err := service.ListPayouts(ctx, "cus_4", 10)

		assert.NoError(t, err)
		assert.Equal(t, "succeeded", result.Payouts[0].Status)
	})

	t.Run("mapping query failure surfaces as a note, not an error", func(t *testing.T) {
		paymentRepo := new(MockListingPaymentRepository)
		paymentRepo.On("FindByOwnerStripeID", ctx, "cus_5").Return(nil, errors.New("db down"))

		gw := new(MockPaymentGateway)
		gw.On("ListInvoices", ctx, "cus_5", 10).Return([]*gateway.Invoice{}, nil)

		service := newPayoutService(new(MockCustomerMappingRepository), paymentRepo, gw)

		result, err := service.ListPayouts(ctx, "cus_5", 10)

		assert.NoError(t, err)
		assert.Empty(t, result.Payouts)
		assert.Contains(t, result.Note, "unable to query local payment mappings")
	})

	t.Run("invoice listing failure surfaces as a note, not an error", func(t *testing.T) {
		paymentRepo := new(MockListingPaymentRepository)
		paymentRepo.On("FindByOwnerStripeID", ctx, "cus_6").Return([]*entity.ListingPayment{}, nil)

		gw := new(MockPaymentGateway)
		gw.On("ListInvoices", ctx, "cus_6", 10).Return(nil, errors.New("stripe unavailable"))

		service := newPayoutService(new(MockCustomerMappingRepository), paymentRepo, gw)

		result, err := service.ListPayouts(ctx, "cus_6", 10)

		assert.NoError(t, err)
		assert.Empty(t, result.Payouts)
		assert.Contains(t, result.Note, "unable to retrieve subscription payouts")
	})

	t.Run("unmapped user with no rows gets an empty list with a note, not an error", func(t *testing.T) {
		mappingRepo := new(MockCustomerMappingRepository)
		mappingRepo.On("GetByUserID", ctx, int64(42)).Return(nil, nil)

		paymentRepo := new(MockListingPaymentRepository)
		paymentRepo.On("FindByOwnerStripeID", ctx, "42").Return([]*entity.ListingPayment{}, nil)

		gw := new(MockPaymentGateway)
		service := newPayoutService(mappingRepo, paymentRepo, gw)

		result, err := service.ListPayouts(ctx, "42", 10)

		assert.NoError(t, err)
		assert.Empty(t, result.Payouts)
		assert.NotEmpty(t, result.Note)
		gw.AssertNotCalled(t, "ListInvoices", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty identifier returns an empty list with a note", func(t *testing.T) {
		service := newPayoutService(new(MockCustomerMappingRepository), new(MockListingPaymentRepository), new(MockPaymentGateway))

		result, err := service.ListPayouts(ctx, "", 10)

		assert.NoError(t, err)
		assert.Empty(t, result.Payouts)
		assert.NotNil(t, result.Payouts)
		assert.Contains(t, result.Note, "no identifier could be resolved")
	})
}

func TestPayoutService_ListUserPayments(t *testing.T) {
	ctx := context.Background()
	created := int64(1700000000)

	t.Run("requires an identifier before touching any remote", func(t *testing.T) {
		gw := new(MockPaymentGateway)
		service := newPayoutService(new(MockCustomerMappingRepository), new(MockListingPaymentRepository), gw)

		result, err := service.ListUserPayments(ctx, "", "", 100)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domainErrors.ErrMissingIdentifier)
		gw.AssertNotCalled(t, "ListPaymentIntents", mock.Anything, mock.Anything, mock.Anything)
		gw.AssertNotCalled(t, "ListInvoices", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("merges listed intents with invoice-expanded intents, dropping duplicates", func(t *testing.T) {
		gw := new(MockPaymentGateway)
		gw.On("ListPaymentIntents", ctx, "cus_1", 100).Return([]*gateway.PaymentIntent{
			{ID: "pi_1", Status: "succeeded", Amount: 5000, Currency: "eur", Created: created,
				Metadata: map[string]string{"type": "job_payment", "jobId": "7"}},
		}, nil)
		gw.On("ListInvoices", ctx, "cus_1", 100).Return([]*gateway.Invoice{
			{ID: "in_1", SubscriptionID: "sub_1",
				PaymentIntent: &gateway.PaymentIntent{ID: "pi_2", Status: "succeeded", Amount: 999, Currency: "eur", Created: created, Description: "Subscription creation"}},
			{ID: "in_2", SubscriptionID: "sub_1",
				PaymentIntent: &gateway.PaymentIntent{ID: "pi_1", Status: "succeeded", Amount: 5000, Currency: "eur", Created: created}},
		}, nil)
		gw.On("HasRefund", ctx, "pi_1").Return(false, nil)
		gw.On("HasRefund", ctx, "pi_2").Return(false, nil)

		service := newPayoutService(new(MockCustomerMappingRepository), new(MockListingPaymentRepository), gw)

		result, err := service.ListUserPayments(ctx, "", "cus_1", 100)

		assert.NoError(t, err)
		assert.Equal(t, 2, result.Count)
		assert.Equal(t, "pi_1", result.Payments[0].PaymentID)
		assert.Equal(t, "job_payment", result.Payments[0].Type)
		assert.Equal(t, "7", result.Payments[0].ListingID)
		assert.Equal(t, "pi_2", result.Payments[1].PaymentID)
		assert.Equal(t, "subscription", result.Payments[1].Type)
	})

	t.Run("numeric user id resolves to the mapped customer", func(t *testing.T) {
		mappingRepo := new(MockCustomerMappingRepository)
		mappingRepo.On("GetByUserID", ctx, int64(42)).Return(&entity.CustomerMapping{
			UserID: 42, StripeCustomerID: "cus_mapped",
		}, nil)

		gw := new(MockPaymentGateway)
		gw.On("ListPaymentIntents", ctx, "cus_mapped", 100).Return([]*gateway.PaymentIntent{}, nil)
		gw.On("ListInvoices", ctx, "cus_mapped", 100).Return([]*gateway.Invoice{}, nil)

		service := newPayoutService(mappingRepo, new(MockListingPaymentRepository), gw)

		result, err := service.ListUserPayments(ctx, "42", "", 100)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Count)
		gw.AssertExpectations(t)
	})

	t.Run("unmapped identifier walks the mapping table row by row", func(t *testing.T) {
		paymentRepo := new(MockListingPaymentRepository)
		paymentRepo.On("FindByOwnerStripeID", ctx, "legacy-key").Return([]*entity.ListingPayment{
			{TransactionID: "pi_x"},
			{TransactionID: "pi_gone"},
		}, nil)

		gw := new(MockPaymentGateway)
		gw.On("GetPaymentIntent", ctx, "pi_x").Return(&gateway.PaymentIntent{
			ID: "pi_x", Status: "requires_payment_method", Amount: 100, Currency: "eur", Created: created,
		}, nil)
		gw.On("GetPaymentIntent", ctx, "pi_gone").Return(nil, errors.New("no such payment_intent"))

		service := newPayoutService(new(MockCustomerMappingRepository), paymentRepo, gw)

		result, err := service.ListUserPayments(ctx, "legacy-key", "", 100)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Count)
		assert.Equal(t, "pi_x", result.Payments[0].PaymentID)
		assert.Equal(t, "payment", result.Payments[0].Type)
	})

	t.Run("intent listing failure propagates", func(t *testing.T) {
		gw := new(MockPaymentGateway)
		gw.On("ListPaymentIntents", ctx, "cus_1", 100).Return(nil, errors.New("stripe unavailable"))

		service := newPayoutService(new(MockCustomerMappingRepository), new(MockListingPaymentRepository), gw)

		result, err := service.ListUserPayments(ctx, "", "cus_1", 100)

		assert.Nil(t, result)
		assert.ErrorContains(t, err, "failed to retrieve user payments")
	})

	t.Run("invoice listing failure only loses that source", func(t *testing.T) {
		gw := new(MockPaymentGateway)
		gw.On("ListPaymentIntents", ctx, "cus_1", 100).Return([]*gateway.PaymentIntent{
			{ID: "pi_1", Status: "succeeded", Amount: 100, Currency: "eur", Created: created},
		}, nil)
		gw.On("ListInvoices", ctx, "cus_1", 100).Return(nil, errors.New("stripe unavailable"))
		gw.On("HasRefund", ctx, "pi_1").Return(false, nil)

		service := newPayoutService(new(MockCustomerMappingRepository), new(MockListingPaymentRepository), gw)

		result, err := service.ListUserPayments(ctx, "", "cus_1", 100)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Count)
	})
}

func TestPayoutService_ListGuardianTransfers(t *testing.T) {
	ctx := context.Background()

	t.Run("filters transfers by guardian metadata", func(t *testing.T) {
		gw := new(MockPaymentGateway)
		gw.On("ListTransfers", ctx, 100).Return([]*gateway.Transfer{
			{ID: "tr_1", Amount: 5000, Currency: "eur", Created: 1700000000, Metadata: map[string]string{"guardianId": "g1"}},
			{ID: "tr_2", Amount: 2000, Currency: "eur", Created: 1700000001, Metadata: map[string]string{"guardianId": "g2"}},
			{ID: "tr_3", Amount: 1000, Currency: "eur", Created: 1700000002},
		}, nil)

		service := newPayoutService(new(MockCustomerMappingRepository), new(MockListingPaymentRepository), gw)

		result, err := service.ListGuardianTransfers(ctx, "g1", 100)

		assert.NoError(t, err)
		assert.Equal(t, "g1", result.GuardianID)
		assert.Equal(t, "guardian-test@example.com", result.Email)
		assert.Len(t, result.Transfers, 1)
		assert.Equal(t, "tr_1", result.Transfers[0].TransferID)
		assert.Empty(t, result.Note)
	})

	t.Run("gateway failure degrades to an empty list with a note", func(t *testing.T) {
		gw := new(MockPaymentGateway)
		gw.On("ListTransfers", ctx, 100).Return(nil, errors.New("transfers not enabled"))

		service := newPayoutService(new(MockCustomerMappingRepository), new(MockListingPaymentRepository), gw)

		result, err := service.ListGuardianTransfers(ctx, "g1", 100)

		assert.NoError(t, err)
		assert.Empty(t, result.Transfers)
		assert.NotNil(t, result.Transfers)
		assert.Contains(t, result.Note, "unable to fetch transfers")
	})
}
