package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/guardlink/payment-service/internal/domain/entity"
	domainErrors "github.com/guardlink/payment-service/internal/domain/errors"
	"github.com/guardlink/payment-service/internal/domain/gateway"
	"github.com/guardlink/payment-service/internal/domain/repository"
	"go.uber.org/zap"
)

const stripeCustomerPrefix = "cus_"

// PayoutService builds the unified payout and payment views for a user by
// combining local mapping rows with Stripe data.
type PayoutService struct {
	customerMappingRepo repository.CustomerMappingRepository
	listingPaymentRepo  repository.ListingPaymentRepository
	gateway             gateway.PaymentGateway
	guardianEmail       string
	logger              *zap.Logger
}

func NewPayoutService(
	customerMappingRepo repository.CustomerMappingRepository,
	listingPaymentRepo repository.ListingPaymentRepository,
	gw gateway.PaymentGateway,
	guardianEmail string,
	logger *zap.Logger,
) *PayoutService {
	return &PayoutService{
		customerMappingRepo: customerMappingRepo,
		listingPaymentRepo:  listingPaymentRepo,
		gateway:             gw,
		guardianEmail:       guardianEmail,
		logger:              logger,
	}
}

// ResolveCustomer turns an opaque identifier into the best available Stripe
// customer id. The chain is: already a customer id, then the stored mapping
// for a numeric user id, then the raw identifier as a mapping-table key.
// Resolution never fails; each step degrades to the next.
func (s *PayoutService) ResolveCustomer(ctx context.Context, identifier string) entity.CustomerResolution {
	if identifier == "" {
		return entity.CustomerResolution{Kind: entity.Unresolved}
	}

	if strings.HasPrefix(identifier, stripeCustomerPrefix) {
		return entity.CustomerResolution{
			Kind:       entity.ResolvedCustomer,
			CustomerID: identifier,
			LookupKey:  identifier,
		}
	}

	if userID, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		mapping, err := s.customerMappingRepo.GetByUserID(ctx, userID)
		if err != nil {
			s.logger.Warn("customer mapping lookup failed, falling back to raw identifier",
				zap.String("identifier", identifier),
				zap.Error(err))
		} else if mapping != nil {
			return entity.CustomerResolution{
				Kind:       entity.ResolvedByUserID,
				CustomerID: mapping.StripeCustomerID,
				LookupKey:  mapping.StripeCustomerID,
			}
		}
	}

	return entity.CustomerResolution{Kind: entity.Unresolved, LookupKey: identifier}
}

// ListPayouts aggregates two payout sources for the resolved customer: job
// payments recorded in the mapping table and subscription invoice payments.
// Job payments come first and win on payment-id collisions; order within
// each source is preserved (no re-sort by timestamp).
func (s *PayoutService) ListPayouts(ctx context.Context, userID string, limit int) (*entity.PayoutList, error) {
	resolution := s.ResolveCustomer(ctx, userID)
	if resolution.LookupKey == "" {
		return &entity.PayoutList{
			Payouts: []entity.Payout{},
			Note:    "no identifier could be resolved for payout lookup",
		}, nil
	}

	var notes []string

	jobPayouts, jobNotes := s.collectJobPayouts(ctx, resolution.LookupKey)
	notes = append(notes, jobNotes...)

	var subPayouts []entity.Payout
	if resolution.HasCustomer() {
		var subNotes []string
		subPayouts, subNotes = s.collectSubscriptionPayouts(ctx, resolution.CustomerID, limit)
		notes = append(notes, subNotes...)
	} else {
		notes = append(notes, "no customer mapping found; subscription payments not included")
	}

	merged := mergePayouts(jobPayouts, subPayouts)
	s.enrichRefundStatus(ctx, merged)

	return &entity.PayoutList{
		Payouts: merged,
		Note:    strings.Join(notes, "; "),
	}, nil
}

// collectJobPayouts retrieves the payment intent behind every mapping row
// owned by the key. Retrievals run concurrently and a failed one degrades to
// an unknown-status placeholder so one bad intent cannot sink the batch.
func (s *PayoutService) collectJobPayouts(ctx context.Context, ownerKey string) ([]entity.Payout, []string) {
	rows, err := s.listingPaymentRepo.FindByOwnerStripeID(ctx, ownerKey)
	if err != nil {
		s.logger.Warn("failed to query listing payment mappings",
			zap.String("owner_key", ownerKey),
			zap.Error(err))
		return nil, []string{"unable to query local payment mappings"}
	}

	payouts := make([]entity.Payout, len(rows))
	var wg sync.WaitGroup
	for i, row := range rows {
		wg.Add(1)
		go func(i int, row *entity.ListingPayment) {
			defer wg.Done()
			pi, err := s.gateway.GetPaymentIntent(ctx, row.TransactionID)
			if err != nil {
				s.logger.Warn("failed to retrieve payment intent for mapping row",
					zap.String("transaction_id", row.TransactionID),
					zap.Int64("listing_id", row.ListingID),
					zap.Error(err))
				payouts[i] = entity.Payout{
					PaymentID: row.TransactionID,
					ListingID: row.ListingID,
					Currency:  defaultCurrency,
					Status:    entity.PaymentStatusUnknown,
				}
				return
			}
			amount := pi.Amount
			created := time.Unix(pi.Created, 0).UTC()
			payouts[i] = entity.Payout{
				PaymentID: row.TransactionID,
				ListingID: row.ListingID,
				Amount:    &amount,
				Currency:  currencyOrDefault(pi.Currency),
				Status:    pi.Status,
				Created:   &created,
			}
		}(i, row)
	}
	wg.Wait()

	return payouts, nil
}

// collectSubscriptionPayouts derives payouts from the customer's
// subscription invoices, preferring the expanded payment intent and falling
// back to the invoice's own fields when the intent is absent or was returned
// as a bare reference.
func (s *PayoutService) collectSubscriptionPayouts(ctx context.Context, customerID string, limit int) ([]entity.Payout, []string) {
	invoices, err := s.gateway.ListInvoices(ctx, customerID, limit)
	if err != nil {
		s.logger.Warn("failed to list invoices for customer",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return nil, []string{"unable to retrieve subscription payouts"}
	}

	var payouts []entity.Payout
	for _, inv := range invoices {
		if inv.SubscriptionID == "" {
			continue
		}
		if pi := inv.PaymentIntent; pi != nil {
			amount := pi.Amount
			created := time.Unix(pi.Created, 0).UTC()
			payouts = append(payouts, entity.Payout{
				PaymentID: pi.ID,
				Amount:    &amount,
				Currency:  currencyOrDefault(pi.Currency),
				Status:    pi.Status,
				Created:   &created,
			})
			continue
		}
		paymentID := inv.PaymentIntentID
		if paymentID == "" {
			paymentID = inv.ID
		}
		amount := inv.AmountDue
		created := time.Unix(inv.Created, 0).UTC()
		payouts = append(payouts, entity.Payout{
			PaymentID: paymentID,
			Amount:    &amount,
			Currency:  currencyOrDefault(inv.Currency),
			Status:    inv.Status,
			Created:   &created,
		})
	}

	return payouts, nil
}

// mergePayouts concatenates job payouts before subscription payouts and
// drops later entries sharing a payment id, so the job-payment record wins
// any collision.
func mergePayouts(jobPayouts, subPayouts []entity.Payout) []entity.Payout {
	merged := make([]entity.Payout, 0, len(jobPayouts)+len(subPayouts))
	seen := make(map[string]struct{}, len(jobPayouts)+len(subPayouts))
	for _, p := range append(jobPayouts, subPayouts...) {
		if _, ok := seen[p.PaymentID]; ok {
			continue
		}
		seen[p.PaymentID] = struct{}{}
		merged = append(merged, p)
	}
	return merged
}

// enrichRefundStatus flips succeeded payouts to refunded when at least one
// refund exists. Checks run concurrently; a failed check keeps the reported
// status.
func (s *PayoutService) enrichRefundStatus(ctx context.Context, payouts []entity.Payout) {
	var wg sync.WaitGroup
	for i := range payouts {
		if payouts[i].Status != entity.PaymentStatusSucceeded {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			refunded, err := s.gateway.HasRefund(ctx, payouts[i].PaymentID)
			if err != nil {
				s.logger.Warn("refund check failed, keeping reported status",
					zap.String("payment_id", payouts[i].PaymentID),
					zap.Error(err))
				return
			}
			if refunded {
				payouts[i].Status = entity.PaymentStatusRefunded
			}
		}(i)
	}
	wg.Wait()
}

// ListAccountPayouts proxies the account-level payout list, used when no
// user identifier was supplied.
func (s *PayoutService) ListAccountPayouts(ctx context.Context, limit int) ([]*gateway.AccountPayout, error) {
	payouts, err := s.gateway.ListAccountPayouts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return payouts, nil
}

// ListUserPayments lists a user's payment intents, resolved either directly
// by customer id (merged with intents implied by subscription invoices) or
// row by row through the mapping table.
func (s *PayoutService) ListUserPayments(ctx context.Context, userID, customerID string, limit int) (*entity.UserPaymentList, error) {
	if userID == "" && customerID == "" {
		return nil, domainErrors.ErrMissingIdentifier
	}

	stripeCustomerID := customerID
	if stripeCustomerID == "" {
		if uid, err := strconv.ParseInt(userID, 10, 64); err == nil {
			mapping, err := s.customerMappingRepo.GetByUserID(ctx, uid)
			if err != nil {
				s.logger.Warn("customer mapping lookup failed, querying mappings by raw identifier",
					zap.String("user_id", userID),
					zap.Error(err))
			} else if mapping != nil {
				stripeCustomerID = mapping.StripeCustomerID
			}
		}
	}

	var intents []*gateway.PaymentIntent
	if stripeCustomerID != "" {
		var err error
		intents, err = s.collectCustomerIntents(ctx, stripeCustomerID, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve user payments: %w", err)
		}
	} else {
		intents = s.collectMappedIntents(ctx, userID)
	}

	payments := s.formatUserPayments(ctx, intents)
	return &entity.UserPaymentList{Payments: payments, Count: len(payments)}, nil
}

// collectCustomerIntents lists intents for the customer and merges in the
// intents expanded on subscription invoices, keyed by id so duplicates are
// dropped. An invoice listing failure only loses that source.
func (s *PayoutService) collectCustomerIntents(ctx context.Context, customerID string, limit int) ([]*gateway.PaymentIntent, error) {
	listed, err := s.gateway.ListPaymentIntents(ctx, customerID, limit)
	if err != nil {
		return nil, err
	}

	intents := make([]*gateway.PaymentIntent, 0, len(listed))
	seen := make(map[string]struct{}, len(listed))
	for _, pi := range listed {
		if _, ok := seen[pi.ID]; ok {
			continue
		}
		seen[pi.ID] = struct{}{}
		intents = append(intents, pi)
	}

	invoices, err := s.gateway.ListInvoices(ctx, customerID, limit)
	if err != nil {
		s.logger.Warn("failed to retrieve invoices for customer",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return intents, nil
	}
	for _, inv := range invoices {
		pi := inv.PaymentIntent
		if pi == nil {
			continue
		}
		if _, ok := seen[pi.ID]; ok {
			continue
		}
		seen[pi.ID] = struct{}{}
		intents = append(intents, pi)
	}

	return intents, nil
}

// collectMappedIntents retrieves intents recorded in the mapping table for
// the raw key, concurrently, skipping rows whose retrieval fails.
func (s *PayoutService) collectMappedIntents(ctx context.Context, ownerKey string) []*gateway.PaymentIntent {
	rows, err := s.listingPaymentRepo.FindByOwnerStripeID(ctx, ownerKey)
	if err != nil {
		s.logger.Error("failed to query listing payment mappings",
			zap.String("owner_key", ownerKey),
			zap.Error(err))
		return nil
	}

	results := make([]*gateway.PaymentIntent, len(rows))
	var wg sync.WaitGroup
	for i, row := range rows {
		wg.Add(1)
		go func(i int, transactionID string) {
			defer wg.Done()
			pi, err := s.gateway.GetPaymentIntent(ctx, transactionID)
			if err != nil {
				s.logger.Warn("failed to retrieve payment intent",
					zap.String("transaction_id", transactionID),
					zap.Error(err))
				return
			}
			results[i] = pi
		}(i, row.TransactionID)
	}
	wg.Wait()

	intents := make([]*gateway.PaymentIntent, 0, len(rows))
	for _, pi := range results {
		if pi != nil {
			intents = append(intents, pi)
		}
	}
	return intents
}

// formatUserPayments shapes intents into the listing response, applying the
// same refund-supersedes-succeeded rule as the payout aggregation.
func (s *PayoutService) formatUserPayments(ctx context.Context, intents []*gateway.PaymentIntent) []entity.UserPayment {
	payments := make([]entity.UserPayment, len(intents))
	var wg sync.WaitGroup
	for i, pi := range intents {
		wg.Add(1)
		go func(i int, pi *gateway.PaymentIntent) {
			defer wg.Done()
			status := pi.Status
			if status == entity.PaymentStatusSucceeded {
				refunded, err := s.gateway.HasRefund(ctx, pi.ID)
				if err != nil {
					s.logger.Warn("refund check failed, keeping reported status",
						zap.String("payment_id", pi.ID),
						zap.Error(err))
				} else if refunded {
					status = entity.PaymentStatusRefunded
				}
			}

			created := time.Unix(pi.Created, 0).UTC()
			payments[i] = entity.UserPayment{
				PaymentID:   pi.ID,
				Amount:      pi.Amount,
				Currency:    pi.Currency,
				Status:      status,
				Created:     &created,
				ListingID:   pi.Metadata["jobId"],
				GuardianID:  pi.Metadata["guardianId"],
				CustomerID:  pi.CustomerID,
				Captured:    pi.AmountReceived > 0,
				Description: pi.Description,
				Type:        paymentType(pi),
			}
		}(i, pi)
	}
	wg.Wait()
	return payments
}

// paymentType prefers the metadata tag and falls back to sniffing the
// description for subscription charges created by Stripe itself.
func paymentType(pi *gateway.PaymentIntent) string {
	if t := pi.Metadata["type"]; t != "" {
		return t
	}
	if strings.Contains(strings.ToLower(pi.Description), "subscription") {
		return "subscription"
	}
	return "payment"
}

// ListGuardianTransfers lists Stripe transfers tagged with the guardian id.
// A gateway failure degrades to an empty list with a note since this view
// is informational.
func (s *PayoutService) ListGuardianTransfers(ctx context.Context, guardianID string, limit int) (*entity.GuardianTransferList, error) {
	result := &entity.GuardianTransferList{
		GuardianID: guardianID,
		Email:      s.guardianEmail,
		Transfers:  []entity.GuardianTransfer{},
	}

	transfers, err := s.gateway.ListTransfers(ctx, limit)
	if err != nil {
		s.logger.Warn("failed to list transfers",
			zap.String("guardian_id", guardianID),
			zap.Error(err))
		result.Note = "unable to fetch transfers from Stripe in this environment"
		return result, nil
	}

	for _, t := range transfers {
		if t.Metadata["guardianId"] != guardianID {
			continue
		}
		result.Transfers = append(result.Transfers, entity.GuardianTransfer{
			TransferID: t.ID,
			Amount:     t.Amount,
			Currency:   currencyOrDefault(t.Currency),
			Created:    time.Unix(t.Created, 0).UTC(),
			Reversed:   t.Reversed,
			Metadata:   t.Metadata,
		})
	}

	return result, nil
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return defaultCurrency
	}
	return currency
}
