package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guardlink/payment-service/internal/domain/entity"
	domainErrors "github.com/guardlink/payment-service/internal/domain/errors"
	"github.com/guardlink/payment-service/internal/domain/gateway"
	"github.com/guardlink/payment-service/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	defaultCurrency = "eur"

	// metadataTypeJobPayment tags payment intents created for a listing so
	// they can be told apart from subscription charges later.
	metadataTypeJobPayment = "job_payment"
)

// PaymentService handles payment intents: generic one-off payments, job
// payments with their local mapping row, refunds and the simulated release.
type PaymentService struct {
	listingPaymentRepo repository.ListingPaymentRepository
	gateway            gateway.PaymentGateway
	guardianEmail      string
	logger             *zap.Logger
}

func NewPaymentService(
	listingPaymentRepo repository.ListingPaymentRepository,
	gw gateway.PaymentGateway,
	guardianEmail string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		listingPaymentRepo: listingPaymentRepo,
		gateway:            gw,
		guardianEmail:      guardianEmail,
		logger:             logger,
	}
}

// CreatePaymentIntent creates a generic intent. Amount arrives in major
// currency units and is converted to the smallest unit for Stripe.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, amount float64, currency, customerID string) (*entity.PaymentIntentResult, error) {
	if currency == "" {
		currency = defaultCurrency
	}
	pi, err := s.gateway.CreatePaymentIntent(ctx, gateway.CreatePaymentIntentInput{
		Amount:     int64(math.Round(amount * 100)),
		Currency:   currency,
		CustomerID: customerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &entity.PaymentIntentResult{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
	}, nil
}

// CreateJobPayment creates the payment intent for a listing (amount already
// in cents) and records the listing-to-payment mapping.
//
// The mapping write is phase two of a two-phase contract: the Stripe intent
// is authoritative and has already succeeded, so a failed local write is
// logged and swallowed rather than surfaced. The caller keeps the payment.
func (s *PaymentService) CreateJobPayment(ctx context.Context, jobID string, amountCents int64, customerID, guardianID string) (*entity.JobPaymentResult, error) {
	pi, err := s.gateway.CreatePaymentIntent(ctx, gateway.CreatePaymentIntentInput{
		Amount:     amountCents,
		Currency:   defaultCurrency,
		CustomerID: customerID,
		Metadata: map[string]string{
			"jobId":      jobID,
			"guardianId": guardianID,
			"type":       metadataTypeJobPayment,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create job payment: %w", err)
	}

	// The owner key must never be empty: prefer the caller-supplied customer
	// id, then whatever customer Stripe attached, then the intent id itself.
	ownerID := customerID
	if ownerID == "" {
		ownerID = pi.CustomerID
	}
	if ownerID == "" {
		ownerID = pi.ID
	}

	listingID, err := strconv.ParseInt(jobID, 10, 64)
	if err != nil {
		listingID = 0
	}

	mapping := &entity.ListingPayment{
		OwnerStripeID: ownerID,
		ListingID:     listingID,
		TransactionID: pi.ID,
	}
	if err := s.listingPaymentRepo.Create(ctx, mapping); err != nil {
		s.logger.Error("failed to persist listing payment mapping",
			zap.String("owner_stripe_id", ownerID),
			zap.Int64("listing_id", listingID),
			zap.String("transaction_id", pi.ID),
			zap.Error(err))
	} else {
		s.logger.Info("listing payment mapping persisted",
			zap.String("owner_stripe_id", ownerID),
			zap.Int64("listing_id", listingID),
			zap.String("transaction_id", pi.ID))
	}

	return &entity.JobPaymentResult{
		PaymentID:    pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

// GetPayment returns the intent's current state plus the first local mapping
// row matching the payment id. The mapping lookup is informational only.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*entity.PaymentDetails, error) {
	pi, err := s.gateway.GetPaymentIntent(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment: %w", err)
	}

	mapping, err := s.listingPaymentRepo.FindByAnyID(ctx, paymentID)
	if err != nil {
		s.logger.Warn("mapping lookup failed for payment",
			zap.String("payment_id", paymentID),
			zap.Error(err))
		mapping = nil
	}

	return &entity.PaymentDetails{
		PaymentID:  pi.ID,
		Status:     pi.Status,
		Amount:     pi.Amount,
		Currency:   pi.Currency,
		ListingID:  pi.Metadata["jobId"],
		GuardianID: pi.Metadata["guardianId"],
		Captured:   pi.AmountReceived > 0,
		Mapping:    mapping,
	}, nil
}

func (s *PaymentService) RefundPayment(ctx context.Context, paymentIntentID string) (*entity.RefundResult, error) {
	refund, err := s.gateway.CreateRefund(ctx, paymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("failed to refund payment: %w", err)
	}
	return &entity.RefundResult{
		RefundID: refund.ID,
		Status:   refund.Status,
		Amount:   refund.Amount,
	}, nil
}

// ReleaseToGuardian validates that the payment can be released and returns a
// simulated transfer acknowledgment. No funds move: a real release requires
// a Stripe Connect transfer to the guardian's connected account.
func (s *PaymentService) ReleaseToGuardian(ctx context.Context, paymentID string) (*entity.ReleaseResult, error) {
	pi, err := s.gateway.GetPaymentIntent(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment: %w", err)
	}

	if pi.Status != entity.PaymentStatusSucceeded {
		return nil, domainErrors.NewPaymentStateError(paymentID, pi.Status)
	}
	if pi.Metadata["guardianId"] == "" {
		return nil, domainErrors.ErrGuardianMetadataMissing
	}

	s.logger.Info("simulating fund release to guardian",
		zap.String("payment_id", paymentID),
		zap.String("guardian_id", pi.Metadata["guardianId"]),
		zap.Int64("amount", pi.Amount))

	return &entity.ReleaseResult{
		Status:        "transferred",
		TransferID:    simulatedTransferID(),
		GuardianEmail: s.guardianEmail,
		Amount:        pi.Amount,
		Message:       "payment accepted for transfer to guardian (test simulation)",
		Note:          "in production, create a Stripe Connect transfer to a real connected account",
	}, nil
}

func simulatedTransferID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("sim_tr_%d_%s", time.Now().UnixMilli(), suffix)
}
