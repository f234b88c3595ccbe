package repository

import (
	"context"

	"github.com/guardlink/payment-service/internal/domain/entity"
)

type ListingPaymentRepository interface {
	Create(ctx context.Context, payment *entity.ListingPayment) error
	FindByOwnerStripeID(ctx context.Context, ownerStripeID string) ([]*entity.ListingPayment, error)
	FindByListingID(ctx context.Context, listingID int64) ([]*entity.ListingPayment, error)
	// FindByAnyID matches the key against both the owner stripe id and the
	// transaction id columns and returns the oldest matching row, or nil.
	// Neither column is unique, so callers get first-match semantics.
	FindByAnyID(ctx context.Context, key string) (*entity.ListingPayment, error)
}
