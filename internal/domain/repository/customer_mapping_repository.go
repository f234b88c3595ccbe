package repository

import (
	"context"

	"github.com/guardlink/payment-service/internal/domain/entity"
)

type CustomerMappingRepository interface {
	// Upsert creates or replaces the mapping for the given user id.
	Upsert(ctx context.Context, userID int64, stripeCustomerID string) (*entity.CustomerMapping, error)
	GetByUserID(ctx context.Context, userID int64) (*entity.CustomerMapping, error)
	GetByStripeCustomerID(ctx context.Context, stripeCustomerID string) (*entity.CustomerMapping, error)
}
