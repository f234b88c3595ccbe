package repository

import (
	"context"

	"github.com/guardlink/payment-service/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id int64) (*entity.Listing, error)
	GetByUserID(ctx context.Context, userID int64) ([]*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
}
