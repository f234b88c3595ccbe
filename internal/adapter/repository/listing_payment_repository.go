package repository

import (
	"context"
	"errors"

	"github.com/guardlink/payment-service/internal/domain/entity"
	"github.com/guardlink/payment-service/internal/domain/model"
	"github.com/guardlink/payment-service/internal/domain/repository"
	"gorm.io/gorm"
)

type listingPaymentRepository struct {
	db *gorm.DB
}

func NewListingPaymentRepository(db *gorm.DB) repository.ListingPaymentRepository {
	return &listingPaymentRepository{db: db}
}

func (r *listingPaymentRepository) modelToEntity(m *model.ListingPayment) *entity.ListingPayment {
	if m == nil {
		return nil
	}
	return &entity.ListingPayment{
		ID:            m.ID,
		OwnerStripeID: m.OwnerStripeID,
		ListingID:     m.ListingID,
		TransactionID: m.TransactionID,
		CreatedAt:     m.CreatedAt,
	}
}

func (r *listingPaymentRepository) Create(ctx context.Context, payment *entity.ListingPayment) error {
	m := model.ListingPayment{
		OwnerStripeID: payment.OwnerStripeID,
		ListingID:     payment.ListingID,
		TransactionID: payment.TransactionID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	payment.ID = m.ID
	payment.CreatedAt = m.CreatedAt
	return nil
}

func (r *listingPaymentRepository) FindByOwnerStripeID(ctx context.Context, ownerStripeID string) ([]*entity.ListingPayment, error) {
	var models []model.ListingPayment
	err := r.db.WithContext(ctx).Where("owner_stripe_id = ?", ownerStripeID).Order("id").Find(&models).Error
	if err != nil {
		return nil, err
	}
	payments := make([]*entity.ListingPayment, 0, len(models))
	for i := range models {
		payments = append(payments, r.modelToEntity(&models[i]))
	}
	return payments, nil
}

func (r *listingPaymentRepository) FindByListingID(ctx context.Context, listingID int64) ([]*entity.ListingPayment, error) {
	var models []model.ListingPayment
	err := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Order("id").Find(&models).Error
	if err != nil {
		return nil, err
	}
	payments := make([]*entity.ListingPayment, 0, len(models))
	for i := range models {
		payments = append(payments, r.modelToEntity(&models[i]))
	}
	return payments, nil
}

// FindByAnyID searches both alternate keys. Callers historically passed
// either an owner customer id or a payment intent id here, so both columns
// are checked and the oldest row wins.
func (r *listingPaymentRepository) FindByAnyID(ctx context.Context, key string) (*entity.ListingPayment, error) {
	var m model.ListingPayment
	err := r.db.WithContext(ctx).
		Where("owner_stripe_id = ? OR transaction_id = ?", key, key).
		Order("id").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.modelToEntity(&m), nil
}
