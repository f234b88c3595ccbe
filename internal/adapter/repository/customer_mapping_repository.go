package repository

import (
	"context"
	"errors"

	"github.com/guardlink/payment-service/internal/domain/entity"
	"github.com/guardlink/payment-service/internal/domain/model"
	"github.com/guardlink/payment-service/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type customerMappingRepository struct {
	db *gorm.DB
}

func NewCustomerMappingRepository(db *gorm.DB) repository.CustomerMappingRepository {
	return &customerMappingRepository{db: db}
}

func (r *customerMappingRepository) modelToEntity(m *model.CustomerMapping) *entity.CustomerMapping {
	if m == nil {
		return nil
	}
	return &entity.CustomerMapping{
		ID:               m.ID,
		UserID:           m.UserID,
		StripeCustomerID: m.StripeCustomerID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// Upsert keeps one mapping per user id: an existing row gets its customer id
// replaced instead of a second row being inserted.
func (r *customerMappingRepository) Upsert(ctx context.Context, userID int64, stripeCustomerID string) (*entity.CustomerMapping, error) {
	m := model.CustomerMapping{
		UserID:           userID,
		StripeCustomerID: stripeCustomerID,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stripe_customer_id", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

func (r *customerMappingRepository) GetByUserID(ctx context.Context, userID int64) (*entity.CustomerMapping, error) {
	var m model.CustomerMapping
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.modelToEntity(&m), nil
}

func (r *customerMappingRepository) GetByStripeCustomerID(ctx context.Context, stripeCustomerID string) (*entity.CustomerMapping, error) {
	var m model.CustomerMapping
	err := r.db.WithContext(ctx).Where("stripe_customer_id = ?", stripeCustomerID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.modelToEntity(&m), nil
}
