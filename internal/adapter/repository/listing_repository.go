package repository

import (
	"context"
	"errors"

	"github.com/guardlink/payment-service/internal/domain/entity"
	"github.com/guardlink/payment-service/internal/domain/model"
	"github.com/guardlink/payment-service/internal/domain/repository"
	"gorm.io/gorm"
)

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) modelToEntity(m *model.Listing) *entity.Listing {
	if m == nil {
		return nil
	}
	return &entity.Listing{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Location:    m.Location,
		Description: m.Description,
		Rate:        m.Rate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *listingRepository) entityToModel(e *entity.Listing) *model.Listing {
	if e == nil {
		return nil
	}
	return &model.Listing{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		Location:    e.Location,
		Description: e.Description,
		Rate:        e.Rate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	m := r.entityToModel(listing)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	listing.ID = m.ID
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*entity.Listing, error) {
	var m model.Listing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.modelToEntity(&m), nil
}

func (r *listingRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.Listing, error) {
	var models []model.Listing
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&models).Error
	if err != nil {
		return nil, err
	}
	listings := make([]*entity.Listing, 0, len(models))
	for i := range models {
		listings = append(listings, r.modelToEntity(&models[i]))
	}
	return listings, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	return r.db.WithContext(ctx).Save(r.entityToModel(listing)).Error
}
