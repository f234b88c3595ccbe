package database

import (
	"github.com/guardlink/payment-service/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate runs the GORM auto-migrations and the indexes GORM cannot express.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("running database migrations")

	err := db.AutoMigrate(
		&model.User{},
		&model.Listing{},
		&model.CustomerMapping{},
		&model.ListingPayment{},
	)
	if err != nil {
		logger.Error("failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("database migrations completed")
	return nil
}

func createCustomIndexes(db *gorm.DB) error {
	// Payout aggregation scans mapping rows by owner key; transaction ids are
	// looked up by either key and must stay non-unique (retries may insert
	// duplicates).
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_listing_payments_owner_listing ON listing_payments (owner_stripe_id, listing_id)`).Error; err != nil {
		return err
	}
	return nil
}
