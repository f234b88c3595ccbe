package database

import (
	"github.com/guardlink/payment-service/internal/adapter/repository"
	domainRepo "github.com/guardlink/payment-service/internal/domain/repository"
	"gorm.io/gorm"
)

// Repositories holds all repository instances.
type Repositories struct {
	User            domainRepo.UserRepository
	Listing         domainRepo.ListingRepository
	CustomerMapping domainRepo.CustomerMappingRepository
	ListingPayment  domainRepo.ListingPaymentRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:            repository.NewUserRepository(db),
		Listing:         repository.NewListingRepository(db),
		CustomerMapping: repository.NewCustomerMappingRepository(db),
		ListingPayment:  repository.NewListingPaymentRepository(db),
	}
}
