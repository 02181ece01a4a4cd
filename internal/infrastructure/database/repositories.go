package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hillcrest-auto/dealer-backend/internal/adapter/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Vehicle     repository.VehicleRepository
	Inquiry     repository.InquiryRepository
	Application repository.ApplicationRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Vehicle:     repository.NewVehicleRepository(db, logger),
		Inquiry:     repository.NewInquiryRepository(db, logger),
		Application: repository.NewApplicationRepository(db, logger),
	}
}
