package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&model.Vehicle{},
		&model.Inquiry{},
		&model.CustomerApplication{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	// Partial index for the daily banner sweep; AutoMigrate does not
	// express partial indexes.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_vehicles_banner_new_created ON vehicles (created_at) WHERE banner_new`).Error; err != nil {
		logger.Error("Failed to create banner index", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}
