package db

import (
	"fmt"
	"log"

	"github.com/meinhoongagan/portfolio-api/models"
	"gorm.io/gorm"
)

// Migrate creates or updates every table, including foreign keys and indexes.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("✅ Migrations applied successfully!")
	return nil
}
