package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/campuscare-app/CampusCare/app/models"
	"github.com/campuscare-app/CampusCare/internal/pkg/env"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

var DB *gorm.DB

// SetupDatabase connects to the primary Postgres store. A failed connection
// leaves DB nil instead of panicking: handlers surface a configuration error
// until an operator fixes the environment and restarts.
func SetupDatabase() {
	host := env.GetEnv("DB_HOST", "")
	name := env.GetEnv("DB_NAME", "")
	if host == "" || name == "" {
		log.Println("DB_HOST/DB_NAME not configured, primary store disabled")
		return
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host,
		env.GetEnv("DB_USER", ""),
		env.GetEnv("DB_PASSWORD", ""),
		name,
		env.GetEnv("DB_PORT", "5432"),
		env.GetEnv("DB_SSLMODE", "disable"),
	)

	var err error
	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			if migrateErr := DB.AutoMigrate(
				&models.User{},
				&models.Report{},
				&models.ReportComment{},
				&models.Notification{},
			); migrateErr != nil {
				log.Printf("Auto migration failed: %v", migrateErr)
			}
			return
		}

		log.Printf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	log.Printf("Primary store unavailable after %d attempts: %v", maxRetries, err)
	DB = nil
}

// GetDB returns the database handle, or nil when the primary store is not configured.
func GetDB() *gorm.DB {
	return DB
}
