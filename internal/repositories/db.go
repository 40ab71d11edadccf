package repositories

import (
	"fmt"
	"log"

	"github.com/shreyas-k21/passvault/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres database and runs migrations. TranslateError is
// on so unique-constraint violations surface as gorm.ErrDuplicatedKey instead
// of driver-specific errors.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// uuid_generate_v4 defaults on the models need this extension.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return nil, fmt.Errorf("failed to enable uuid extension: %w", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.PasswordEntry{},
		&models.Note{},
		&models.Session{},
	)
	if err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	log.Println("Successfully connected to database")
	return db, nil
}
