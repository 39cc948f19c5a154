package database

import (
	"log"
	"os"
	"time"

	"valomate/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect initializes the database connection, runs migrations and returns
// the handle.
func Connect(dsn string) *gorm.DB {
	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
		// Repositories rely on gorm.ErrDuplicatedKey for uniqueness conflicts.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established.")

	// The membership join table carries its own timestamp for leader
	// succession ordering.
	if err := db.SetupJoinTable(&models.Room{}, "Members", &models.RoomMember{}); err != nil {
		log.Fatalf("Failed to set up room membership table: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.EmailVerification{},
		&models.Agent{},
		&models.Platform{},
		&models.Rank{},
		&models.Region{},
		&models.Profile{},
		&models.Chat{},
		&models.Message{},
		&models.Room{},
		&models.JoinRequest{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migrated successfully.")

	return db
}
