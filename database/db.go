// File: urbanserve/database/db.go
package database

import (
	"log"
	"strings"

	"urbanserve/config"
	"urbanserve/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB is the global database handle.
var DB *gorm.DB

// InitDB opens the configured database (Postgres DSN or SQLite file path)
// and migrates the schema.
func InitDB() {
	dsn := config.AppConfig.DatabaseURL

	var (
		db  *gorm.DB
		err error
	)
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	DB = db
	log.Println("Connected to database successfully!")
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.WorkerProfile{},
		&models.TutorProfile{},
		&models.Booking{},
		&models.Rating{},
		&models.AIDecisionLog{},
	)
}
