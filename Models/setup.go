package Models

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	var dialector gorm.Dialector
	if os.Getenv("DB_DRIVER") == "mysql" {
		dialector = mysql.Open(os.Getenv("DB_DSN"))
	} else {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "database.db"
		}
		dialector = sqlite.Open(path)
	}

	connection, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = connection

	// 1. Base records with no dependencies
	DB.AutoMigrate(
		&User{},
		&FCMToken{},
	)

	// 2. The maid aggregate and its owned rows
	DB.AutoMigrate(
		&Maid{},
		&Task{},
		&AttendanceRecord{},
	)

	// 3. Ephemeral and derived records
	DB.AutoMigrate(
		&AttendanceChallenge{},
		&PayrollRecord{},
	)
}

// Migrate runs the same migrations against an arbitrary connection. Tests
// use it with an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&FCMToken{},
		&Maid{},
		&Task{},
		&AttendanceRecord{},
		&AttendanceChallenge{},
		&PayrollRecord{},
	)
}
