package common

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDb opens the site database from the sqlite_db environment variable.
// The returned handle is owned by main and passed down to every module.
func ConnectDb() *gorm.DB {
	dbFile := os.Getenv("sqlite_db")
	if dbFile == "" {
		dbFile = "portfolio.db"
		log.Println("sqlite_db not set, using", dbFile)
	}

	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Println("Error opening sqlite db: " + err.Error())
		return nil
	}
	log.Println("opened sqlite db at:", dbFile)
	return db
}
