package config

import (
	"os"

	"github.com/draftdex/draftdex-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Database *gorm.DB

func Connect() error {
	var err error
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		// Local development falls back to an on-disk sqlite database
		Database, err = gorm.Open(sqlite.Open("draftdex.db"), &gorm.Config{})
	} else {
		Database, err = gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	}
	if err != nil {
		panic("failed to connect database")
	}

	err = Database.AutoMigrate(&models.User{}, &models.CardSet{}, &models.Card{}, &models.CustomAttribute{})
	if err != nil {
		panic("failed to auto migrate database")
	}

	return nil
}
