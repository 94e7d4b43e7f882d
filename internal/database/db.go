package database

import (
	"log"

	"magacin-backend/internal/config"
	"magacin-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Ne mogu da se povežem na bazu: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate greška: %v", err)
	}

	log.Println("Veza sa bazom uspostavljena, migracija završena.")
}
