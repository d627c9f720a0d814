package services

import (
	"recipebox/internal/config"
	"recipebox/internal/repository"

	"gorm.io/gorm"
)

func setupTestDB() *gorm.DB {
	db, err := repository.InitDB(config.Config{DatabaseURL: "sqlite://:memory:"})
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}
	if err := repository.AutoMigrate(db); err != nil {
		panic("failed to migrate database: " + err.Error())
	}
	return db
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
