package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"accountshop/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Account{},
		&models.Order{}, &models.Transaction{},
		&models.CustomAccountType{}, &models.CustomAccountOrder{},
		&models.SupportMessage{}, &models.SupportTicket{}, &models.MessageRateLimit{},
		&models.ZibalTransaction{}, &models.CryptoTransaction{},
		&models.Session{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
