package bootstrap

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"accountshop/internal/models"
)

// MigrateAndSeed ensures required tables exist and the configured admins have
// user rows.
func MigrateAndSeed(db *gorm.DB, adminIDs []int64) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	if err := seedAdmins(db, adminIDs); err != nil {
		return fmt.Errorf("seed admins failed: %w", err)
	}
	return nil
}

func allModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Product{},
		&models.Account{},
		&models.Order{},
		&models.Transaction{},
		&models.CustomAccountType{},
		&models.CustomAccountOrder{},
		&models.SupportMessage{},
		&models.SupportTicket{},
		&models.MessageRateLimit{},
		&models.ZibalTransaction{},
		&models.CryptoTransaction{},
		&models.Session{},
	}
}

func seedAdmins(db *gorm.DB, adminIDs []int64) error {
	now := time.Now().Unix()
	for _, id := range adminIDs {
		admin := models.User{
			TelegramID: id,
			IsAdmin:    true,
			CreatedAt:  now,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "telegram_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"is_admin": true}),
		}).Create(&admin).Error
		if err != nil {
			return err
		}
	}
	return nil
}
