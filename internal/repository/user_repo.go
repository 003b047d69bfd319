package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"accountshop/internal/models"
)

// UserRepository handles all user database operations.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID finds a user by Telegram chat ID.
func (r *UserRepository) FindByID(telegramID int64) (*models.User, error) {
	var user models.User
	if err := r.db.Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreate returns the existing user or inserts a fresh row. The username
// is refreshed on every call since Telegram users rename themselves.
func (r *UserRepository) GetOrCreate(telegramID int64, username string) (*models.User, error) {
	user, err := r.FindByID(telegramID)
	if err == nil {
		if username != "" && user.Username != username {
			_ = r.db.Model(&models.User{}).Where("telegram_id = ?", telegramID).
				Update("username", username).Error
			user.Username = username
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newUser := &models.User{
		TelegramID: telegramID,
		Username:   username,
		CreatedAt:  time.Now().Unix(),
	}
	if err := r.db.Create(newUser).Error; err != nil {
		return nil, err
	}
	return newUser, nil
}

// Count returns the total number of users.
func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountAdmins returns the number of admin users.
func (r *UserRepository) CountAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error
	return count, err
}

// FindAllIDs returns every Telegram ID, used for broadcast.
func (r *UserRepository) FindAllIDs() ([]int64, error) {
	var ids []int64
	err := r.db.Model(&models.User{}).Pluck("telegram_id", &ids).Error
	return ids, err
}
