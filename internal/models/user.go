package models

// User maps to the `users` table.
// Primary key is the Telegram chat ID.
type User struct {
	TelegramID int64  `gorm:"column:telegram_id;primaryKey" json:"telegram_id"`
	Username   string `gorm:"column:username;size:300" json:"username"`
	Balance    int64  `gorm:"column:balance;default:0" json:"balance"`
	IsAdmin    bool   `gorm:"column:is_admin;default:false" json:"is_admin"`
	CreatedAt  int64  `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
