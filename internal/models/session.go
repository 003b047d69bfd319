package models

// Session stores where a user is inside a multi-message flow. It lives in the
// same SQLite file as everything else, so a restart does not lose in-flight
// conversations, and ExpiresAt lets the cron sweep drop stale ones.
type Session struct {
	UserID    int64  `gorm:"column:user_id;primaryKey" json:"user_id"`
	State     string `gorm:"column:state;size:100" json:"state"`
	Data      string `gorm:"column:data;type:text" json:"data"`
	ExpiresAt int64  `gorm:"column:expires_at;index" json:"expires_at"`
	UpdatedAt int64  `gorm:"column:updated_at" json:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}
