package models

// SupportMessage is one entry in the flat per-user support log.
type SupportMessage struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID      int64  `gorm:"column:user_id;index" json:"user_id"`
	AdminID     int64  `gorm:"column:admin_id" json:"admin_id"`
	MessageText string `gorm:"column:message_text;type:text" json:"message_text"`
	IsFromAdmin bool   `gorm:"column:is_from_admin;default:false" json:"is_from_admin"`
	IsRead      bool   `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt   int64  `gorm:"column:created_at" json:"created_at"`
}

func (SupportMessage) TableName() string {
	return "support_messages"
}

// SupportTicket is a denormalized per-user pointer to the conversation:
// open/closed status plus last-message time.
type SupportTicket struct {
	ID            uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID        int64  `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	Status        string `gorm:"column:status;size:50;default:'open'" json:"status"`
	LastMessageAt int64  `gorm:"column:last_message_at" json:"last_message_at"`
	CreatedAt     int64  `gorm:"column:created_at" json:"created_at"`
}

func (SupportTicket) TableName() string {
	return "support_tickets"
}

// MessageRateLimit tracks the rolling-hour outbound message counter per user.
type MessageRateLimit struct {
	ID           uint  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID       int64 `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	MessageCount int   `gorm:"column:message_count;default:1" json:"message_count"`
	LastReset    int64 `gorm:"column:last_reset" json:"last_reset"`
}

func (MessageRateLimit) TableName() string {
	return "message_rate_limits"
}
