package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"accountshop/internal/models"
)

// SupportRepository handles support messages, tickets and the per-user
// rolling-hour rate limiter.
type SupportRepository struct {
	db *gorm.DB
}

func NewSupportRepository(db *gorm.DB) *SupportRepository {
	return &SupportRepository{db: db}
}

// RateLimitResult is the outcome of a rate-limit check.
type RateLimitResult struct {
	Allowed     bool
	Remaining   int
	MinutesLeft int
}

// CheckRateLimit enforces at most `limit` user messages per rolling hour.
// With increment=false it only reports the current headroom.
func (r *SupportRepository) CheckRateLimit(userID int64, limit int, increment bool) (*RateLimitResult, error) {
	now := time.Now().Unix()

	var row models.MessageRateLimit
	err := r.db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if increment {
			row = models.MessageRateLimit{UserID: userID, MessageCount: 1, LastReset: now}
			if err := r.db.Create(&row).Error; err != nil {
				return nil, err
			}
			return &RateLimitResult{Allowed: true, Remaining: limit - 1}, nil
		}
		return &RateLimitResult{Allowed: true, Remaining: limit}, nil
	}
	if err != nil {
		return nil, err
	}

	// Hour elapsed: counter resets.
	if now-row.LastReset > 3600 {
		if increment {
			err := r.db.Model(&models.MessageRateLimit{}).Where("user_id = ?", userID).
				Updates(map[string]interface{}{"message_count": 1, "last_reset": now}).Error
			if err != nil {
				return nil, err
			}
			return &RateLimitResult{Allowed: true, Remaining: limit - 1}, nil
		}
		return &RateLimitResult{Allowed: true, Remaining: limit}, nil
	}

	if row.MessageCount >= limit {
		secondsLeft := 3600 - (now - row.LastReset)
		return &RateLimitResult{
			Allowed:     false,
			Remaining:   0,
			MinutesLeft: int((secondsLeft + 59) / 60),
		}, nil
	}

	if increment {
		err := r.db.Model(&models.MessageRateLimit{}).Where("user_id = ?", userID).
			Update("message_count", gorm.Expr("message_count + 1")).Error
		if err != nil {
			return nil, err
		}
		return &RateLimitResult{Allowed: true, Remaining: limit - row.MessageCount - 1}, nil
	}
	return &RateLimitResult{Allowed: true, Remaining: limit - row.MessageCount}, nil
}

// SaveMessage appends one message to the log and touches the user's ticket.
func (r *SupportRepository) SaveMessage(msg *models.SupportMessage) error {
	now := time.Now().Unix()
	if msg.CreatedAt == 0 {
		msg.CreatedAt = now
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		ticket := models.SupportTicket{
			UserID:        msg.UserID,
			Status:        "open",
			LastMessageAt: now,
			CreatedAt:     now,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":          "open",
				"last_message_at": now,
			}),
		}).Create(&ticket).Error
	})
}

// Thread returns the conversation with one user, oldest first.
func (r *SupportRepository) Thread(userID int64, limit int) ([]models.SupportMessage, error) {
	if limit <= 0 {
		limit = 20
	}
	var msgs []models.SupportMessage
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Limit(limit).Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	// Reverse into chronological order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// OpenTickets returns open tickets with unread counts, newest activity first.
type OpenTicket struct {
	UserID        int64
	LastMessageAt int64
	UnreadCount   int64
	LastMessage   string
}

func (r *SupportRepository) OpenTickets() ([]OpenTicket, error) {
	var tickets []models.SupportTicket
	if err := r.db.Where("status = ?", "open").Order("last_message_at DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}

	out := make([]OpenTicket, 0, len(tickets))
	for _, t := range tickets {
		var unread int64
		if err := r.db.Model(&models.SupportMessage{}).
			Where("user_id = ? AND is_from_admin = ? AND is_read = ?", t.UserID, false, false).
			Count(&unread).Error; err != nil {
			return nil, err
		}
		var last models.SupportMessage
		// Second-resolution timestamps tie; id breaks the tie.
		_ = r.db.Where("user_id = ?", t.UserID).Order("created_at DESC, id DESC").First(&last).Error
		out = append(out, OpenTicket{
			UserID:        t.UserID,
			LastMessageAt: t.LastMessageAt,
			UnreadCount:   unread,
			LastMessage:   last.MessageText,
		})
	}
	return out, nil
}

// MarkRead flags all of a user's inbound messages as read.
func (r *SupportRepository) MarkRead(userID int64) error {
	return r.db.Model(&models.SupportMessage{}).
		Where("user_id = ? AND is_from_admin = ?", userID, false).
		Update("is_read", true).Error
}

// CloseTicket marks the per-user ticket closed.
func (r *SupportRepository) CloseTicket(userID int64) error {
	return r.db.Model(&models.SupportTicket{}).Where("user_id = ?", userID).
		Update("status", "closed").Error
}
