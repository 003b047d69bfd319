package notifier

import (
	"go.uber.org/zap"

	"accountshop/internal/pkg/telegram"
)

// Notifier fans a message out to every configured admin. A single
// unreachable admin (blocked bot, deleted account) must not stop the rest,
// so individual send failures are logged and swallowed.
type Notifier struct {
	api      *telegram.BotAPI
	adminIDs []int64
	logger   *zap.Logger
}

func New(api *telegram.BotAPI, adminIDs []int64, logger *zap.Logger) *Notifier {
	return &Notifier{api: api, adminIDs: adminIDs, logger: logger}
}

// NotifyAdmins sends the text to every admin.
func (n *Notifier) NotifyAdmins(text string) {
	for _, id := range n.adminIDs {
		if err := n.api.SendMessage(id, text); err != nil {
			n.logger.Warn("admin notification failed",
				zap.Int64("admin_id", id), zap.Error(err))
		}
	}
}

// Broadcast sends the text to every given user. Blocked or deleted
// recipients are skipped; the caller gets the delivery counts.
func (n *Notifier) Broadcast(userIDs []int64, text string) (sent, failed int) {
	for _, id := range userIDs {
		if err := n.api.SendMessage(id, text); err != nil {
			n.logger.Warn("broadcast delivery failed",
				zap.Int64("user_id", id), zap.Error(err))
			failed++
			continue
		}
		sent++
	}
	return sent, failed
}

// NotifyUser sends the text to one user. The failure is logged and also
// returned so callers that care (admin replies) can report it.
func (n *Notifier) NotifyUser(userID int64, text string) error {
	if err := n.api.SendMessage(userID, text); err != nil {
		n.logger.Warn("user notification failed",
			zap.Int64("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}
