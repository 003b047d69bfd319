package bot

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"accountshop/internal/models"
	"accountshop/internal/pkg/utils"
	"accountshop/internal/session"
)

func (b *Bot) showSupportMenu(c tele.Context) error {
	_ = c.Respond()
	return b.editOrSend(c,
		"📞 <b>پشتیبانی</b>\n\nپیام شما مستقیم به دست ادمین می‌رسد و پاسخ از همین‌جا برایتان ارسال می‌شود.",
		supportKeyboard(), tele.ModeHTML)
}

func (b *Bot) startSupportMessage(c tele.Context) error {
	userID := c.Sender().ID

	rl, err := b.repos.Support.CheckRateLimit(userID, b.cfg.Support.HourlyLimit, false)
	if err != nil {
		b.logger.Error("rate-limit check failed", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	if !rl.Allowed {
		return c.Respond(&tele.CallbackResponse{
			Text:      fmt.Sprintf("⏳ سقف پیام‌های شما پر شده است. %d دقیقه دیگر دوباره تلاش کنید.", rl.MinutesLeft),
			ShowAlert: true,
		})
	}
	if err := b.sessions.Set(userID, session.StateSupportMessage, nil); err != nil {
		b.logger.Error("session set failed", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()
	return c.Send(fmt.Sprintf("✍️ پیام خود را بنویسید (%d پیام باقی‌مانده در این ساعت):", rl.Remaining))
}

func (b *Bot) handleSupportText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return c.Send("❌ پیام خالی قابل ارسال نیست!")
	}

	rl, err := b.repos.Support.CheckRateLimit(userID, b.cfg.Support.HourlyLimit, true)
	if err != nil {
		b.logger.Error("rate-limit check failed", zap.Error(err))
		return c.Send("❌ خطای داخلی. لطفاً بعداً تلاش کنید.")
	}
	if !rl.Allowed {
		_ = b.sessions.Clear(userID)
		return c.Send(fmt.Sprintf("⏳ سقف پیام‌های شما پر شده است. %d دقیقه دیگر دوباره تلاش کنید.", rl.MinutesLeft))
	}

	err = b.repos.Support.SaveMessage(&models.SupportMessage{
		UserID:      userID,
		MessageText: text,
	})
	if err != nil {
		b.logger.Error("failed to save support message", zap.Error(err))
		return c.Send("❌ خطای داخلی. لطفاً بعداً تلاش کنید.")
	}
	_ = b.sessions.Clear(userID)

	username := c.Sender().Username
	if username == "" {
		username = "-"
	}
	b.notify.NotifyAdmins(fmt.Sprintf(
		"📩 پیام پشتیبانی جدید\n\n👤 کاربر: %d (@%s)\n\n%s\n\nپاسخ: /sendto %d متن پاسخ",
		userID, username, text, userID,
	))
	return c.Send("✅ پیام شما ارسال شد. پاسخ ادمین از همین‌جا برایتان ارسال می‌شود.", backToMainKeyboard())
}

func (b *Bot) showSupportThread(c tele.Context) error {
	msgs, err := b.repos.Support.Thread(c.Sender().ID, 20)
	if err != nil {
		b.logger.Error("failed to load support thread", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()

	if len(msgs) == 0 {
		return b.editOrSend(c, "📭 هنوز پیامی به پشتیبانی نفرستاده‌اید.", backToMainKeyboard())
	}
	text := "💬 گفتگوی شما با پشتیبانی:\n\n"
	for _, m := range msgs {
		who := "👤 شما"
		if m.IsFromAdmin {
			who = "👨‍💻 پشتیبانی"
		}
		text += fmt.Sprintf("%s (%s):\n%s\n\n", who, utils.FormatUnix(m.CreatedAt), m.MessageText)
	}
	return b.editOrSend(c, text, backToMainKeyboard())
}

// ── Admin side ────────────────────────────────────────────────────────

// handleTicketsCommand lists open tickets for admins (/tickets).
func (b *Bot) handleTicketsCommand(c tele.Context) error {
	if !b.isAdmin(c.Sender().ID) {
		return nil
	}
	tickets, err := b.repos.Support.OpenTickets()
	if err != nil {
		b.logger.Error("failed to load open tickets", zap.Error(err))
		return c.Send("❌ خطای داخلی.")
	}
	if len(tickets) == 0 {
		return c.Send("📭 تیکت بازی وجود ندارد.")
	}
	text := "🎫 تیکت‌های باز:\n\n"
	for _, t := range tickets {
		preview := t.LastMessage
		if len([]rune(preview)) > 60 {
			preview = string([]rune(preview)[:60]) + "…"
		}
		text += fmt.Sprintf("👤 %d | 🔴 %d خوانده‌نشده | %s\n%s\nپاسخ: /sendto %d ...\n\n",
			t.UserID, t.UnreadCount, utils.FormatUnix(t.LastMessageAt), preview, t.UserID)
	}
	return c.Send(text)
}

// parseSendTo splits "/sendto <user_id> <text>" into its parts.
func parseSendTo(text string) (int64, string, bool) {
	parts := strings.SplitN(strings.TrimSpace(text), " ", 3)
	if len(parts) < 3 {
		return 0, "", false
	}
	userID, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	reply := strings.TrimSpace(parts[2])
	if err != nil || userID == 0 || reply == "" {
		return 0, "", false
	}
	return userID, reply, true
}

// handleSendToCommand delivers an admin reply: /sendto <user_id> <text>.
func (b *Bot) handleSendToCommand(c tele.Context) error {
	adminID := c.Sender().ID
	if !b.isAdmin(adminID) {
		return nil
	}
	userID, reply, ok := parseSendTo(c.Text())
	if !ok {
		return c.Send("استفاده: /sendto <user_id> <متن پیام>")
	}

	err := b.repos.Support.SaveMessage(&models.SupportMessage{
		UserID:      userID,
		AdminID:     adminID,
		MessageText: reply,
		IsFromAdmin: true,
		IsRead:      true,
	})
	if err != nil {
		b.logger.Error("failed to save admin reply", zap.Error(err))
		return c.Send("❌ خطای داخلی.")
	}
	if err := b.repos.Support.MarkRead(userID); err != nil {
		b.logger.Error("failed to mark thread read", zap.Int64("user_id", userID), zap.Error(err))
	}

	if err := b.notify.NotifyUser(userID, fmt.Sprintf("📬 پاسخ پشتیبانی:\n\n%s", reply)); err != nil {
		return c.Send(fmt.Sprintf("⚠️ پیام ذخیره شد ولی ارسال به کاربر %d ناموفق بود (احتمالاً بات را بلاک کرده است).", userID))
	}
	return c.Send(fmt.Sprintf("✅ پاسخ برای کاربر %d ارسال شد.", userID))
}
