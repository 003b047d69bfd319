package repository

import (
	"testing"
	"time"

	"accountshop/internal/models"
)

func TestRateLimitAllowsUpToLimit(t *testing.T) {
	repo := NewSupportRepository(newTestDB(t))

	for i := 0; i < 5; i++ {
		rl, err := repo.CheckRateLimit(42, 5, true)
		if err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
		if !rl.Allowed {
			t.Fatalf("message %d blocked, want allowed", i+1)
		}
		if rl.Remaining != 5-i-1 {
			t.Errorf("message %d remaining = %d, want %d", i+1, rl.Remaining, 5-i-1)
		}
	}

	rl, err := repo.CheckRateLimit(42, 5, true)
	if err != nil {
		t.Fatalf("check over limit: %v", err)
	}
	if rl.Allowed {
		t.Error("sixth message allowed, want blocked")
	}
	if rl.MinutesLeft < 1 || rl.MinutesLeft > 60 {
		t.Errorf("minutes left = %d, want within (0, 60]", rl.MinutesLeft)
	}
}

func TestRateLimitPeekDoesNotConsume(t *testing.T) {
	repo := NewSupportRepository(newTestDB(t))

	for i := 0; i < 10; i++ {
		rl, err := repo.CheckRateLimit(42, 5, false)
		if err != nil {
			t.Fatalf("peek %d: %v", i, err)
		}
		if !rl.Allowed || rl.Remaining != 5 {
			t.Fatalf("peek %d = %+v, want allowed with full headroom", i, rl)
		}
	}
}

func TestRateLimitResetsAfterHour(t *testing.T) {
	db := newTestDB(t)
	repo := NewSupportRepository(db)

	for i := 0; i < 5; i++ {
		if _, err := repo.CheckRateLimit(42, 5, true); err != nil {
			t.Fatalf("fill: %v", err)
		}
	}

	// Push the window start past an hour ago.
	stale := time.Now().Unix() - 3700
	db.Model(&models.MessageRateLimit{}).Where("user_id = ?", 42).Update("last_reset", stale)

	rl, err := repo.CheckRateLimit(42, 5, true)
	if err != nil {
		t.Fatalf("check after reset: %v", err)
	}
	if !rl.Allowed || rl.Remaining != 4 {
		t.Errorf("after reset = %+v, want allowed with 4 remaining", rl)
	}
}

func TestSaveMessageUpsertsTicket(t *testing.T) {
	db := newTestDB(t)
	repo := NewSupportRepository(db)

	if err := repo.SaveMessage(&models.SupportMessage{UserID: 42, MessageText: "first"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveMessage(&models.SupportMessage{UserID: 42, MessageText: "second"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var tickets int64
	db.Model(&models.SupportTicket{}).Where("user_id = ?", 42).Count(&tickets)
	if tickets != 1 {
		t.Errorf("tickets = %d, want 1", tickets)
	}

	// A closed ticket reopens on the next message.
	if err := repo.CloseTicket(42); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := repo.SaveMessage(&models.SupportMessage{UserID: 42, MessageText: "third"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	var ticket models.SupportTicket
	db.First(&ticket, "user_id = ?", 42)
	if ticket.Status != "open" {
		t.Errorf("ticket status = %q, want open", ticket.Status)
	}
}

func TestThreadChronological(t *testing.T) {
	db := newTestDB(t)
	repo := NewSupportRepository(db)

	now := time.Now().Unix()
	for i, text := range []string{"one", "two", "three"} {
		msg := models.SupportMessage{UserID: 42, MessageText: text, CreatedAt: now + int64(i)}
		if err := repo.SaveMessage(&msg); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	msgs, err := repo.Thread(42, 10)
	if err != nil {
		t.Fatalf("thread: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3", len(msgs))
	}
	if msgs[0].MessageText != "one" || msgs[2].MessageText != "three" {
		t.Errorf("order wrong: %q .. %q", msgs[0].MessageText, msgs[2].MessageText)
	}
}

func TestThreadSameSecondKeepsInsertOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewSupportRepository(db)

	// Unix timestamps tie when messages land within the same second.
	now := time.Now().Unix()
	for _, text := range []string{"one", "two", "three"} {
		msg := models.SupportMessage{UserID: 42, MessageText: text, CreatedAt: now}
		if err := repo.SaveMessage(&msg); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	msgs, err := repo.Thread(42, 10)
	if err != nil {
		t.Fatalf("thread: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3", len(msgs))
	}
	for i, want := range []string{"one", "two", "three"} {
		if msgs[i].MessageText != want {
			t.Errorf("msgs[%d] = %q, want %q", i, msgs[i].MessageText, want)
		}
	}
}

func TestOpenTicketsAndMarkRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewSupportRepository(db)

	_ = repo.SaveMessage(&models.SupportMessage{UserID: 42, MessageText: "help"})
	_ = repo.SaveMessage(&models.SupportMessage{UserID: 42, MessageText: "please"})
	_ = repo.SaveMessage(&models.SupportMessage{UserID: 7, MessageText: "hi", IsFromAdmin: true, IsRead: true})

	tickets, err := repo.OpenTickets()
	if err != nil {
		t.Fatalf("open tickets: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("tickets = %d, want 2", len(tickets))
	}
	for _, tk := range tickets {
		if tk.UserID == 42 {
			if tk.UnreadCount != 2 {
				t.Errorf("unread = %d, want 2", tk.UnreadCount)
			}
			if tk.LastMessage != "please" {
				t.Errorf("last message = %q, want please", tk.LastMessage)
			}
		}
	}

	if err := repo.MarkRead(42); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	tickets, _ = repo.OpenTickets()
	for _, tk := range tickets {
		if tk.UserID == 42 && tk.UnreadCount != 0 {
			t.Errorf("unread after mark = %d, want 0", tk.UnreadCount)
		}
	}
}
