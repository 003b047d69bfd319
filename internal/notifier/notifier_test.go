package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"accountshop/internal/pkg/telegram"
)

func TestBroadcastSkipsFailedDeliveries(t *testing.T) {
	var delivered []int64
	tg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ChatID int64 `json:"chat_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		// User 2 has blocked the bot.
		if body.ChatID == 2 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		delivered = append(delivered, body.ChatID)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer tg.Close()

	n := New(telegram.NewBotAPIWithBase(tg.URL), nil, zap.NewNop())
	sent, failed := n.Broadcast([]int64{1, 2, 3}, "سلام")
	if sent != 2 || failed != 1 {
		t.Errorf("sent/failed = %d/%d, want 2/1", sent, failed)
	}
	if len(delivered) != 2 || delivered[0] != 1 || delivered[1] != 3 {
		t.Errorf("delivered = %v, want [1 3]", delivered)
	}
}
