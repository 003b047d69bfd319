package telegram

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

// BotAPI is a direct Telegram Bot API client for the paths that run outside
// a telebot update context: admin fan-out and payment-callback replies.
type BotAPI struct {
	client *resty.Client
}

// NewBotAPI creates a new direct Telegram Bot API client.
func NewBotAPI(token string) *BotAPI {
	return &BotAPI{
		client: resty.New().SetBaseURL("https://api.telegram.org/bot" + token),
	}
}

// NewBotAPIWithBase is used by tests to point the client at a fake server.
func NewBotAPIWithBase(baseURL string) *BotAPI {
	return &BotAPI{client: resty.New().SetBaseURL(baseURL)}
}

// Call makes a raw API call to the Telegram Bot API.
func (b *BotAPI) Call(method string, params map[string]interface{}) error {
	resp, err := b.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(params).
		Post("/" + method)
	if err != nil {
		return fmt.Errorf("telegram API call %s failed: %w", method, err)
	}
	if resp.IsError() {
		return fmt.Errorf("telegram API call %s returned status %d", method, resp.StatusCode())
	}
	return nil
}

// SendMessage sends an HTML-formatted text message.
func (b *BotAPI) SendMessage(chatID int64, text string) error {
	return b.Call("sendMessage", map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
}
