package bot

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"accountshop/internal/config"
	"accountshop/internal/notifier"
	"accountshop/internal/payment"
	"accountshop/internal/repository"
	"accountshop/internal/service"
	"accountshop/internal/session"
)

// Bot wraps the telebot instance and all chat handlers.
type Bot struct {
	tb         *tele.Bot
	webhook    *tele.Webhook
	useWebhook bool
	cfg        *config.Config
	repos      *BotRepos
	purchases  *service.PurchaseService
	wallet     *service.WalletService
	zibal      payment.RedirectGateway
	crypto     payment.CryptoGateway
	sessions   *session.Manager
	notify     *notifier.Notifier
	logger     *zap.Logger
}

// BotRepos bundles all repositories needed by bot handlers.
type BotRepos struct {
	User    *repository.UserRepository
	Product *repository.ProductRepository
	Order   *repository.OrderRepository
	Custom  *repository.CustomRepository
	Support *repository.SupportRepository
	Payment *repository.PaymentRepository
}

// Deps bundles the collaborators injected into the bot.
type Deps struct {
	Repos     *BotRepos
	Purchases *service.PurchaseService
	Wallet    *service.WalletService
	Zibal     payment.RedirectGateway
	Crypto    payment.CryptoGateway
	Sessions  *session.Manager
	Notifier  *notifier.Notifier
}

// New creates and configures a new Bot instance. The update transport
// (webhook or long polling) is a configuration choice.
func New(cfg *config.Config, deps *Deps, logger *zap.Logger) (*Bot, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Bot.UpdateMode))
	if mode == "" {
		mode = "auto"
	}

	useWebhook := true
	switch mode {
	case "polling":
		useWebhook = false
	case "webhook":
		useWebhook = true
	default: // auto
		useWebhook = strings.TrimSpace(cfg.Bot.WebhookURL) != ""
	}

	var poller tele.Poller
	var webhook *tele.Webhook
	if useWebhook {
		if strings.TrimSpace(cfg.Bot.WebhookURL) == "" {
			return nil, fmt.Errorf("BOT_WEBHOOK_URL is required when BOT_UPDATE_MODE=webhook")
		}
		webhook = &tele.Webhook{
			Listen:   "", // mounted on Echo instead of telebot's own server
			Endpoint: &tele.WebhookEndpoint{PublicURL: cfg.Bot.WebhookURL},
		}
		poller = webhook
	} else {
		poller = &tele.LongPoller{Timeout: 10 * time.Second}
	}

	pref := tele.Settings{
		Token:  cfg.Bot.Token,
		Poller: poller,
		OnError: func(err error, c tele.Context) {
			logger.Error("telebot error", zap.Error(err))
		},
	}

	tb, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telebot: %w", err)
	}

	b := &Bot{
		tb:         tb,
		webhook:    webhook,
		useWebhook: useWebhook,
		cfg:        cfg,
		repos:      deps.Repos,
		purchases:  deps.Purchases,
		wallet:     deps.Wallet,
		zibal:      deps.Zibal,
		crypto:     deps.Crypto,
		sessions:   deps.Sessions,
		notify:     deps.Notifier,
		logger:     logger,
	}

	b.registerHandlers()
	return b, nil
}

// WebhookHandler returns the webhook handler for mounting on Echo.
// Returns nil when running in long-polling mode.
func (b *Bot) WebhookHandler() http.Handler {
	if b.webhook == nil {
		return nil
	}
	return b.webhook
}

// Start begins polling/webhook processing.
func (b *Bot) Start() {
	if b.useWebhook {
		b.logger.Info("Starting Telegram bot",
			zap.String("mode", "webhook"), zap.String("webhook_url", b.cfg.Bot.WebhookURL))
	} else {
		if err := b.tb.RemoveWebhook(true); err != nil {
			b.logger.Warn("Failed to remove webhook before long polling", zap.Error(err))
		}
		b.logger.Info("Starting Telegram bot", zap.String("mode", "polling"))
	}
	b.tb.Start()
}

// Stop gracefully shuts down the bot.
func (b *Bot) Stop() {
	b.tb.Stop()
}

func (b *Bot) isAdmin(userID int64) bool {
	return b.cfg.Bot.IsAdmin(userID)
}

// registerHandlers sets up all bot message and callback handlers.
func (b *Bot) registerHandlers() {
	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle("/tickets", b.handleTicketsCommand)
	b.tb.Handle("/sendto", b.handleSendToCommand)
	b.tb.Handle("/broadcast", b.handleBroadcastCommand)
	b.tb.Handle(tele.OnText, b.handleText)
	b.tb.Handle(tele.OnCallback, b.handleCallback)
}

// ── /start ────────────────────────────────────────────────────────────

func (b *Bot) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	_ = b.sessions.Clear(userID)
	if _, err := b.repos.User.GetOrCreate(userID, c.Sender().Username); err != nil {
		b.logger.Error("Failed to create user", zap.Int64("user_id", userID), zap.Error(err))
	}

	text := fmt.Sprintf("🌟 سلام %s عزیز!\nبه فروشگاه اکانت خوش آمدید.", c.Sender().FirstName)
	return c.Send(text, mainMenuKeyboard(b.isAdmin(userID)))
}

func (b *Bot) sendMainMenu(c tele.Context) error {
	return b.editOrSend(c, "🏠 منوی اصلی:", mainMenuKeyboard(b.isAdmin(c.Sender().ID)))
}

// editOrSend edits the callback's message when possible, otherwise sends a
// fresh one.
func (b *Bot) editOrSend(c tele.Context, text string, opts ...interface{}) error {
	if c.Callback() != nil {
		if err := c.Edit(text, opts...); err == nil {
			return nil
		}
	}
	return c.Send(text, opts...)
}

// ── Text routing ──────────────────────────────────────────────────────

// handleText dispatches free text by the sender's stored session state.
// Messages that arrive with no active flow are dropped.
func (b *Bot) handleText(c tele.Context) error {
	userID := c.Sender().ID

	state, values, err := b.sessions.Get(userID)
	if err != nil {
		b.logger.Error("session lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil
	}
	if state == session.StateIdle {
		return nil
	}

	switch state {
	case session.StateCustomEmail, session.StateCustomPassword:
		return b.handleCustomOrderText(c, state, values)
	case session.StateSupportMessage:
		return b.handleSupportText(c)
	case session.StateZibalAmount:
		return b.handleZibalAmountText(c)
	case session.StateCryptoAmount:
		return b.handleCryptoAmountText(c, values)
	}

	if strings.HasPrefix(string(state), "admin_") {
		if !b.isAdmin(userID) {
			return b.sessions.Clear(userID)
		}
		return b.handleAdminText(c, state, values)
	}

	b.logger.Debug("text in unknown state", zap.String("state", string(state)))
	return nil
}

// ── Callback routing ──────────────────────────────────────────────────

func (b *Bot) handleCallback(c tele.Context) error {
	data := strings.TrimSpace(c.Callback().Data)

	switch {
	case data == "back_to_main":
		_ = b.sessions.Clear(c.Sender().ID)
		_ = c.Respond()
		return b.sendMainMenu(c)

	// Shop
	case data == "products_list":
		return b.showProducts(c)
	case strings.HasPrefix(data, "product_"):
		return b.showProductDetail(c, data)
	case strings.HasPrefix(data, "buy_"):
		return b.handleBuy(c, data)
	case data == "my_orders":
		return b.showMyOrders(c)

	// Wallet
	case data == "wallet":
		return b.showWallet(c)
	case data == "ledger":
		return b.showLedger(c)
	case data == "deposit_history":
		return b.showDepositHistory(c)
	case data == "payment_zibal":
		return b.startZibalPayment(c)
	case strings.HasPrefix(data, "zibal_amount_"):
		return b.handleZibalAmount(c, data)
	case data == "zibal_custom_amount":
		return b.startZibalCustomAmount(c)
	case data == "payment_crypto":
		return b.startCryptoPayment(c)
	case strings.HasPrefix(data, "crypto_currency_"):
		return b.handleCryptoCurrency(c, data)
	case strings.HasPrefix(data, "crypto_check_"):
		return b.handleCryptoCheck(c, data)

	// Custom account maker
	case data == "account_maker":
		return b.showAccountTypes(c)
	case strings.HasPrefix(data, "acc_type_"):
		return b.showAccountTypeDetail(c, data)
	case strings.HasPrefix(data, "acc_order_"):
		return b.startCustomOrder(c, data)
	case strings.HasPrefix(data, "acc_confirm_"):
		return b.handleCustomConfirm(c, data)
	case strings.HasPrefix(data, "acc_pay_"):
		return b.handleCustomPay(c, data)
	case data == "my_custom_orders":
		return b.showMyCustomOrders(c)

	// Support
	case data == "help_support":
		return b.showSupportMenu(c)
	case data == "help_send_message":
		return b.startSupportMessage(c)
	case data == "help_my_messages":
		return b.showSupportThread(c)

	// Admin
	case strings.HasPrefix(data, "admin_"):
		if !b.isAdmin(c.Sender().ID) {
			return c.Respond(&tele.CallbackResponse{Text: "❌ دسترسی غیرمجاز", ShowAlert: true})
		}
		return b.handleAdminCallback(c, data)

	default:
		b.logger.Debug("Unknown callback", zap.String("data", data))
		return c.Respond()
	}
}
