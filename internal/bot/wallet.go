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

const minDepositToman = 10000

func (b *Bot) showWallet(c tele.Context) error {
	user, err := b.repos.User.GetOrCreate(c.Sender().ID, c.Sender().Username)
	if err != nil {
		b.logger.Error("failed to load user", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()

	text := fmt.Sprintf("💳 <b>کیف پول شما</b>\n\n💰 موجودی: %s تومان", utils.FormatNumber(user.Balance))
	return b.editOrSend(c, text, walletKeyboard(), tele.ModeHTML)
}

func (b *Bot) showLedger(c tele.Context) error {
	txs, err := b.repos.Order.LedgerByUserID(c.Sender().ID, 15)
	if err != nil {
		b.logger.Error("failed to load ledger", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()

	if len(txs) == 0 {
		return b.editOrSend(c, "📜 هنوز تراکنشی ندارید.", backToMainKeyboard())
	}
	text := "📜 تراکنش‌های اخیر:\n\n"
	for _, tx := range txs {
		sign := "➕"
		if tx.Amount < 0 {
			sign = "➖"
		}
		text += fmt.Sprintf("%s %s تومان - %s\n%s\n\n",
			sign, utils.FormatNumber(tx.Amount), tx.Description, utils.FormatUnix(tx.CreatedAt))
	}
	return b.editOrSend(c, text, backToMainKeyboard())
}

// showDepositHistory lists the user's recent gateway payments, settled or not.
func (b *Bot) showDepositHistory(c tele.Context) error {
	userID := c.Sender().ID
	zibals, err := b.repos.Payment.ZibalByUser(userID, 10)
	if err != nil {
		b.logger.Error("failed to load zibal history", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	cryptos, err := b.repos.Payment.CryptoByUser(userID, 10)
	if err != nil {
		b.logger.Error("failed to load crypto history", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()

	if len(zibals) == 0 && len(cryptos) == 0 {
		return b.editOrSend(c, "🧾 هنوز پرداختی ثبت نکرده‌اید.", backToMainKeyboard())
	}

	text := "🧾 سوابق پرداخت شما:\n\n"
	for _, tx := range zibals {
		text += fmt.Sprintf("💳 %s تومان | %s\n%s\n\n",
			utils.FormatNumber(tx.Amount), zibalStatusLabel(tx.Status), utils.FormatUnix(tx.CreatedAt))
	}
	for _, tx := range cryptos {
		text += fmt.Sprintf("💎 %.2f دلار (%s) | %s\n%s\n\n",
			tx.AmountUSD, strings.ToUpper(tx.Currency), cryptoStatusLabel(tx.PaymentStatus), utils.FormatUnix(tx.CreatedAt))
	}
	return b.editOrSend(c, text, backToMainKeyboard())
}

func zibalStatusLabel(status string) string {
	switch status {
	case models.ZibalStatusSuccess:
		return "✅ موفق"
	case models.ZibalStatusFailed:
		return "❌ ناموفق"
	default:
		return "⏳ در انتظار"
	}
}

func cryptoStatusLabel(status string) string {
	switch status {
	case models.CryptoStatusFinished:
		return "✅ موفق"
	case models.CryptoStatusFailed, models.CryptoStatusExpired:
		return "❌ ناموفق"
	default:
		return "⏳ در انتظار"
	}
}

// ── Zibal deposit flow ────────────────────────────────────────────────

func (b *Bot) startZibalPayment(c tele.Context) error {
	_ = c.Respond()
	return b.editOrSend(c, "💳 مبلغ شارژ کیف پول را انتخاب کنید:", zibalAmountKeyboard())
}

func (b *Bot) handleZibalAmount(c tele.Context, data string) error {
	amount, err := strconv.ParseInt(strings.TrimPrefix(data, "zibal_amount_"), 10, 64)
	if err != nil {
		return c.Respond()
	}
	return b.createZibalPayment(c, amount)
}

func (b *Bot) startZibalCustomAmount(c tele.Context) error {
	if err := b.sessions.Set(c.Sender().ID, session.StateZibalAmount, nil); err != nil {
		b.logger.Error("session set failed", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()
	return c.Send(fmt.Sprintf("✏️ مبلغ مورد نظر را به تومان وارد کنید (حداقل %s تومان):",
		utils.FormatNumber(minDepositToman)))
}

func (b *Bot) handleZibalAmountText(c tele.Context) error {
	amount, err := utils.ParseAmount(c.Text())
	if err != nil || amount < minDepositToman {
		return c.Send(fmt.Sprintf("❌ لطفاً یک مبلغ معتبر (حداقل %s تومان) وارد کنید!",
			utils.FormatNumber(minDepositToman)))
	}
	_ = b.sessions.Clear(c.Sender().ID)
	return b.createZibalPayment(c, amount)
}

func (b *Bot) createZibalPayment(c tele.Context, amount int64) error {
	userID := c.Sender().ID
	description := fmt.Sprintf("شارژ کیف پول کاربر %d", userID)

	// Zibal amounts are rial; balances are toman.
	result, err := b.zibal.RequestPayment(amount*10, b.cfg.Payment.Zibal.CallbackURL, description)
	if err != nil {
		b.logger.Error("zibal request failed", zap.Int64("user_id", userID), zap.Error(err))
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "❌ خطا در ارتباط با درگاه پرداخت", ShowAlert: true})
		}
		return c.Send("❌ خطا در ارتباط با درگاه پرداخت. لطفاً بعداً تلاش کنید.")
	}

	err = b.repos.Payment.CreateZibal(&models.ZibalTransaction{
		UserID:      userID,
		TrackID:     result.TrackID,
		Amount:      amount,
		Status:      models.ZibalStatusPending,
		Description: description,
	})
	if err != nil {
		b.logger.Error("failed to store zibal transaction", zap.Error(err))
		return c.Send("❌ خطای داخلی. لطفاً بعداً تلاش کنید.")
	}
	_ = c.Respond()

	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.URL("💳 پرداخت", result.PaymentURL)),
		menu.Row(menu.Data("🔙 بازگشت", "wallet")),
	)
	text := fmt.Sprintf(
		"💳 پرداخت %s تومان\n\nروی دکمه زیر بزنید و پرداخت را تکمیل کنید.\nپس از پرداخت، موجودی به صورت خودکار شارژ می‌شود.",
		utils.FormatNumber(amount),
	)
	return b.editOrSend(c, text, menu)
}

// ── Crypto deposit flow ───────────────────────────────────────────────

func (b *Bot) startCryptoPayment(c tele.Context) error {
	_ = c.Respond()
	return b.editOrSend(c, "💎 ارز مورد نظر برای پرداخت را انتخاب کنید:", cryptoCurrencyKeyboard())
}

func (b *Bot) handleCryptoCurrency(c tele.Context, data string) error {
	currency := strings.TrimPrefix(data, "crypto_currency_")
	err := b.sessions.Set(c.Sender().ID, session.StateCryptoAmount, session.Values{"currency": currency})
	if err != nil {
		b.logger.Error("session set failed", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()
	return c.Send(fmt.Sprintf("✏️ مبلغ شارژ را به تومان وارد کنید (حداقل %s تومان):",
		utils.FormatNumber(minDepositToman)))
}

func (b *Bot) handleCryptoAmountText(c tele.Context, values session.Values) error {
	userID := c.Sender().ID
	currency := values["currency"]
	if currency == "" {
		_ = b.sessions.Clear(userID)
		return c.Send("❌ جلسه منقضی شده است. دوباره تلاش کنید.", backToMainKeyboard())
	}

	amountToman, err := utils.ParseAmount(c.Text())
	if err != nil || amountToman < minDepositToman {
		return c.Send(fmt.Sprintf("❌ لطفاً یک مبلغ معتبر (حداقل %s تومان) وارد کنید!",
			utils.FormatNumber(minDepositToman)))
	}
	_ = b.sessions.Clear(userID)

	amountUSD := float64(amountToman) / float64(b.cfg.Payment.USDToToman)
	orderID := utils.GenerateOrderID()

	result, err := b.crypto.CreatePayment(amountUSD, currency, orderID, b.cfg.Payment.NOWPayments.CallbackURL)
	if err != nil {
		b.logger.Error("nowpayments create failed", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("❌ خطا در ارتباط با درگاه ارز دیجیتال. لطفاً بعداً تلاش کنید.")
	}

	err = b.repos.Payment.CreateCrypto(&models.CryptoTransaction{
		UserID:        userID,
		PaymentID:     result.PaymentID,
		OrderID:       orderID,
		AmountUSD:     amountUSD,
		AmountCrypto:  result.PayAmount,
		AmountToman:   amountToman,
		Currency:      currency,
		PayAddress:    result.PayAddress,
		PaymentStatus: models.CryptoStatusWaiting,
	})
	if err != nil {
		b.logger.Error("failed to store crypto transaction", zap.Error(err))
		return c.Send("❌ خطای داخلی. لطفاً بعداً تلاش کنید.")
	}

	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("🔄 بررسی وضعیت پرداخت", "crypto_check_"+result.PaymentID)),
		menu.Row(menu.Data("🔙 بازگشت", "wallet")),
	)
	text := fmt.Sprintf(
		"💎 پرداخت با %s\n\n📍 <b>آدرس کیف پول:</b>\n<code>%s</code>\n\n"+
			"💰 مبلغ دقیق: <code>%v</code> %s\n🆔 شناسه پرداخت: <code>%s</code>\n\n"+
			"پس از واریز، روی «بررسی وضعیت پرداخت» بزنید.",
		strings.ToUpper(currency), result.PayAddress, result.PayAmount,
		strings.ToUpper(currency), result.PaymentID,
	)
	return c.Send(text, menu, tele.ModeHTML)
}

// handleCryptoCheck polls the gateway and credits the wallet when the
// payment reaches finished. The settle guard makes repeated taps harmless.
func (b *Bot) handleCryptoCheck(c tele.Context, data string) error {
	paymentID := strings.TrimPrefix(data, "crypto_check_")

	tx, err := b.repos.Payment.FindCryptoByPaymentID(paymentID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ تراکنش یافت نشد!", ShowAlert: true})
	}
	if tx.UserID != c.Sender().ID {
		return c.Respond(&tele.CallbackResponse{Text: "❌ دسترسی غیرمجاز", ShowAlert: true})
	}
	if tx.PaymentStatus == models.CryptoStatusFinished {
		return c.Respond(&tele.CallbackResponse{Text: "✅ این پرداخت قبلاً تایید شده است.", ShowAlert: true})
	}

	status, err := b.crypto.PaymentStatus(paymentID)
	if err != nil {
		b.logger.Error("nowpayments status failed", zap.String("payment_id", paymentID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا در استعلام وضعیت", ShowAlert: true})
	}

	if status != models.CryptoStatusFinished {
		_ = b.repos.Payment.UpdateCryptoStatus(paymentID, status)
		return c.Respond(&tele.CallbackResponse{
			Text:      fmt.Sprintf("⏳ وضعیت پرداخت: %s", status),
			ShowAlert: true,
		})
	}

	settled, err := b.repos.Payment.MarkCryptoFinished(paymentID)
	if err != nil {
		b.logger.Error("failed to settle crypto payment", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطای داخلی", ShowAlert: true})
	}
	if settled {
		desc := fmt.Sprintf("شارژ کیف پول با ارز دیجیتال (%s)", strings.ToUpper(tx.Currency))
		if err := b.wallet.Deposit(tx.UserID, tx.AmountToman, desc); err != nil {
			b.logger.Error("crypto deposit credit failed", zap.Error(err))
			return c.Respond(&tele.CallbackResponse{Text: "❌ خطای داخلی", ShowAlert: true})
		}
		b.notify.NotifyAdmins(fmt.Sprintf(
			"💎 شارژ کریپتو موفق\n\n👤 کاربر: %d\n💰 مبلغ: %s تومان",
			tx.UserID, utils.FormatNumber(tx.AmountToman),
		))
	}
	_ = c.Send(fmt.Sprintf("✅ پرداخت تایید شد!\n\n💰 %s تومان به کیف پول شما اضافه شد.",
		utils.FormatNumber(tx.AmountToman)), backToMainKeyboard())
	return c.Respond(&tele.CallbackResponse{Text: "✅ پرداخت تایید شد!", ShowAlert: true})
}
