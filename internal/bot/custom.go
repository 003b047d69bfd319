package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"accountshop/internal/models"
	"accountshop/internal/pkg/utils"
	"accountshop/internal/service"
	"accountshop/internal/session"
)

// Unpaid custom orders are cancelled by the cron sweep after this long.
const customOrderTTL = 48 * time.Hour

func (b *Bot) showAccountTypes(c tele.Context) error {
	types, err := b.repos.Custom.FindActiveTypes()
	if err != nil {
		b.logger.Error("failed to load account types", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()

	if len(types) == 0 {
		return b.editOrSend(c, "🤖 در حال حاضر سرویس ساخت اکانت فعالی وجود ندارد.", backToMainKeyboard())
	}
	return b.editOrSend(c, "🤖 <b>ساخت اکانت سفارشی</b>\n\nنوع اکانت مورد نظر را انتخاب کنید:",
		accountTypesKeyboard(types), tele.ModeHTML)
}

func (b *Bot) showAccountTypeDetail(c tele.Context, data string) error {
	typeID, err := strconv.ParseUint(strings.TrimPrefix(data, "acc_type_"), 10, 64)
	if err != nil {
		return c.Respond()
	}
	accType, err := b.repos.Custom.FindType(uint(typeID))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ این سرویس یافت نشد!", ShowAlert: true})
	}
	_ = c.Respond()

	text := fmt.Sprintf(
		"🤖 <b>%s</b>\n\n📝 %s\n\n📋 <b>شرایط:</b>\n%s\n\n💰 قیمت: %s تومان\n⏱ زمان تحویل: %d ساعت",
		accType.Name, accType.Description, accType.Rules,
		utils.FormatNumber(accType.Price), accType.DeliveryTimeHours,
	)
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("🛒 ثبت سفارش", fmt.Sprintf("acc_order_%d", accType.ID))),
		menu.Row(menu.Data("🔙 بازگشت", "account_maker")),
	)
	return b.editOrSend(c, text, menu, tele.ModeHTML)
}

func (b *Bot) startCustomOrder(c tele.Context, data string) error {
	typeID := strings.TrimPrefix(data, "acc_order_")
	if _, err := b.repos.Custom.FindType(uint(utils.ParseInt(typeID, 0))); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ این سرویس یافت نشد!", ShowAlert: true})
	}
	err := b.sessions.Set(c.Sender().ID, session.StateCustomEmail, session.Values{"type_id": typeID})
	if err != nil {
		b.logger.Error("session set failed", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()
	return c.Send("📧 ایمیل مورد نظر برای ساخت اکانت را وارد کنید:")
}

func (b *Bot) handleCustomOrderText(c tele.Context, state session.State, values session.Values) error {
	userID := c.Sender().ID

	switch state {
	case session.StateCustomEmail:
		email := strings.TrimSpace(c.Text())
		if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
			return c.Send("❌ لطفاً یک ایمیل معتبر وارد کنید!")
		}
		values["email"] = email
		if _, err := b.sessions.Advance(userID, values); err != nil {
			b.logger.Error("session advance failed", zap.Error(err))
			return c.Send("❌ خطای داخلی. لطفاً بعداً تلاش کنید.")
		}
		return c.Send("🔑 رمز عبور مورد نظر را وارد کنید (حداقل ۶ کاراکتر):")

	case session.StateCustomPassword:
		password := strings.TrimSpace(c.Text())
		if len(password) < 6 {
			return c.Send("❌ رمز عبور باید حداقل ۶ کاراکتر باشد!")
		}
		accType, err := b.repos.Custom.FindType(uint(utils.ParseInt(values["type_id"], 0)))
		if err != nil {
			_ = b.sessions.Clear(userID)
			return c.Send("❌ این سرویس دیگر فعال نیست.", backToMainKeyboard())
		}

		order := &models.CustomAccountOrder{
			UserID:        userID,
			AccountTypeID: accType.ID,
			Email:         values["email"],
			Password:      password,
			ExpiresAt:     time.Now().Add(customOrderTTL).Unix(),
		}
		if err := b.repos.Custom.CreateOrder(order); err != nil {
			b.logger.Error("failed to create custom order", zap.Error(err))
			return c.Send("❌ خطای داخلی. لطفاً بعداً تلاش کنید.")
		}
		_ = b.sessions.Clear(userID)

		b.notify.NotifyAdmins(fmt.Sprintf(
			"🤖 سفارش ساخت اکانت جدید\n\n🆔 سفارش: %d\n👤 کاربر: %d\n📦 نوع: %s\n📧 ایمیل: %s\n💰 قیمت: %s تومان\n\nتایید/رد: پنل ادمین ← سفارش‌های در انتظار",
			order.ID, userID, accType.Name, order.Email, utils.FormatNumber(accType.Price),
		))
		return c.Send(fmt.Sprintf(
			"✅ سفارش شما ثبت شد!\n\n🆔 شماره سفارش: %d\n📦 نوع: %s\n💰 قیمت: %s تومان\n\n"+
				"سفارش شما پس از بررسی توسط ادمین تایید می‌شود. پس از تایید، از بخش «سفارش‌های من» پرداخت را انجام دهید.",
			order.ID, accType.Name, utils.FormatNumber(accType.Price),
		), backToMainKeyboard())
	}
	return nil
}

// handleCustomConfirm moves an admin-approved order to confirmed so the
// user can pay for it.
func (b *Bot) handleCustomConfirm(c tele.Context, data string) error {
	orderID := uint(utils.ParseInt(strings.TrimPrefix(data, "acc_confirm_"), 0))
	order, err := b.repos.Custom.FindOrder(orderID)
	if err != nil || order.UserID != c.Sender().ID {
		return c.Respond(&tele.CallbackResponse{Text: "❌ سفارش یافت نشد!", ShowAlert: true})
	}

	moved, err := b.repos.Custom.UpdateOrderStatus(orderID,
		models.CustomStatusApproved, models.CustomStatusConfirmed, nil)
	if err != nil {
		b.logger.Error("failed to confirm custom order", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطای داخلی", ShowAlert: true})
	}
	if !moved {
		return c.Respond(&tele.CallbackResponse{Text: "❌ این سفارش در وضعیت تایید نیست!", ShowAlert: true})
	}
	_ = c.Respond()

	price := int64(0)
	if accType, err := b.repos.Custom.FindType(order.AccountTypeID); err == nil {
		price = accType.Price
	}
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("💳 پرداخت از کیف پول", fmt.Sprintf("acc_pay_%d", orderID))),
		menu.Row(menu.Data("🔙 بازگشت", "back_to_main")),
	)
	return b.editOrSend(c, fmt.Sprintf(
		"✅ سفارش %d تایید شد.\n\n💰 مبلغ قابل پرداخت: %s تومان",
		orderID, utils.FormatNumber(price)), menu)
}

func (b *Bot) handleCustomPay(c tele.Context, data string) error {
	userID := c.Sender().ID
	orderID := uint(utils.ParseInt(strings.TrimPrefix(data, "acc_pay_"), 0))

	err := b.wallet.PayCustomOrder(userID, orderID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInsufficientBalance):
		return c.Respond(&tele.CallbackResponse{
			Text: "❌ موجودی کیف پول کافی نیست! ابتدا کیف پول را شارژ کنید.", ShowAlert: true})
	case errors.Is(err, service.ErrAlreadyPaid):
		return c.Respond(&tele.CallbackResponse{Text: "✅ این سفارش قبلاً پرداخت شده است.", ShowAlert: true})
	case errors.Is(err, service.ErrOrderNotPayable):
		return c.Respond(&tele.CallbackResponse{Text: "❌ این سفارش قابل پرداخت نیست!", ShowAlert: true})
	case errors.Is(err, service.ErrProductNotFound):
		return c.Respond(&tele.CallbackResponse{Text: "❌ سفارش یافت نشد!", ShowAlert: true})
	default:
		b.logger.Error("custom order payment failed", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطای داخلی", ShowAlert: true})
	}
	_ = c.Respond()

	if order, err := b.repos.Custom.FindOrder(orderID); err == nil {
		typeName := ""
		if accType, err := b.repos.Custom.FindType(order.AccountTypeID); err == nil {
			typeName = accType.Name
		}
		b.notify.NotifyAdmins(fmt.Sprintf(
			"💰 سفارش اکانت پرداخت شد\n\n🆔 سفارش: %d\n👤 کاربر: %d\n📦 نوع: %s\n\nبرای تحویل: پنل ادمین ← سفارش‌های در انتظار",
			orderID, userID, typeName,
		))
	}
	return b.editOrSend(c,
		fmt.Sprintf("✅ پرداخت سفارش %d انجام شد!\n\nاکانت شما در حال ساخت است و پس از آماده شدن برای شما ارسال می‌شود.", orderID),
		backToMainKeyboard())
}

func (b *Bot) showMyCustomOrders(c tele.Context) error {
	orders, err := b.repos.Custom.FindOrdersByUser(c.Sender().ID, 10)
	if err != nil {
		b.logger.Error("failed to load custom orders", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()

	if len(orders) == 0 {
		return b.editOrSend(c, "📦 هنوز سفارش ساخت اکانتی ندارید.", backToMainKeyboard())
	}

	typeNames := map[uint]string{}
	if types, err := b.repos.Custom.FindAllTypes(); err == nil {
		for _, t := range types {
			typeNames[t.ID] = t.Name
		}
	}

	text := "📦 سفارش‌های ساخت اکانت شما:\n\n"
	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	for _, o := range orders {
		text += fmt.Sprintf("🆔 %d | %s | %s\n%s\n\n",
			o.ID, typeNames[o.AccountTypeID], customStatusLabel(o.Status), utils.FormatUnix(o.CreatedAt))
		switch o.Status {
		case models.CustomStatusApproved:
			rows = append(rows, menu.Row(menu.Data(
				fmt.Sprintf("✅ تایید و پرداخت سفارش %d", o.ID), fmt.Sprintf("acc_confirm_%d", o.ID))))
		case models.CustomStatusConfirmed:
			rows = append(rows, menu.Row(menu.Data(
				fmt.Sprintf("💳 پرداخت سفارش %d", o.ID), fmt.Sprintf("acc_pay_%d", o.ID))))
		}
	}
	rows = append(rows, menu.Row(menu.Data("🔙 بازگشت", "back_to_main")))
	menu.Inline(rows...)
	return b.editOrSend(c, text, menu)
}

func customStatusLabel(status string) string {
	switch status {
	case models.CustomStatusWaitingApproval:
		return "⏳ در انتظار تایید ادمین"
	case models.CustomStatusApproved:
		return "✅ تایید شده (منتظر پرداخت)"
	case models.CustomStatusRejected:
		return "❌ رد شده"
	case models.CustomStatusConfirmed:
		return "💳 در انتظار پرداخت"
	case models.CustomStatusPaid:
		return "🔨 در حال ساخت"
	case models.CustomStatusDelivered:
		return "📬 تحویل داده شده"
	case models.CustomStatusExpired:
		return "⌛️ منقضی شده"
	default:
		return status
	}
}
