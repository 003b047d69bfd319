package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"accountshop/internal/models"
	"accountshop/internal/pkg/utils"
	"accountshop/internal/session"
)

// handleAdminCallback routes the admin panel. Access is already checked by
// the caller.
func (b *Bot) handleAdminCallback(c tele.Context, data string) error {
	switch {
	case data == "admin_menu":
		_ = c.Respond()
		return b.editOrSend(c, "🔧 <b>پنل ادمین</b>", adminMenuKeyboard(), tele.ModeHTML)

	case data == "admin_add_product":
		return b.startAdminFlow(c, session.StateAdminProductName, nil,
			"➕ نام سایت/سرویس محصول جدید را وارد کنید:")

	case data == "admin_add_account":
		return b.adminStartAddAccount(c)

	case data == "admin_products":
		return b.adminShowProducts(c)
	case strings.HasPrefix(data, "admin_prod_toggle_"):
		return b.adminToggleProduct(c, data)
	case strings.HasPrefix(data, "admin_prod_price_"):
		productID := strings.TrimPrefix(data, "admin_prod_price_")
		return b.startAdminFlow(c, session.StateAdminEditPrice, session.Values{"product_id": productID},
			"💰 قیمت جدید را به تومان وارد کنید:")

	case data == "admin_types":
		return b.adminShowTypes(c)
	case data == "admin_add_type":
		return b.startAdminFlow(c, session.StateAdminTypeName, nil,
			"🛡️ نام نوع اکانت سفارشی را وارد کنید:")
	case strings.HasPrefix(data, "admin_type_toggle_"):
		return b.adminToggleType(c, data)
	case strings.HasPrefix(data, "admin_type_delete_"):
		return b.adminDeleteType(c, data)

	case data == "admin_pending":
		return b.adminShowPending(c)
	case strings.HasPrefix(data, "admin_approve_"):
		return b.adminApproveOrder(c, data)
	case strings.HasPrefix(data, "admin_reject_"):
		orderID := strings.TrimPrefix(data, "admin_reject_")
		return b.startAdminFlow(c, session.StateAdminReject, session.Values{"order_id": orderID},
			"✍️ دلیل رد سفارش را بنویسید:")
	case strings.HasPrefix(data, "admin_deliver_"):
		return b.adminStartDeliver(c, data)

	case data == "admin_balance":
		return b.startAdminFlow(c, session.StateAdminBalanceUser, nil,
			"👤 شناسه تلگرام کاربر را وارد کنید:")

	case data == "admin_stats":
		return b.adminShowStats(c)
	case data == "admin_gateway_stats":
		return b.adminShowGatewayStats(c)

	default:
		b.logger.Debug("Unknown admin callback", zap.String("data", data))
		return c.Respond()
	}
}

func (b *Bot) startAdminFlow(c tele.Context, state session.State, values session.Values, prompt string) error {
	if err := b.sessions.Set(c.Sender().ID, state, values); err != nil {
		b.logger.Error("session set failed", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()
	return c.Send(prompt)
}

// handleAdminText runs the text steps of every admin flow.
func (b *Bot) handleAdminText(c tele.Context, state session.State, values session.Values) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	switch state {
	// ── New product ───────────────────────────────────────────────
	case session.StateAdminProductName:
		values["name"] = text
		if _, err := b.sessions.Advance(userID, values); err != nil {
			return b.adminFlowError(c, err)
		}
		return c.Send("📝 توضیحات محصول را وارد کنید:")

	case session.StateAdminProductDesc:
		values["desc"] = text
		if _, err := b.sessions.Advance(userID, values); err != nil {
			return b.adminFlowError(c, err)
		}
		return c.Send("💰 قیمت محصول را به تومان وارد کنید:")

	case session.StateAdminProductPrice:
		price, err := utils.ParseAmount(text)
		if err != nil || price <= 0 {
			return c.Send("❌ قیمت نامعتبر است. یک عدد مثبت وارد کنید:")
		}
		product := &models.Product{
			SiteName:    values["name"],
			Description: values["desc"],
			Price:       price,
			IsActive:    true,
		}
		if err := b.repos.Product.Create(product); err != nil {
			return b.adminFlowError(c, err)
		}
		_ = b.sessions.Clear(userID)
		return c.Send(fmt.Sprintf("✅ محصول «%s» با شناسه %d ساخته شد.\n\nبرای فروش، با «افزودن اکانت» موجودی بارگذاری کنید.",
			product.SiteName, product.ID), adminMenuKeyboard())

	// ── New inventory account ─────────────────────────────────────
	case session.StateAdminAccountProduct:
		productID := utils.ParseInt(text, 0)
		if _, err := b.repos.Product.FindByID(uint(productID)); err != nil {
			return c.Send("❌ محصولی با این شناسه یافت نشد. دوباره وارد کنید:")
		}
		values["product_id"] = strconv.Itoa(productID)
		if _, err := b.sessions.Advance(userID, values); err != nil {
			return b.adminFlowError(c, err)
		}
		return c.Send("🔑 نام کاربری (لاگین) اکانت را وارد کنید:")

	case session.StateAdminAccountLogin:
		values["login"] = text
		if _, err := b.sessions.Advance(userID, values); err != nil {
			return b.adminFlowError(c, err)
		}
		return c.Send("🔒 رمز عبور اکانت را وارد کنید:")

	case session.StateAdminAccountPass:
		values["pass"] = text
		if _, err := b.sessions.Advance(userID, values); err != nil {
			return b.adminFlowError(c, err)
		}
		return c.Send("ℹ️ اطلاعات تکمیلی اکانت را وارد کنید (یا «-» برای خالی):")

	case session.StateAdminAccountExtra:
		extra := text
		if extra == "-" {
			extra = ""
		}
		account := &models.Account{
			ProductID:      uint(utils.ParseInt(values["product_id"], 0)),
			Login:          values["login"],
			Password:       values["pass"],
			AdditionalInfo: extra,
		}
		if err := b.repos.Product.AddAccount(account); err != nil {
			return b.adminFlowError(c, err)
		}
		_ = b.sessions.Clear(userID)
		return c.Send("✅ اکانت به موجودی اضافه شد و تعداد موجودی محصول یک واحد بالا رفت.", adminMenuKeyboard())

	// ── New custom account type ───────────────────────────────────
	case session.StateAdminTypeName:
		values["name"] = text
		if _, err := b.sessions.Advance(userID, values); err != nil {
			return b.adminFlowError(c, err)
		}
		return c.Send("📝 توضیحات این نوع اکانت را وارد کنید:")

	case session.StateAdminTypeDesc:
		values["desc"] = text
		if _, err := b.sessions.Advance(userID, values); err != nil {
			return b.adminFlowError(c, err)
		}
		return c.Send("📋 شرایط و قوانین این نوع اکانت را وارد کنید:")

	case session.StateAdminTypeRules:
		values["rules"] = text
		if _, err := b.sessions.Advance(userID, values); err != nil {
			return b.adminFlowError(c, err)
		}
		return c.Send("💰 قیمت را به تومان وارد کنید:")

	case session.StateAdminTypePrice:
		price, err := utils.ParseAmount(text)
		if err != nil || price <= 0 {
			return c.Send("❌ قیمت نامعتبر است. یک عدد مثبت وارد کنید:")
		}
		values["price"] = strconv.FormatInt(price, 10)
		if _, err := b.sessions.Advance(userID, values); err != nil {
			return b.adminFlowError(c, err)
		}
		return c.Send("⏱ زمان تحویل را به ساعت وارد کنید:")

	case session.StateAdminTypeHours:
		hours := utils.ParseInt(text, 0)
		if hours <= 0 {
			return c.Send("❌ زمان تحویل نامعتبر است. یک عدد مثبت وارد کنید:")
		}
		price, _ := strconv.ParseInt(values["price"], 10, 64)
		accType := &models.CustomAccountType{
			Name:              values["name"],
			Description:       values["desc"],
			Rules:             values["rules"],
			Price:             price,
			DeliveryTimeHours: hours,
			IsActive:          true,
		}
		if err := b.repos.Custom.CreateType(accType); err != nil {
			return b.adminFlowError(c, err)
		}
		_ = b.sessions.Clear(userID)
		return c.Send(fmt.Sprintf("✅ نوع اکانت «%s» ساخته شد.", accType.Name), adminMenuKeyboard())

	// ── Product price edit ────────────────────────────────────────
	case session.StateAdminEditPrice:
		price, err := utils.ParseAmount(text)
		if err != nil || price <= 0 {
			return c.Send("❌ قیمت نامعتبر است. یک عدد مثبت وارد کنید:")
		}
		productID := uint(utils.ParseInt(values["product_id"], 0))
		if _, err := b.repos.Product.FindByID(productID); err != nil {
			return b.adminFlowError(c, err)
		}
		if err := b.repos.Product.Update(productID, map[string]interface{}{"price": price}); err != nil {
			return b.adminFlowError(c, err)
		}
		_ = b.sessions.Clear(userID)
		return c.Send(fmt.Sprintf("✅ قیمت محصول %d به %s تومان تغییر کرد.",
			productID, utils.FormatNumber(price)), adminMenuKeyboard())

	// ── Balance adjustment ────────────────────────────────────────
	case session.StateAdminBalanceUser:
		targetID, err := strconv.ParseInt(utils.ConvertPersianToEnglish(text), 10, 64)
		if err != nil || targetID == 0 {
			return c.Send("❌ شناسه نامعتبر است. شناسه عددی تلگرام کاربر را وارد کنید:")
		}
		user, err := b.repos.User.FindByID(targetID)
		if err != nil {
			return c.Send("❌ کاربری با این شناسه یافت نشد. دوباره وارد کنید:")
		}
		values["target_id"] = strconv.FormatInt(targetID, 10)
		if _, err := b.sessions.Advance(userID, values); err != nil {
			return b.adminFlowError(c, err)
		}
		return c.Send(fmt.Sprintf("💰 موجودی فعلی: %s تومان\n\nمبلغ تغییر را وارد کنید (منفی برای کسر):",
			utils.FormatNumber(user.Balance)))

	case session.StateAdminBalanceAmount:
		delta, err := strconv.ParseInt(strings.ReplaceAll(utils.ConvertPersianToEnglish(text), ",", ""), 10, 64)
		if err != nil || delta == 0 {
			return c.Send("❌ مبلغ نامعتبر است. یک عدد غیر صفر وارد کنید:")
		}
		targetID, _ := strconv.ParseInt(values["target_id"], 10, 64)
		err = b.wallet.AdminAdjust(targetID, delta, fmt.Sprintf("تغییر موجودی توسط ادمین %d", userID))
		if err != nil {
			return b.adminFlowError(c, err)
		}
		_ = b.sessions.Clear(userID)
		_ = b.notify.NotifyUser(targetID, fmt.Sprintf("💰 موجودی کیف پول شما %s تومان تغییر کرد.", utils.FormatNumber(delta)))

		user, _ := b.repos.User.FindByID(targetID)
		newBalance := int64(0)
		if user != nil {
			newBalance = user.Balance
		}
		return c.Send(fmt.Sprintf("✅ انجام شد. موجودی جدید کاربر %d: %s تومان",
			targetID, utils.FormatNumber(newBalance)), adminMenuKeyboard())

	// ── Custom order delivery / rejection ─────────────────────────
	case session.StateAdminDeliver:
		orderID := uint(utils.ParseInt(values["order_id"], 0))
		moved, err := b.repos.Custom.UpdateOrderStatus(orderID,
			models.CustomStatusPaid, models.CustomStatusDelivered, map[string]interface{}{
				"account_info": text,
				"delivered_at": time.Now().Unix(),
			})
		if err != nil {
			return b.adminFlowError(c, err)
		}
		_ = b.sessions.Clear(userID)
		if !moved {
			return c.Send("❌ این سفارش در وضعیت «پرداخت‌شده» نیست و قابل تحویل نیست.", adminMenuKeyboard())
		}
		if order, err := b.repos.Custom.FindOrder(orderID); err == nil {
			_ = b.notify.NotifyUser(order.UserID, fmt.Sprintf(
				"🎉 اکانت سفارشی شما آماده شد!\n\n🆔 سفارش: %d\n\n%s", orderID, text))
		}
		return c.Send(fmt.Sprintf("✅ سفارش %d تحویل داده شد.", orderID), adminMenuKeyboard())

	case session.StateAdminReject:
		orderID := uint(utils.ParseInt(values["order_id"], 0))
		moved, err := b.repos.Custom.UpdateOrderStatus(orderID,
			models.CustomStatusWaitingApproval, models.CustomStatusRejected, map[string]interface{}{
				"admin_notes": text,
			})
		if err != nil {
			return b.adminFlowError(c, err)
		}
		_ = b.sessions.Clear(userID)
		if !moved {
			return c.Send("❌ این سفارش دیگر در انتظار تایید نیست.", adminMenuKeyboard())
		}
		if order, err := b.repos.Custom.FindOrder(orderID); err == nil {
			_ = b.notify.NotifyUser(order.UserID, fmt.Sprintf(
				"❌ سفارش %d رد شد.\n\n📝 دلیل: %s", orderID, text))
		}
		return c.Send(fmt.Sprintf("✅ سفارش %d رد شد.", orderID), adminMenuKeyboard())
	}

	b.logger.Debug("text in unknown admin state", zap.String("state", string(state)))
	return b.sessions.Clear(userID)
}

func (b *Bot) adminFlowError(c tele.Context, err error) error {
	b.logger.Error("admin flow failed", zap.Error(err))
	_ = b.sessions.Clear(c.Sender().ID)
	return c.Send("❌ خطای داخلی. لطفاً دوباره تلاش کنید.", adminMenuKeyboard())
}

// ── Product management ────────────────────────────────────────────────

func (b *Bot) adminShowProducts(c tele.Context) error {
	products, err := b.repos.Product.FindAll()
	if err != nil {
		b.logger.Error("failed to load products", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()
	if len(products) == 0 {
		return b.editOrSend(c, "📭 هنوز محصولی ثبت نشده است.", adminMenuKeyboard())
	}

	text := "📦 <b>مدیریت محصولات</b>\n\n"
	for _, p := range products {
		text += fmt.Sprintf("%d — %s | %s تومان | موجودی: %d\n",
			p.ID, p.SiteName, utils.FormatNumber(p.Price), p.StockCount)
	}
	return b.editOrSend(c, text, adminProductsKeyboard(products), tele.ModeHTML)
}

func (b *Bot) adminToggleProduct(c tele.Context, data string) error {
	productID := uint(utils.ParseInt(strings.TrimPrefix(data, "admin_prod_toggle_"), 0))
	product, err := b.repos.Product.FindByID(productID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ محصول یافت نشد!", ShowAlert: true})
	}
	if err := b.repos.Product.SetActive(productID, !product.IsActive); err != nil {
		b.logger.Error("failed to toggle product", zap.Uint("product_id", productID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	return b.adminShowProducts(c)
}

// ── Broadcast ─────────────────────────────────────────────────────────

// handleBroadcastCommand sends a message to every registered user
// (/broadcast <text>). Blocked users are skipped.
func (b *Bot) handleBroadcastCommand(c tele.Context) error {
	if !b.isAdmin(c.Sender().ID) {
		return nil
	}
	parts := strings.SplitN(strings.TrimSpace(c.Text()), " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return c.Send("استفاده: /broadcast <متن پیام>")
	}
	text := strings.TrimSpace(parts[1])

	ids, err := b.repos.User.FindAllIDs()
	if err != nil {
		b.logger.Error("failed to load user ids for broadcast", zap.Error(err))
		return c.Send("❌ خطای داخلی.")
	}
	sent, failed := b.notify.Broadcast(ids, text)
	return c.Send(fmt.Sprintf("📣 پیام همگانی ارسال شد.\n✅ موفق: %d | ❌ ناموفق: %d", sent, failed))
}

// ── Inventory ─────────────────────────────────────────────────────────

func (b *Bot) adminStartAddAccount(c tele.Context) error {
	products, err := b.repos.Product.FindActive()
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	if len(products) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ ابتدا یک محصول بسازید!", ShowAlert: true})
	}
	if err := b.sessions.Set(c.Sender().ID, session.StateAdminAccountProduct, nil); err != nil {
		return b.adminFlowError(c, err)
	}
	_ = c.Respond()

	text := "🔑 شناسه محصول مقصد را وارد کنید:\n\n"
	for _, p := range products {
		text += fmt.Sprintf("%d — %s (موجودی: %d)\n", p.ID, p.SiteName, p.StockCount)
	}
	return c.Send(text)
}

// ── Custom account types ──────────────────────────────────────────────

func (b *Bot) adminShowTypes(c tele.Context) error {
	types, err := b.repos.Custom.FindAllTypes()
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()

	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	text := "🛡️ انواع اکانت سفارشی:\n\n"
	if len(types) == 0 {
		text = "🛡️ هنوز نوع اکانتی تعریف نشده است."
	}
	for _, t := range types {
		status := "🟢 فعال"
		if !t.IsActive {
			status = "🔴 غیرفعال"
		}
		text += fmt.Sprintf("%d — %s | %s تومان | %s\n", t.ID, t.Name, utils.FormatNumber(t.Price), status)
		rows = append(rows, menu.Row(
			menu.Data(fmt.Sprintf("🔁 %d", t.ID), fmt.Sprintf("admin_type_toggle_%d", t.ID)),
			menu.Data(fmt.Sprintf("🗑 %d", t.ID), fmt.Sprintf("admin_type_delete_%d", t.ID)),
		))
	}
	rows = append(rows,
		menu.Row(menu.Data("➕ افزودن نوع جدید", "admin_add_type")),
		menu.Row(menu.Data("🔙 بازگشت", "admin_menu")),
	)
	menu.Inline(rows...)
	return b.editOrSend(c, text, menu)
}

func (b *Bot) adminToggleType(c tele.Context, data string) error {
	id := uint(utils.ParseInt(strings.TrimPrefix(data, "admin_type_toggle_"), 0))
	if err := b.repos.Custom.ToggleType(id); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	return b.adminShowTypes(c)
}

func (b *Bot) adminDeleteType(c tele.Context, data string) error {
	id := uint(utils.ParseInt(strings.TrimPrefix(data, "admin_type_delete_"), 0))
	if err := b.repos.Custom.DeleteType(id); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	return b.adminShowTypes(c)
}

// ── Pending custom orders ─────────────────────────────────────────────

func (b *Bot) adminShowPending(c tele.Context) error {
	orders, err := b.repos.Custom.FindPendingOrders()
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()

	if len(orders) == 0 {
		return b.editOrSend(c, "📭 سفارش در انتظاری وجود ندارد.", adminMenuKeyboard())
	}

	typeNames := map[uint]string{}
	if types, err := b.repos.Custom.FindAllTypes(); err == nil {
		for _, t := range types {
			typeNames[t.ID] = t.Name
		}
	}

	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	text := "📋 سفارش‌های در انتظار:\n\n"
	for _, o := range orders {
		text += fmt.Sprintf("🆔 %d | 👤 %d | %s | %s\n📧 %s\n%s\n\n",
			o.ID, o.UserID, typeNames[o.AccountTypeID], customStatusLabel(o.Status),
			o.Email, utils.FormatUnix(o.CreatedAt))
		switch o.Status {
		case models.CustomStatusWaitingApproval:
			rows = append(rows, menu.Row(
				menu.Data(fmt.Sprintf("✅ تایید %d", o.ID), fmt.Sprintf("admin_approve_%d", o.ID)),
				menu.Data(fmt.Sprintf("❌ رد %d", o.ID), fmt.Sprintf("admin_reject_%d", o.ID)),
			))
		case models.CustomStatusPaid:
			rows = append(rows, menu.Row(
				menu.Data(fmt.Sprintf("📬 تحویل %d", o.ID), fmt.Sprintf("admin_deliver_%d", o.ID)),
			))
		}
	}
	rows = append(rows, menu.Row(menu.Data("🔙 بازگشت", "admin_menu")))
	menu.Inline(rows...)
	return b.editOrSend(c, text, menu)
}

func (b *Bot) adminApproveOrder(c tele.Context, data string) error {
	orderID := uint(utils.ParseInt(strings.TrimPrefix(data, "admin_approve_"), 0))
	moved, err := b.repos.Custom.UpdateOrderStatus(orderID,
		models.CustomStatusWaitingApproval, models.CustomStatusApproved, nil)
	if err != nil {
		b.logger.Error("failed to approve custom order", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطای داخلی", ShowAlert: true})
	}
	if !moved {
		return c.Respond(&tele.CallbackResponse{Text: "❌ این سفارش دیگر در انتظار تایید نیست!", ShowAlert: true})
	}

	if order, err := b.repos.Custom.FindOrder(orderID); err == nil {
		price := int64(0)
		if accType, err := b.repos.Custom.FindType(order.AccountTypeID); err == nil {
			price = accType.Price
		}
		_ = b.notify.NotifyUser(order.UserID, fmt.Sprintf(
			"✅ سفارش %d تایید شد!\n\n💰 مبلغ: %s تومان\n\nاز منوی «سفارش‌های ساخت اکانت» پرداخت را انجام دهید.",
			orderID, utils.FormatNumber(price)))
	}
	_ = c.Respond(&tele.CallbackResponse{Text: "✅ تایید شد و به کاربر اطلاع داده شد."})
	return b.adminShowPending(c)
}

func (b *Bot) adminStartDeliver(c tele.Context, data string) error {
	orderID := strings.TrimPrefix(data, "admin_deliver_")
	order, err := b.repos.Custom.FindOrder(uint(utils.ParseInt(orderID, 0)))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ سفارش یافت نشد!", ShowAlert: true})
	}
	if order.Status != models.CustomStatusPaid {
		return c.Respond(&tele.CallbackResponse{Text: "❌ این سفارش هنوز پرداخت نشده است!", ShowAlert: true})
	}
	return b.startAdminFlow(c, session.StateAdminDeliver, session.Values{"order_id": orderID},
		fmt.Sprintf("📬 اطلاعات اکانت ساخته‌شده برای سفارش %s را وارد کنید (برای کاربر ارسال می‌شود):", orderID))
}

// ── Statistics ────────────────────────────────────────────────────────

func (b *Bot) adminShowStats(c tele.Context) error {
	users, err := b.repos.User.Count()
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	admins, _ := b.repos.User.CountAdmins()
	activeProducts, _ := b.repos.Product.CountActive()
	available, sold, _ := b.repos.Product.CountAccounts()
	delivered, _ := b.repos.Order.CountDelivered()
	revenue, _ := b.repos.Order.TotalRevenue()
	customDelivered, customPending, customRevenue, _ := b.repos.Custom.Statistics()
	_ = c.Respond()

	text := fmt.Sprintf(
		"📊 <b>آمار ربات</b>\n\n"+
			"👥 کاربران: %s (ادمین: %d)\n"+
			"📦 محصولات فعال: %d\n"+
			"🔑 اکانت موجود: %d | فروخته‌شده: %d\n\n"+
			"🛒 سفارش‌های تحویل‌شده: %s\n"+
			"💰 درآمد فروشگاه: %s تومان\n\n"+
			"🤖 اکانت سفارشی تحویل‌شده: %d | در جریان: %d\n"+
			"💰 درآمد اکانت سفارشی: %s تومان",
		utils.FormatNumber(users), admins, activeProducts, available, sold,
		utils.FormatNumber(delivered), utils.FormatNumber(revenue),
		customDelivered, customPending, utils.FormatNumber(customRevenue),
	)
	return b.editOrSend(c, text, adminMenuKeyboard(), tele.ModeHTML)
}

func (b *Bot) adminShowGatewayStats(c tele.Context) error {
	stats, err := b.repos.Payment.Stats()
	if err != nil {
		b.logger.Error("failed to load gateway stats", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا", ShowAlert: true})
	}
	_ = c.Respond()

	text := fmt.Sprintf(
		"💳 <b>تراکنش‌های درگاه</b>\n\n"+
			"🏦 زیبال موفق: %d (%s تومان)\n"+
			"🏦 زیبال در انتظار: %d\n\n"+
			"💎 کریپتو موفق: %d (%.2f دلار)\n"+
			"💎 کریپتو در انتظار: %d",
		stats.ZibalPaidCount, utils.FormatNumber(stats.ZibalPaidAmount), stats.ZibalPendingCount,
		stats.CryptoPaidCount, stats.CryptoPaidUSD, stats.CryptoWaiting,
	)
	return b.editOrSend(c, text, adminMenuKeyboard(), tele.ModeHTML)
}
