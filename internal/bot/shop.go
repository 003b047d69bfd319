package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"accountshop/internal/pkg/utils"
	"accountshop/internal/service"
)

func (b *Bot) showProducts(c tele.Context) error {
	products, err := b.repos.Product.FindActive()
	if err != nil {
		b.logger.Error("failed to load products", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا در بارگذاری محصولات", ShowAlert: true})
	}
	_ = c.Respond()

	if len(products) == 0 {
		return b.editOrSend(c, "❌ در حال حاضر محصولی موجود نیست.", backToMainKeyboard())
	}
	return b.editOrSend(c, "🛒 لیست محصولات موجود:\n\nمحصول مورد نظر خود را انتخاب کنید:", productsKeyboard(products))
}

func (b *Bot) showProductDetail(c tele.Context, data string) error {
	id, err := strconv.ParseUint(strings.TrimPrefix(data, "product_"), 10, 32)
	if err != nil {
		return c.Respond()
	}
	product, err := b.repos.Product.FindByID(uint(id))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ محصول یافت نشد!", ShowAlert: true})
	}
	_ = c.Respond()

	stockStatus := "✅ موجود"
	if product.StockCount <= 0 {
		stockStatus = "❌ ناموجود"
	}
	text := fmt.Sprintf(
		"📦 <b>%s</b>\n\n📝 توضیحات:\n%s\n\n💰 قیمت: %s تومان\n📊 موجودی: %d عدد\n🔔 وضعیت: %s",
		product.SiteName, product.Description,
		utils.FormatNumber(product.Price), product.StockCount, stockStatus,
	)
	return b.editOrSend(c, text, productDetailKeyboard(product.ID, product.StockCount > 0), tele.ModeHTML)
}

// handleBuy runs the atomic purchase and delivers the claimed credential.
func (b *Bot) handleBuy(c tele.Context, data string) error {
	id, err := strconv.ParseUint(strings.TrimPrefix(data, "buy_"), 10, 32)
	if err != nil {
		return c.Respond()
	}
	userID := c.Sender().ID

	result, err := b.purchases.Purchase(userID, uint(id))
	switch {
	case errors.Is(err, service.ErrInsufficientBalance):
		return c.Respond(&tele.CallbackResponse{Text: "❌ موجودی کیف پول کافی نیست!", ShowAlert: true})
	case errors.Is(err, service.ErrOutOfStock):
		return c.Respond(&tele.CallbackResponse{Text: "❌ موجودی این محصول تمام شده است!", ShowAlert: true})
	case errors.Is(err, service.ErrProductNotFound):
		return c.Respond(&tele.CallbackResponse{Text: "❌ محصول یافت نشد!", ShowAlert: true})
	case err != nil:
		b.logger.Error("purchase failed", zap.Int64("user_id", userID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا در پردازش خرید", ShowAlert: true})
	}

	text := fmt.Sprintf(
		"✅ <b>خرید موفق!</b>\n\n🔑 <b>اطلاعات اکانت شما:</b>\n\n"+
			"👤 نام کاربری: <code>%s</code>\n🔐 رمز عبور: <code>%s</code>\n",
		result.Login, result.Password,
	)
	if result.AdditionalInfo != "" {
		text += fmt.Sprintf("\n📋 اطلاعات تکمیلی:\n%s\n", result.AdditionalInfo)
	}
	text += fmt.Sprintf(
		"\n💰 مبلغ پرداختی: %s تومان\n🆔 شماره سفارش: #%d\n\n⚠️ لطفاً اطلاعات خود را در جای امن ذخیره کنید.",
		utils.FormatNumber(result.Price), result.OrderID,
	)

	if err := c.Send(text, backToMainKeyboard(), tele.ModeHTML); err != nil {
		return err
	}
	_ = c.Delete()

	b.notify.NotifyAdmins(fmt.Sprintf(
		"🛒 فروش جدید\n\n👤 کاربر: %d\n🆔 سفارش: #%d\n💰 مبلغ: %s تومان",
		userID, result.OrderID, utils.FormatNumber(result.Price),
	))
	return c.Respond(&tele.CallbackResponse{Text: "✅ خرید با موفقیت انجام شد!", ShowAlert: true})
}

func (b *Bot) showMyOrders(c tele.Context) error {
	orders, err := b.repos.Order.FindByUserID(c.Sender().ID, 10)
	if err != nil {
		b.logger.Error("failed to load orders", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ خطا در بارگذاری سفارش‌ها", ShowAlert: true})
	}
	_ = c.Respond()

	if len(orders) == 0 {
		return b.editOrSend(c, "📦 هنوز سفارشی ندارید.", backToMainKeyboard())
	}
	text := "📦 سفارش‌های شما:\n\n"
	for _, o := range orders {
		text += fmt.Sprintf("#%d - %s - %s تومان - %s\n",
			o.ID, o.SiteName, utils.FormatNumber(o.Price), o.Status)
	}
	return b.editOrSend(c, text, backToMainKeyboard())
}
