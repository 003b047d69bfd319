package bot

import (
	"fmt"

	tele "gopkg.in/telebot.v3"

	"accountshop/internal/models"
	"accountshop/internal/pkg/utils"
)

func mainMenuKeyboard(isAdmin bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	rows := []tele.Row{
		menu.Row(menu.Data("🛒 لیست محصولات", "products_list")),
		menu.Row(menu.Data("🎯 خرید اکانت سفارشی", "account_maker")),
		menu.Row(menu.Data("💳 کیف پول", "wallet")),
		menu.Row(menu.Data("📦 سفارش‌های من", "my_orders"), menu.Data("🗂 سفارش‌های سفارشی", "my_custom_orders")),
		menu.Row(menu.Data("💬 پشتیبانی", "help_support")),
	}
	if isAdmin {
		rows = append(rows, menu.Row(menu.Data("🔧 پنل ادمین", "admin_menu")))
	}
	menu.Inline(rows...)
	return menu
}

func backToMainKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(menu.Data("🏠 منوی اصلی", "back_to_main")))
	return menu
}

func productsKeyboard(products []models.Product) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	for _, p := range products {
		label := fmt.Sprintf("%s - %s تومان (%d عدد)", p.SiteName, utils.FormatNumber(p.Price), p.StockCount)
		rows = append(rows, menu.Row(menu.Data(label, fmt.Sprintf("product_%d", p.ID))))
	}
	rows = append(rows, menu.Row(menu.Data("🔙 بازگشت", "back_to_main")))
	menu.Inline(rows...)
	return menu
}

func productDetailKeyboard(productID uint, inStock bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	if inStock {
		rows = append(rows, menu.Row(menu.Data("🛍 خرید", fmt.Sprintf("buy_%d", productID))))
	}
	rows = append(rows, menu.Row(menu.Data("🔙 بازگشت", "products_list")))
	menu.Inline(rows...)
	return menu
}

func walletKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("💳 پرداخت مستقیم", "payment_zibal")),
		menu.Row(menu.Data("💎 پرداخت با ارز دیجیتال", "payment_crypto")),
		menu.Row(menu.Data("📜 تراکنش‌ها", "ledger")),
		menu.Row(menu.Data("🧾 سوابق پرداخت", "deposit_history")),
		menu.Row(menu.Data("🔙 بازگشت", "back_to_main")),
	)
	return menu
}

var zibalPresets = []int64{50000, 100000, 200000, 500000}

func zibalAmountKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	for _, amount := range zibalPresets {
		rows = append(rows, menu.Row(menu.Data(
			fmt.Sprintf("%s تومان", utils.FormatNumber(amount)),
			fmt.Sprintf("zibal_amount_%d", amount),
		)))
	}
	rows = append(rows,
		menu.Row(menu.Data("✏️ مبلغ دلخواه", "zibal_custom_amount")),
		menu.Row(menu.Data("🔙 بازگشت", "wallet")),
	)
	menu.Inline(rows...)
	return menu
}

var cryptoCurrencies = []string{"btc", "eth", "usdttrc20", "trx"}

func cryptoCurrencyKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	labels := map[string]string{
		"btc": "₿ Bitcoin", "eth": "Ξ Ethereum", "usdttrc20": "₮ USDT (TRC20)", "trx": "TRX",
	}
	var rows []tele.Row
	for _, cur := range cryptoCurrencies {
		rows = append(rows, menu.Row(menu.Data(labels[cur], "crypto_currency_"+cur)))
	}
	rows = append(rows, menu.Row(menu.Data("🔙 بازگشت", "wallet")))
	menu.Inline(rows...)
	return menu
}

func accountTypesKeyboard(types []models.CustomAccountType) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	for _, t := range types {
		label := fmt.Sprintf("%s - %s تومان", t.Name, utils.FormatNumber(t.Price))
		rows = append(rows, menu.Row(menu.Data(label, fmt.Sprintf("acc_type_%d", t.ID))))
	}
	rows = append(rows, menu.Row(menu.Data("🔙 بازگشت", "back_to_main")))
	menu.Inline(rows...)
	return menu
}

func adminProductsKeyboard(products []models.Product) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	for _, p := range products {
		state := "⛔"
		if p.IsActive {
			state = "✅"
		}
		rows = append(rows, menu.Row(
			menu.Data(fmt.Sprintf("%s %s", state, p.SiteName), fmt.Sprintf("admin_prod_toggle_%d", p.ID)),
			menu.Data("✏️ قیمت", fmt.Sprintf("admin_prod_price_%d", p.ID)),
		))
	}
	rows = append(rows, menu.Row(menu.Data("🔙 بازگشت", "admin_menu")))
	menu.Inline(rows...)
	return menu
}

func supportKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("✉️ ارسال پیام", "help_send_message")),
		menu.Row(menu.Data("📨 پیام‌های من", "help_my_messages")),
		menu.Row(menu.Data("🔙 بازگشت", "back_to_main")),
	)
	return menu
}

func adminMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("➕ افزودن محصول", "admin_add_product"), menu.Data("🔑 افزودن اکانت", "admin_add_account")),
		menu.Row(menu.Data("📦 مدیریت محصولات", "admin_products")),
		menu.Row(menu.Data("🛡️ انواع اکانت سفارشی", "admin_types"), menu.Data("📋 سفارش‌های در انتظار", "admin_pending")),
		menu.Row(menu.Data("💰 تغییر موجودی کاربر", "admin_balance"), menu.Data("📊 آمار", "admin_stats")),
		menu.Row(menu.Data("💳 تراکنش‌های درگاه", "admin_gateway_stats")),
		menu.Row(menu.Data("🏠 منوی اصلی", "back_to_main")),
	)
	return menu
}
