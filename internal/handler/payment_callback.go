package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"accountshop/internal/models"
	"accountshop/internal/notifier"
	"accountshop/internal/payment"
	"accountshop/internal/pkg/utils"
	"accountshop/internal/repository"
	"accountshop/internal/service"
)

// PaymentHandler settles gateway callbacks: the Zibal browser redirect and
// the NOWPayments IPN. Both paths are idempotent; a replayed callback finds
// the transaction already settled and credits nothing.
type PaymentHandler struct {
	payments *repository.PaymentRepository
	wallet   *service.WalletService
	zibal    payment.RedirectGateway
	crypto   payment.CryptoGateway
	notify   *notifier.Notifier
	logger   *zap.Logger
}

func NewPaymentHandler(
	payments *repository.PaymentRepository,
	wallet *service.WalletService,
	zibal payment.RedirectGateway,
	crypto payment.CryptoGateway,
	notify *notifier.Notifier,
	logger *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		wallet:   wallet,
		zibal:    zibal,
		crypto:   crypto,
		notify:   notify,
		logger:   logger,
	}
}

// ZibalCallback handles the browser redirect after a Zibal payment:
// GET /payment/zibal/callback?trackId=...&success=...&status=...
func (h *PaymentHandler) ZibalCallback(c echo.Context) error {
	trackID, err := strconv.ParseInt(c.QueryParam("trackId"), 10, 64)
	if err != nil {
		return c.HTML(http.StatusBadRequest, resultPage("❌ درخواست نامعتبر است."))
	}

	tx, err := h.payments.FindZibalByTrackID(trackID)
	if err != nil {
		return c.HTML(http.StatusNotFound, resultPage("❌ تراکنش یافت نشد."))
	}
	if tx.Status == models.ZibalStatusSuccess {
		return c.HTML(http.StatusOK, resultPage("✅ این پرداخت قبلاً تایید شده است. به ربات برگردید."))
	}

	if c.QueryParam("success") != "1" {
		_ = h.payments.UpdateZibal(tx.ID, map[string]interface{}{"status": models.ZibalStatusFailed})
		return c.HTML(http.StatusOK, resultPage("❌ پرداخت لغو شد. به ربات برگردید."))
	}

	verify, err := h.zibal.VerifyPayment(trackID)
	if err != nil {
		h.logger.Error("zibal verify failed", zap.Int64("track_id", trackID), zap.Error(err))
		return c.HTML(http.StatusBadGateway, resultPage("❌ خطا در تایید پرداخت. با پشتیبانی تماس بگیرید."))
	}
	if !verify.Paid {
		_ = h.payments.UpdateZibal(tx.ID, map[string]interface{}{"status": models.ZibalStatusFailed})
		h.logger.Warn("zibal payment not verified",
			zap.Int64("track_id", trackID), zap.String("message", verify.Message))
		return c.HTML(http.StatusOK, resultPage("❌ پرداخت تایید نشد: "+verify.Message))
	}

	// Zibal reports rial; the stored amount is toman.
	if verify.Amount != tx.Amount*10 {
		h.logger.Error("zibal amount mismatch",
			zap.Int64("track_id", trackID),
			zap.Int64("expected_rial", tx.Amount*10),
			zap.Int64("reported_rial", verify.Amount))
		h.notify.NotifyAdmins(fmt.Sprintf(
			"⚠️ مغایرت مبلغ در تراکنش زیبال!\n\n🧾 پیگیری: %d\n👤 کاربر: %d\n💰 ثبت‌شده: %s تومان | درگاه: %s ریال",
			trackID, tx.UserID, utils.FormatNumber(tx.Amount), utils.FormatNumber(verify.Amount)))
		return c.HTML(http.StatusConflict, resultPage("❌ مبلغ پرداخت با سفارش همخوانی ندارد. با پشتیبانی تماس بگیرید."))
	}

	settled, err := h.payments.MarkZibalSuccess(trackID, verify.RefNumber, verify.CardNumber)
	if err != nil {
		h.logger.Error("zibal settle failed", zap.Int64("track_id", trackID), zap.Error(err))
		return c.HTML(http.StatusInternalServerError, resultPage("❌ خطای داخلی. با پشتیبانی تماس بگیرید."))
	}
	if settled {
		desc := fmt.Sprintf("شارژ کیف پول از درگاه زیبال (پیگیری %d)", trackID)
		if err := h.wallet.Deposit(tx.UserID, tx.Amount, desc); err != nil {
			h.logger.Error("zibal deposit credit failed",
				zap.Int64("user_id", tx.UserID), zap.Error(err))
			return c.HTML(http.StatusInternalServerError, resultPage("❌ خطای داخلی. با پشتیبانی تماس بگیرید."))
		}
		_ = h.notify.NotifyUser(tx.UserID, fmt.Sprintf(
			"✅ پرداخت موفق!\n\n💰 %s تومان به کیف پول شما اضافه شد.\n🧾 شماره پیگیری: %s",
			utils.FormatNumber(tx.Amount), verify.RefNumber))
		h.notify.NotifyAdmins(fmt.Sprintf(
			"💳 شارژ زیبال موفق\n\n👤 کاربر: %d\n💰 مبلغ: %s تومان",
			tx.UserID, utils.FormatNumber(tx.Amount)))
		h.logger.Info("zibal payment settled",
			zap.Int64("track_id", trackID),
			zap.Int64("user_id", tx.UserID),
			zap.Int64("amount", tx.Amount))
	}
	return c.HTML(http.StatusOK, resultPage("✅ پرداخت با موفقیت انجام شد. به ربات برگردید."))
}

type nowpaymentsIPN struct {
	PaymentID     interface{} `json:"payment_id"`
	PaymentStatus string      `json:"payment_status"`
	OrderID       string      `json:"order_id"`
}

// NOWPaymentsIPN handles POST /payment/crypto/ipn. The reported status is
// never trusted directly; the gateway is re-queried before any credit.
func (h *PaymentHandler) NOWPaymentsIPN(c echo.Context) error {
	var ipn nowpaymentsIPN
	if err := c.Bind(&ipn); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	paymentID := strings.TrimSpace(fmt.Sprintf("%v", ipn.PaymentID))
	if paymentID == "" || paymentID == "<nil>" {
		return c.NoContent(http.StatusBadRequest)
	}

	tx, err := h.payments.FindCryptoByPaymentID(paymentID)
	if err != nil && ipn.OrderID != "" {
		// Fall back to our own order id; the stored payment id then wins.
		if tx, err = h.payments.FindCryptoByOrderID(ipn.OrderID); err == nil {
			paymentID = tx.PaymentID
		}
	}
	if err != nil {
		h.logger.Warn("ipn for unknown payment",
			zap.String("payment_id", paymentID), zap.String("order_id", ipn.OrderID))
		return c.NoContent(http.StatusNotFound)
	}
	if tx.PaymentStatus == models.CryptoStatusFinished {
		return c.NoContent(http.StatusOK)
	}

	status, err := h.crypto.PaymentStatus(paymentID)
	if err != nil {
		h.logger.Error("nowpayments status query failed",
			zap.String("payment_id", paymentID), zap.Error(err))
		return c.NoContent(http.StatusBadGateway)
	}

	if status != models.CryptoStatusFinished {
		_ = h.payments.UpdateCryptoStatus(paymentID, status)
		return c.NoContent(http.StatusOK)
	}

	settled, err := h.payments.MarkCryptoFinished(paymentID)
	if err != nil {
		h.logger.Error("crypto settle failed", zap.String("payment_id", paymentID), zap.Error(err))
		return c.NoContent(http.StatusInternalServerError)
	}
	if settled {
		desc := fmt.Sprintf("شارژ کیف پول با ارز دیجیتال (%s)", strings.ToUpper(tx.Currency))
		if err := h.wallet.Deposit(tx.UserID, tx.AmountToman, desc); err != nil {
			h.logger.Error("crypto deposit credit failed",
				zap.Int64("user_id", tx.UserID), zap.Error(err))
			return c.NoContent(http.StatusInternalServerError)
		}
		_ = h.notify.NotifyUser(tx.UserID, fmt.Sprintf(
			"✅ پرداخت ارز دیجیتال تایید شد!\n\n💰 %s تومان به کیف پول شما اضافه شد.",
			utils.FormatNumber(tx.AmountToman)))
		h.notify.NotifyAdmins(fmt.Sprintf(
			"💎 شارژ کریپتو موفق\n\n👤 کاربر: %d\n💰 مبلغ: %s تومان",
			tx.UserID, utils.FormatNumber(tx.AmountToman)))
		h.logger.Info("crypto payment settled",
			zap.String("payment_id", paymentID),
			zap.Int64("user_id", tx.UserID),
			zap.Int64("amount_toman", tx.AmountToman))
	}
	return c.NoContent(http.StatusOK)
}

func resultPage(message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html dir="rtl" lang="fa"><head><meta charset="utf-8"><title>نتیجه پرداخت</title></head>
<body style="font-family:Tahoma,sans-serif;text-align:center;padding-top:80px"><h2>%s</h2></body></html>`, message)
}
