package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"accountshop/internal/handler"
	"accountshop/internal/middleware"
)

// Setup wires all HTTP routes: the Telegram webhook (when webhook mode is
// on) and the payment gateway callbacks.
func Setup(
	e *echo.Echo,
	paymentHandler *handler.PaymentHandler,
	updateDeduper middleware.Deduper,
	webhookHandler http.Handler,
	logger *zap.Logger,
) {
	e.Use(echomw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Telegram webhook (protected by IP check + deduplication)
	if webhookHandler != nil {
		webhookGroup := e.Group("/bot")
		webhookGroup.Use(middleware.TelegramIPCheck())
		webhookGroup.Use(middleware.UpdateDedup(updateDeduper))
		webhookGroup.POST("/webhook", echo.WrapHandler(webhookHandler))
	} else {
		logger.Info("Telegram webhook routes disabled (bot update mode is polling)")
	}

	// Payment callback routes
	paymentGroup := e.Group("/payment")
	paymentGroup.GET("/zibal/callback", paymentHandler.ZibalCallback)
	paymentGroup.POST("/crypto/ipn", paymentHandler.NOWPaymentsIPN)
}
