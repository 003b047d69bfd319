package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"accountshop/internal/bootstrap"
	"accountshop/internal/bot"
	"accountshop/internal/config"
	cronpkg "accountshop/internal/cron"
	"accountshop/internal/handler"
	"accountshop/internal/middleware"
	"accountshop/internal/notifier"
	"accountshop/internal/payment"
	"accountshop/internal/pkg/telegram"
	"accountshop/internal/repository"
	"accountshop/internal/router"
	"accountshop/internal/service"
	"accountshop/internal/session"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// --- Database ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.MigrateAndSeed(db, cfg.Bot.AdminIDs); err != nil {
		logger.Fatal("Failed to bootstrap database schema", zap.Error(err))
	}

	// --- Telegram Bot API (direct HTTP client for notifications) ---
	botAPI := telegram.NewBotAPI(cfg.Bot.Token)
	notify := notifier.New(botAPI, cfg.Bot.AdminIDs, logger)

	// --- Repositories ---
	repos := &bot.BotRepos{
		User:    repository.NewUserRepository(db),
		Product: repository.NewProductRepository(db),
		Order:   repository.NewOrderRepository(db),
		Custom:  repository.NewCustomRepository(db),
		Support: repository.NewSupportRepository(db),
		Payment: repository.NewPaymentRepository(db),
	}

	// --- Services and gateways ---
	purchases := service.NewPurchaseService(db)
	wallet := service.NewWalletService(db)
	zibal := payment.NewZibalClient(cfg.Payment.Zibal.Merchant)
	crypto := payment.NewNOWPaymentsClient(cfg.Payment.NOWPayments.APIKey)
	sessions := session.NewManager(db, cfg.Session.TTL)

	// --- Echo ---
	e := echo.New()
	e.HideBanner = true

	// --- Webhook Deduper (Redis with in-memory fallback) ---
	updateDeduper, dedupeErr := middleware.NewDeduper(
		cfg.Redis.Addr,
		cfg.Redis.Pass,
		cfg.Redis.DB,
		10*time.Minute,
	)
	if dedupeErr != nil {
		logger.Warn("Redis unavailable for webhook dedup, using in-memory fallback", zap.Error(dedupeErr))
	}

	// --- Bot ---
	teleBot, err := bot.New(cfg, &bot.Deps{
		Repos:     repos,
		Purchases: purchases,
		Wallet:    wallet,
		Zibal:     zibal,
		Crypto:    crypto,
		Sessions:  sessions,
		Notifier:  notify,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// --- Routes ---
	paymentHandler := handler.NewPaymentHandler(repos.Payment, wallet, zibal, crypto, notify, logger)
	router.Setup(e, paymentHandler, updateDeduper, teleBot.WebhookHandler(), logger)

	// --- Cron Scheduler ---
	scheduler := cronpkg.New(sessions, repos.Custom, repos.User, repos.Order, notify, logger)
	scheduler.Start()

	// --- Start Server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting account shop server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	// Start bot (webhook mode registers with Telegram and receives updates
	// via the Echo-mounted handler; polling mode long-polls directly)
	go teleBot.Start()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	teleBot.Stop()
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
