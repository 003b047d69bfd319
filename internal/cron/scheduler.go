package cron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"accountshop/internal/notifier"
	"accountshop/internal/pkg/utils"
	"accountshop/internal/repository"
	"accountshop/internal/session"
)

// Scheduler manages all cron jobs.
type Scheduler struct {
	cron     *cron.Cron
	sessions *session.Manager
	custom   *repository.CustomRepository
	users    *repository.UserRepository
	orders   *repository.OrderRepository
	notify   *notifier.Notifier
	logger   *zap.Logger
}

// New creates a new cron scheduler.
func New(
	sessions *session.Manager,
	custom *repository.CustomRepository,
	users *repository.UserRepository,
	orders *repository.OrderRepository,
	notify *notifier.Notifier,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		sessions: sessions,
		custom:   custom,
		users:    users,
		orders:   orders,
		notify:   notify,
		logger:   logger,
	}
}

// Start registers and starts all cron jobs.
func (s *Scheduler) Start() {
	s.logger.Info("Starting cron scheduler...")

	// Expire stale sessions - every 10 minutes
	s.cron.AddFunc("0 */10 * * * *", func() {
		s.logger.Debug("Running: session cleanup")
		s.cleanSessions()
	})

	// Expire unpaid custom orders - every 5 minutes
	s.cron.AddFunc("0 */5 * * * *", func() {
		s.logger.Debug("Running: custom order expiry")
		s.expireCustomOrders()
	})

	// Daily status report - at 23:45
	s.cron.AddFunc("0 45 23 * * *", func() {
		s.logger.Debug("Running: daily status report")
		s.dailyStatusReport()
	})

	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) cleanSessions() {
	n, err := s.sessions.ExpireStale()
	if err != nil {
		s.logger.Error("session cleanup failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("expired stale sessions", zap.Int64("count", n))
	}
}

func (s *Scheduler) expireCustomOrders() {
	stale, err := s.custom.ExpireUnpaid(time.Now().Unix())
	if err != nil {
		s.logger.Error("custom order expiry failed", zap.Error(err))
		return
	}
	for _, order := range stale {
		s.logger.Info("custom order expired",
			zap.Uint("order_id", order.ID), zap.Int64("user_id", order.UserID))
		_ = s.notify.NotifyUser(order.UserID, fmt.Sprintf(
			"⌛️ سفارش %d به دلیل عدم پرداخت منقضی شد.\n\nدر صورت تمایل می‌توانید سفارش جدیدی ثبت کنید.",
			order.ID))
	}
}

func (s *Scheduler) dailyStatusReport() {
	users, err := s.users.Count()
	if err != nil {
		s.logger.Error("daily report failed", zap.Error(err))
		return
	}
	delivered, _ := s.orders.CountDelivered()
	revenue, _ := s.orders.TotalRevenue()
	customDelivered, customPending, customRevenue, _ := s.custom.Statistics()

	s.notify.NotifyAdmins(fmt.Sprintf(
		"🌙 گزارش روزانه ربات\n\n"+
			"👥 کاربران: %s\n"+
			"🛒 سفارش‌های تحویل‌شده: %s\n"+
			"💰 درآمد فروشگاه: %s تومان\n"+
			"🤖 اکانت سفارشی تحویل‌شده: %d | در جریان: %d\n"+
			"💰 درآمد اکانت سفارشی: %s تومان",
		utils.FormatNumber(users), utils.FormatNumber(delivered), utils.FormatNumber(revenue),
		customDelivered, customPending, utils.FormatNumber(customRevenue),
	))
}
