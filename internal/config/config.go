package config

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Bot      BotConfig
	Payment  PaymentConfig
	Support  SupportConfig
	Session  SessionConfig
}

type ServerConfig struct {
	Port int
	Env  string // "development", "production"
}

type DatabaseConfig struct {
	Path string
}

type RedisConfig struct {
	Addr string
	Pass string
	DB   int
}

type BotConfig struct {
	Token      string
	WebhookURL string
	UpdateMode string // "auto", "webhook", "polling"
	AdminIDs   []int64
}

type PaymentConfig struct {
	Zibal       ZibalConfig
	NOWPayments NOWPaymentsConfig
	USDToToman  int64
}

type ZibalConfig struct {
	Merchant    string
	CallbackURL string
}

type NOWPaymentsConfig struct {
	APIKey      string
	CallbackURL string
}

type SupportConfig struct {
	HourlyLimit int
}

type SessionConfig struct {
	TTL time.Duration
}

// Load reads configuration from .env file and environment variables.
func Load() (*Config, error) {
	// Load .env file (ignore error if missing)
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("DATABASE_PATH", "shop.db")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BOT_UPDATE_MODE", "auto")
	viper.SetDefault("USD_TO_TOMAN_RATE", 65000)
	viper.SetDefault("SUPPORT_HOURLY_LIMIT", 5)
	viper.SetDefault("SESSION_TTL", "30m")

	ttl, err := time.ParseDuration(viper.GetString("SESSION_TTL"))
	if err != nil {
		ttl = 30 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Database: DatabaseConfig{
			Path: viper.GetString("DATABASE_PATH"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
			Pass: viper.GetString("REDIS_PASS"),
			DB:   viper.GetInt("REDIS_DB"),
		},
		Bot: BotConfig{
			Token:      viper.GetString("BOT_TOKEN"),
			WebhookURL: viper.GetString("BOT_WEBHOOK_URL"),
			UpdateMode: viper.GetString("BOT_UPDATE_MODE"),
			AdminIDs:   parseAdminIDs(viper.GetString("ADMIN_IDS")),
		},
		Payment: PaymentConfig{
			Zibal: ZibalConfig{
				Merchant:    viper.GetString("ZIBAL_MERCHANT"),
				CallbackURL: viper.GetString("ZIBAL_CALLBACK_URL"),
			},
			NOWPayments: NOWPaymentsConfig{
				APIKey:      viper.GetString("NOWPAYMENTS_API_KEY"),
				CallbackURL: viper.GetString("NOWPAYMENTS_CALLBACK_URL"),
			},
			USDToToman: viper.GetInt64("USD_TO_TOMAN_RATE"),
		},
		Support: SupportConfig{
			HourlyLimit: viper.GetInt("SUPPORT_HOURLY_LIMIT"),
		},
		Session: SessionConfig{
			TTL: ttl,
		},
	}

	if cfg.Bot.Token == "" {
		log.Println("WARNING: BOT_TOKEN is not set")
	}
	if len(cfg.Bot.AdminIDs) == 0 {
		log.Println("WARNING: ADMIN_IDS is not set, admin panel is unreachable")
	}

	return cfg, nil
}

// IsAdmin reports whether the given Telegram ID belongs to a configured admin.
func (b *BotConfig) IsAdmin(telegramID int64) bool {
	for _, id := range b.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func parseAdminIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Printf("WARNING: ignoring invalid admin id %q", part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
