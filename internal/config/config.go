package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mariposahq/anchor/internal/whatsapp"
)

// Config is the environment-driven application configuration. Credentials
// have no defaults; Validate separates fatal configuration errors from
// optional settings.
type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"data/anchor.db"`

	CronSecret string `env:"CRON_SECRET"`

	WhatsAppAPIURL         string   `env:"WHATSAPP_API_URL" envDefault:"https://graph.facebook.com/v17.0"`
	WhatsAppPhoneNumberIDs []string `env:"WHATSAPP_PHONE_NUMBER_IDS"`
	WhatsAppAccessTokens   []string `env:"WHATSAPP_ACCESS_TOKENS"`
	WhatsAppAppSecret      string   `env:"WHATSAPP_APP_SECRET"`
	WebhookVerifyToken     string   `env:"WHATSAPP_VERIFY_TOKEN"`

	SentimentAPIURL string `env:"SENTIMENT_API_URL" envDefault:"https://api.deepseek.com/v1/sentiment"`
	SentimentAPIKey string `env:"SENTIMENT_API_KEY"`

	ActiveHorizonDays  int `env:"ACTIVE_HORIZON_DAYS" envDefault:"30"`
	SentimentTrendDays int `env:"SENTIMENT_TREND_DAYS" envDefault:"14"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogPath  string `env:"LOG_PATH"`

	// Settings for the standalone cron runner (all times UTC).
	CronTargetURL     string `env:"CRON_TARGET_URL" envDefault:"http://localhost:8080"`
	DailyCheckinTime  string `env:"DAILY_CHECKIN_TIME" envDefault:"08:00"`
	EndOfDayTime      string `env:"END_OF_DAY_TIME" envDefault:"20:30"`
	WeeklyCheckinTime string `env:"WEEKLY_CHECKIN_TIME" envDefault:"09:00"`
	WeeklyCheckinDay  string `env:"WEEKLY_CHECKIN_DAY" envDefault:"Sunday"`
	SweepIntervalMin  int    `env:"SWEEP_INTERVAL_MINUTES" envDefault:"30"`
}

// Load reads an optional .env file and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate reports the configuration errors that must stop a sweep from
// ever running.
func (cfg Config) Validate() error {
	if cfg.CronSecret == "" {
		return errors.New("CRON_SECRET must be set")
	}
	if len(cfg.WhatsAppPhoneNumberIDs) == 0 {
		return errors.New("WHATSAPP_PHONE_NUMBER_IDS must list at least one account")
	}
	if len(cfg.WhatsAppPhoneNumberIDs) != len(cfg.WhatsAppAccessTokens) {
		return errors.New("WHATSAPP_PHONE_NUMBER_IDS and WHATSAPP_ACCESS_TOKENS must have the same length")
	}
	return nil
}

// WhatsAppAccounts zips the parallel credential lists, indexed by the
// account index stored on each user.
func (cfg Config) WhatsAppAccounts() []whatsapp.Credentials {
	accounts := make([]whatsapp.Credentials, 0, len(cfg.WhatsAppPhoneNumberIDs))
	for index, phoneNumberID := range cfg.WhatsAppPhoneNumberIDs {
		accounts = append(accounts, whatsapp.Credentials{
			PhoneNumberID: phoneNumberID,
			AccessToken:   cfg.WhatsAppAccessTokens[index],
		})
	}
	return accounts
}
