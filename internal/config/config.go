package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"
	defaultCurrency  = "brl"
	defaultTimezone  = "America/Sao_Paulo"
)

type Config struct {
	AppEnv      string `mapstructure:"APP_ENV"`
	HTTPAddr    string `mapstructure:"HTTP_ADDR"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimitPerMin    int    `mapstructure:"RATE_LIMIT_PER_MIN"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	StripeSecretKey     string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	PaymentCurrency     string `mapstructure:"PAYMENT_CURRENCY"`
	PaymentSuccessURL   string `mapstructure:"PAYMENT_SUCCESS_URL"`
	PaymentCancelURL    string `mapstructure:"PAYMENT_CANCEL_URL"`

	WhatsAppAPIURL  string `mapstructure:"WHATSAPP_API_URL"`
	WhatsAppPhoneID string `mapstructure:"WHATSAPP_PHONE_ID"`
	WhatsAppToken   string `mapstructure:"WHATSAPP_TOKEN"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     string `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	SchedulerCron    string        `mapstructure:"SCHEDULER_CRON"`
	SchedulerLockTTL time.Duration `mapstructure:"SCHEDULER_LOCK_TTL"`
	DefaultTimezone  string        `mapstructure:"DEFAULT_TIMEZONE"`
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.PaymentCurrency = strings.ToLower(strings.TrimSpace(cfg.PaymentCurrency))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "file:ledger.db?_pragma=foreign_keys(1)")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("RATE_LIMIT_PER_MIN", 300)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	v.SetDefault("PAYMENT_CURRENCY", defaultCurrency)
	v.SetDefault("PAYMENT_SUCCESS_URL", "http://localhost:5173/pagamento/sucesso")
	v.SetDefault("PAYMENT_CANCEL_URL", "http://localhost:5173/pagamento/cancelado")
	v.SetDefault("WHATSAPP_API_URL", "https://graph.facebook.com/v19.0")
	v.SetDefault("WHATSAPP_PHONE_ID", "")
	v.SetDefault("WHATSAPP_TOKEN", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("SCHEDULER_CRON", "@every 1m")
	v.SetDefault("SCHEDULER_LOCK_TTL", "50s")
	v.SetDefault("DEFAULT_TIMEZONE", defaultTimezone)
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.RateLimitPerMin <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN must be > 0")
	}
	if cfg.SchedulerLockTTL <= 0 {
		return fmt.Errorf("SCHEDULER_LOCK_TTL must be > 0")
	}
	if strings.TrimSpace(cfg.SchedulerCron) == "" {
		return fmt.Errorf("SCHEDULER_CRON must not be empty")
	}
	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid DEFAULT_TIMEZONE %q: %w", cfg.DefaultTimezone, err)
	}
	if (cfg.WhatsAppPhoneID == "") != (cfg.WhatsAppToken == "") {
		return fmt.Errorf("WHATSAPP_PHONE_ID and WHATSAPP_TOKEN must be set together")
	}

	if cfg.IsProduction() {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if len(cfg.JWTSecret) < 32 {
			return fmt.Errorf("in prod/release JWT_SECRET must be at least 32 characters")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
