package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   gateway/bot credentials), security settings
// - default: Values common across all environments (timeouts, currency, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Razorpay RazorpayConfig
	Telegram TelegramConfig
	SMTP     SMTPConfig
	Webhook  WebhookConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Api-Key,X-Signature"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5*60*60 + 30*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// RazorpayConfig carries the gateway account credentials. KeySecret is also
// the HMAC key for payment-callback signature verification.
type RazorpayConfig struct {
	KeyID           string        `envconfig:"RAZORPAY_KEY_ID" required:"true"`
	KeySecret       string        `envconfig:"RAZORPAY_KEY_SECRET" required:"true"`
	APIBaseURL      string        `envconfig:"RAZORPAY_API_BASE_URL" default:"https://api.razorpay.com/v1"`
	Currency        string        `envconfig:"RAZORPAY_CURRENCY" default:"INR"`
	CheckoutBaseURL string        `envconfig:"CHECKOUT_BASE_URL" required:"true"`
	Timeout         time.Duration `envconfig:"RAZORPAY_TIMEOUT" default:"10s"`
}

type TelegramConfig struct {
	BotToken   string        `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	APIBaseURL string        `envconfig:"TELEGRAM_API_BASE_URL" default:"https://api.telegram.org"`
	Timeout    time.Duration `envconfig:"TELEGRAM_TIMEOUT" default:"5s"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:"smtp.hostinger.com"`
	Port     string `envconfig:"SMTP_PORT" default:"465"`
	User     string `envconfig:"SMTP_USER" required:"true"`
	Password string `envconfig:"SMTP_PASSWORD" required:"true"`
	From     string `envconfig:"SMTP_FROM" required:"true"`
}

type WebhookConfig struct {
	Timeout time.Duration `envconfig:"MERCHANT_WEBHOOK_TIMEOUT" default:"5s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Kolkata",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Kolkata",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		JWT: JWTConfig{
			Secret:   "test-jwt-secret",
			Duration: "24h",
		},
		Razorpay: RazorpayConfig{
			KeyID:           "rzp_test_key",
			KeySecret:       "rzp_test_secret",
			APIBaseURL:      "http://localhost:18089/v1",
			Currency:        "INR",
			CheckoutBaseURL: "http://localhost:8889",
			Timeout:         2 * time.Second,
		},
		Telegram: TelegramConfig{
			BotToken:   "test-bot-token",
			APIBaseURL: "http://localhost:18090",
			Timeout:    2 * time.Second,
		},
		SMTP: SMTPConfig{
			Host:     "localhost",
			Port:     "1025",
			User:     "test@example.com",
			Password: "test",
			From:     "test@example.com",
		},
		Webhook: WebhookConfig{
			Timeout: 2 * time.Second,
		},
	}
}
