package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"avrental-backend/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Log          LogConfig          `yaml:"log"`
	Rental       RentalConfig       `yaml:"rental"`
	Admin        AdminConfig        `yaml:"admin"`
	Notification NotificationConfig `yaml:"notification"`
	JWT          JWTConfig          `yaml:"jwt"`
	HTTP         HTTPConfig         `yaml:"http"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`   // "debug", "info", "warn", "error"
	Format string `yaml:"format" envconfig:"LOG_FORMAT"` // "json" or "text"
}

// RentalConfig contains reservation pricing settings
type RentalConfig struct {
	DepositCents int64 `yaml:"deposit_cents" envconfig:"RENTAL_DEPOSIT_CENTS"`
}

// AdminConfig contains the single admin account. PasswordHash (bcrypt) wins
// over Password when both are set.
type AdminConfig struct {
	Username     string `yaml:"username" envconfig:"ADMIN_USERNAME"`
	Password     string `yaml:"password" envconfig:"ADMIN_PASSWORD"`
	PasswordHash string `yaml:"password_hash" envconfig:"ADMIN_PASSWORD_HASH"`
}

// NotificationConfig selects the senders lifecycle events fan out to
type NotificationConfig struct {
	Channels []string       `yaml:"channels" envconfig:"NOTIFICATION_CHANNELS"` // "log", "inbox", "email"
	SendGrid SendGridConfig `yaml:"sendgrid"`
}

// SendGridConfig contains email service settings
type SendGridConfig struct {
	APIKey     string `yaml:"api_key" envconfig:"SENDGRID_API_KEY"`
	FromEmail  string `yaml:"from_email" envconfig:"SENDGRID_FROM_EMAIL"`
	FromName   string `yaml:"from_name" envconfig:"SENDGRID_FROM_NAME"`
	Domain     string `yaml:"recipient_domain" envconfig:"SENDGRID_RECIPIENT_DOMAIN"`
	Workers    int    `yaml:"workers" envconfig:"SENDGRID_WORKERS"`
	QueueSize  int    `yaml:"queue_size" envconfig:"SENDGRID_QUEUE_SIZE"`
	MaxRetries int    `yaml:"max_retries" envconfig:"SENDGRID_MAX_RETRIES"`
}

// JWTConfig contains admin session token settings
type JWTConfig struct {
	Secret            string `yaml:"secret" envconfig:"JWT_SECRET"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes" envconfig:"JWT_ACCESS_TOKEN_EXPIRY_MINUTES"`
}

// HTTPConfig contains the read-only report API settings
type HTTPConfig struct {
	Enabled bool   `yaml:"enabled" envconfig:"HTTP_ENABLED"`
	Host    string `yaml:"host" envconfig:"HTTP_HOST"`
	Port    int    `yaml:"port" envconfig:"HTTP_PORT"`
}

// SchedulerConfig contains cron schedule settings (with seconds field)
type SchedulerConfig struct {
	Enabled                 bool   `yaml:"enabled" envconfig:"SCHEDULER_ENABLED"`
	PendingPaymentReminders string `yaml:"pending_payment_reminders" envconfig:"SCHEDULER_PENDING_PAYMENT_REMINDERS"`
	FleetSnapshot           string `yaml:"fleet_snapshot" envconfig:"SCHEDULER_FLEET_SNAPSHOT"`
}

const (
	ChannelLog   = "log"
	ChannelInbox = "inbox"
	ChannelEmail = "email"
)

// Default returns a configuration that runs the terminal app without any file
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file, overrides it with environment
// variables and validates the result. An empty path skips the file.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Unset variables leave the file values untouched
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Rental.DepositCents == 0 {
		c.Rental.DepositCents = domain.DefaultDepositCents
	}

	if c.Admin.Username == "" {
		c.Admin.Username = "admin"
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		c.Admin.Password = "admin"
	}

	if len(c.Notification.Channels) == 0 {
		c.Notification.Channels = []string{ChannelLog, ChannelInbox}
	}
	if c.Notification.SendGrid.FromName == "" {
		c.Notification.SendGrid.FromName = "AV Rental Car"
	}
	if c.Notification.SendGrid.Domain == "" {
		c.Notification.SendGrid.Domain = "clients.avrental.local"
	}
	if c.Notification.SendGrid.Workers == 0 {
		c.Notification.SendGrid.Workers = 2
	}
	if c.Notification.SendGrid.QueueSize == 0 {
		c.Notification.SendGrid.QueueSize = 100
	}
	if c.Notification.SendGrid.MaxRetries == 0 {
		c.Notification.SendGrid.MaxRetries = 3
	}

	if c.JWT.Secret == "" {
		c.JWT.Secret = "avrental-local-session-secret-change-me"
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}

	if c.HTTP.Host == "" {
		c.HTTP.Host = "127.0.0.1"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}

	if c.Scheduler.PendingPaymentReminders == "" {
		c.Scheduler.PendingPaymentReminders = "0 0 9 * * *" // Daily at 9 AM UTC
	}
	if c.Scheduler.FleetSnapshot == "" {
		c.Scheduler.FleetSnapshot = "0 */30 * * * *" // Every 30 minutes
	}
}

// Validate fills defaults and checks if the configuration is valid
func (c *Config) Validate() error {
	c.applyDefaults()

	if c.Rental.DepositCents < 0 {
		return fmt.Errorf("rental deposit cannot be negative: %d", c.Rental.DepositCents)
	}

	for i, ch := range c.Notification.Channels {
		ch = strings.ToLower(strings.TrimSpace(ch))
		switch ch {
		case ChannelLog, ChannelInbox:
		case ChannelEmail:
			if c.Notification.SendGrid.APIKey == "" {
				return fmt.Errorf("sendgrid api key is required for the email channel")
			}
			if c.Notification.SendGrid.FromEmail == "" {
				return fmt.Errorf("sendgrid from email is required for the email channel")
			}
		default:
			return fmt.Errorf("unknown notification channel: %q", ch)
		}
		c.Notification.Channels[i] = ch
	}

	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry < 0 {
		return fmt.Errorf("invalid JWT expiry: %d", c.JWT.AccessTokenExpiry)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port: %d", c.HTTP.Port)
	}

	return nil
}

// HasChannel reports whether a notification channel is enabled
func (c *Config) HasChannel(name string) bool {
	for _, ch := range c.Notification.Channels {
		if ch == name {
			return true
		}
	}
	return false
}

// GetHTTPAddress returns the report API listen address
func (c *Config) GetHTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}
