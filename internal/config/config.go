// Package config provides configuration loading and validation for the
// userbot. Values come from a .env style file plus process environment
// variables and are validated before startup completes.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// SessionKey is the .env key holding the Telegram string session. The
// session storage rewrites this key when the client issues a new session.
const SessionKey = "TELEGRAM_STRING_SESSION"

const (
	defaultLogLevel           = "info"
	defaultLogFile            = "log.txt"
	defaultDexScreenerBaseURL = "https://api.dexscreener.com"
	defaultLookupTimeout      = 10 * time.Second
)

// Config defines the application configuration parameters: Telegram
// API credentials and session, the monitored chat, the Discord webhook
// sink, logging, and the market-data lookup settings.
type Config struct {
	TelegramAPIID   int    `mapstructure:"TELEGRAM_API_ID"         validate:"required,gt=0"`
	TelegramAPIHash string `mapstructure:"TELEGRAM_API_HASH"       validate:"required"`
	StringSession   string `mapstructure:"TELEGRAM_STRING_SESSION"`
	TargetChat      string `mapstructure:"TARGET_CHAT"             validate:"required"`
	WebhookURL      string `mapstructure:"DISCORD_WEBHOOK_URL"     validate:"required,url"`

	LogLevel string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogJSON  bool   `mapstructure:"LOG_JSON"`
	LogFile  string `mapstructure:"LOG_FILE"  validate:"required"`

	DexScreenerBaseURL string        `mapstructure:"DEXSCREENER_BASE_URL" validate:"url"`
	LookupTimeout      time.Duration `mapstructure:"LOOKUP_TIMEOUT"       validate:"min=1s,max=1m"`

	// Path records where the configuration was loaded from so the
	// session storage can write updates back to the same file.
	Path string `mapstructure:"-"`
}

// Load reads configuration from the .env file at path, merges process
// environment variables over it, and validates the result. A missing
// file is tolerated (environment-only operation); a missing required
// setting is not.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		slog.Info("config file not found, using environment only", "path", path)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Path = path

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Debug("configuration loaded",
		"target_chat", cfg.TargetChat,
		"log_file", cfg.LogFile,
		"lookup_timeout", cfg.LookupTimeout)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Required keys get empty defaults so environment lookups are
	// registered; validation rejects them when still unset.
	v.SetDefault("TELEGRAM_API_ID", 0)
	v.SetDefault("TELEGRAM_API_HASH", "")
	v.SetDefault("TELEGRAM_STRING_SESSION", "")
	v.SetDefault("TARGET_CHAT", "")
	v.SetDefault("DISCORD_WEBHOOK_URL", "")

	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_FILE", defaultLogFile)
	v.SetDefault("DEXSCREENER_BASE_URL", defaultDexScreenerBaseURL)
	v.SetDefault("LOOKUP_TIMEOUT", defaultLookupTimeout)
}
