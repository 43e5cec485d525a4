package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Timezone        string
	Location        *time.Location
	APIBaseURL      string
	APITimeout      time.Duration
	SchedulePath    string
	CredentialsPath string
	// CredentialsKey is the 32-byte AEAD key for the credentials file;
	// nil means the file is stored in plaintext.
	CredentialsKey []byte

	SearchFromTomorrow bool
	BookingWindow      time.Duration

	LogLevel string
}

func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GYMSCHED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("timezone", "Europe/Stockholm")
	v.SetDefault("api.base_url", "https://friskissvettis.brpsystems.com/brponline/api/ver3")
	v.SetDefault("api.timeout", "5s")
	v.SetDefault("schedule.path", "")
	v.SetDefault("credentials.path", "")
	v.SetDefault("credentials.key", "")
	v.SetDefault("booking.search_from_tomorrow", true)
	v.SetDefault("booking.window", "24h")
	v.SetDefault("log.level", "info")

	_ = v.BindEnv("timezone", "GYMSCHED_TIMEZONE")
	_ = v.BindEnv("api.base_url", "GYMSCHED_API_BASE_URL")
	_ = v.BindEnv("api.timeout", "GYMSCHED_API_TIMEOUT")
	_ = v.BindEnv("schedule.path", "GYMSCHED_SCHEDULE_PATH")
	_ = v.BindEnv("credentials.path", "GYMSCHED_CREDENTIALS_PATH")
	_ = v.BindEnv("credentials.key", "GYMSCHED_CREDENTIALS_KEY")
	_ = v.BindEnv("booking.search_from_tomorrow", "GYMSCHED_BOOKING_SEARCH_FROM_TOMORROW")
	_ = v.BindEnv("booking.window", "GYMSCHED_BOOKING_WINDOW")
	_ = v.BindEnv("log.level", "GYMSCHED_LOG_LEVEL", "LOG_LEVEL")

	cfg := Config{
		Timezone:           v.GetString("timezone"),
		APIBaseURL:         strings.TrimSpace(v.GetString("api.base_url")),
		SchedulePath:       v.GetString("schedule.path"),
		CredentialsPath:    v.GetString("credentials.path"),
		SearchFromTomorrow: v.GetBool("booking.search_from_tomorrow"),
		LogLevel:           v.GetString("log.level"),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	cfg.APITimeout, err = time.ParseDuration(v.GetString("api.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid api.timeout: %w", err)
	}
	if cfg.APITimeout <= 0 {
		return Config{}, fmt.Errorf("api.timeout must be positive")
	}

	cfg.BookingWindow, err = time.ParseDuration(v.GetString("booking.window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid booking.window: %w", err)
	}
	if cfg.BookingWindow < 0 {
		return Config{}, fmt.Errorf("booking.window must not be negative")
	}

	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("api.base_url is required")
	}

	if key := strings.TrimSpace(v.GetString("credentials.key")); key != "" {
		cfg.CredentialsKey, err = decodeKey(key)
		if err != nil {
			return Config{}, fmt.Errorf("credentials.key: %w", err)
		}
	}

	if cfg.SchedulePath == "" || cfg.CredentialsPath == "" {
		dir, err := defaultDir()
		if err != nil {
			return Config{}, err
		}
		if cfg.SchedulePath == "" {
			cfg.SchedulePath = filepath.Join(dir, "schedule.json")
		}
		if cfg.CredentialsPath == "" {
			cfg.CredentialsPath = filepath.Join(dir, "credentials.json")
		}
	}

	return cfg, nil
}

func defaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "gymsched"), nil
}

func decodeKey(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		if b, err = base64.RawStdEncoding.DecodeString(s); err != nil {
			return nil, err
		}
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("must decode to 32 bytes (got %d)", len(b))
	}
	return b, nil
}
