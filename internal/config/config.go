package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the static installation settings for one hospital deployment.
// It is loaded once at process start and must not be mutated afterwards; all
// consumers receive it by injection.
type Config struct {
	AppName string `mapstructure:"APP_NAME"`
	Env     string `mapstructure:"ENV"`
	Port    string `mapstructure:"PORT"`

	APIKey     string `mapstructure:"API_KEY"`
	AllowedIP1 string `mapstructure:"API_ALLOWED_IP1"`
	AllowedIP2 string `mapstructure:"API_ALLOWED_IP2"`
	HospCode   string `mapstructure:"HOSP_CODE"`
	HospCode9  string `mapstructure:"HOSP_CODE9"`
	HospName   string `mapstructure:"HOSP_NAME"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

var hospCodePattern = regexp.MustCompile(`^\d{5}$`)

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("APP_NAME", "hie-agent")
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8000")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("REQUEST_TIMEOUT", "30s")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("APP_NAME")
	v.BindEnv("ENV")
	v.BindEnv("PORT")
	v.BindEnv("API_KEY")
	v.BindEnv("API_ALLOWED_IP1")
	v.BindEnv("API_ALLOWED_IP2")
	v.BindEnv("HOSP_CODE")
	v.BindEnv("HOSP_CODE9")
	v.BindEnv("HOSP_NAME")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("REQUEST_TIMEOUT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
// Debug detail on 500 responses is suppressed in this mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowedIPs returns the configured source allow-list with absent entries
// excluded. An unset entry is never treated as a wildcard.
func (c *Config) AllowedIPs() map[string]bool {
	ips := make(map[string]bool, 2)
	for _, ip := range []string{c.AllowedIP1, c.AllowedIP2} {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			ips[ip] = true
		}
	}
	return ips
}

// Validate checks that the configuration is safe to run. The gateway refuses
// to start without the credentials and tenant binding the authorization gate
// depends on.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY is required")
	}
	if c.HospCode == "" {
		return fmt.Errorf("HOSP_CODE is required")
	}
	if !hospCodePattern.MatchString(c.HospCode) {
		return fmt.Errorf("HOSP_CODE must be a 5-digit code, got %q", c.HospCode)
	}
	if c.HospCode9 != "" && len(c.HospCode9) != 9 {
		return fmt.Errorf("HOSP_CODE9 must be 9 characters, got %d", len(c.HospCode9))
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if len(c.AllowedIPs()) == 0 {
		return fmt.Errorf("at least one of API_ALLOWED_IP1 / API_ALLOWED_IP2 must be set")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}
