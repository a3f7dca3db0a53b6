package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"idpay/pkg/idpay"
)

type Config struct {
	Env   string // "development", "production"
	IDPay IDPayConfig
}

type IDPayConfig struct {
	APIKey   string
	Sandbox  bool
	BaseURL  string
	Timeout  time.Duration
	Callback string
}

// Load reads configuration from .env file and environment variables.
func Load() (*Config, error) {
	// Load .env file (ignore error if missing)
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("IDPAY_SANDBOX", false)
	viper.SetDefault("IDPAY_BASE_URL", idpay.DefaultBaseURL)
	viper.SetDefault("IDPAY_TIMEOUT", "30s")

	timeout, err := time.ParseDuration(viper.GetString("IDPAY_TIMEOUT"))
	if err != nil {
		timeout = 30 * time.Second
	}

	cfg := &Config{
		Env: viper.GetString("APP_ENV"),
		IDPay: IDPayConfig{
			APIKey:   viper.GetString("IDPAY_API_KEY"),
			Sandbox:  viper.GetBool("IDPAY_SANDBOX"),
			BaseURL:  viper.GetString("IDPAY_BASE_URL"),
			Timeout:  timeout,
			Callback: viper.GetString("IDPAY_CALLBACK"),
		},
	}

	if cfg.IDPay.APIKey == "" {
		return nil, fmt.Errorf("IDPAY_API_KEY is required")
	}
	return cfg, nil
}
