package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env           string
	Port          string
	SessionSecret string
	DatabaseURL   string
	RedisURL      string

	FrontendURLEndsWith string

	// ECPay credentials from env; the SystemParameter row overrides
	// these when set, so the gateway can be reconfigured without a
	// deploy.
	ECPayMerchantID string
	ECPayHashKey    string
	ECPayHashIV     string

	SendinblueAPIKey string // transactional email (Brevo)
	MailFrom         string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	mailFrom := viper.GetString("MAIL_FROM")
	if mailFrom == "" {
		mailFrom = "noreply@smartfirm.tw"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		ECPayMerchantID:     viper.GetString("ECPAY_MERCHANT_ID"),
		ECPayHashKey:        viper.GetString("ECPAY_HASH_KEY"),
		ECPayHashIV:         viper.GetString("ECPAY_HASH_IV"),
		SendinblueAPIKey:    viper.GetString("SENDINBLUE_API_KEY"),
		MailFrom:            mailFrom,
	}, nil
}
