package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration, loaded from environment variables.
type Config struct {
	AppPort  string
	DBDriver string
	DBDSN    string

	JWTSecret string
	TokenTTL  time.Duration

	MailHost     string
	MailPort     string
	MailUsername string
	MailPassword string
	MailSender   string

	RabbitMQURL string
}

// Load reads configuration from the environment via Viper. JWT_SECRET has no
// default on purpose: the signing key must be provisioned externally.
func Load() (*Config, error) {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "planets.db")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("MAIL_HOST", "smtp.mailtrap.io")
	viper.SetDefault("MAIL_PORT", "2525")
	viper.SetDefault("MAIL_SENDER", "admin@planetary-api.com")
	viper.AutomaticEnv()

	cfg := &Config{
		AppPort:      viper.GetString("APP_PORT"),
		DBDriver:     viper.GetString("DATABASE_DRIVER"),
		DBDSN:        viper.GetString("DATABASE_DSN"),
		JWTSecret:    viper.GetString("JWT_SECRET"),
		TokenTTL:     viper.GetDuration("TOKEN_TTL"),
		MailHost:     viper.GetString("MAIL_HOST"),
		MailPort:     viper.GetString("MAIL_PORT"),
		MailUsername: viper.GetString("MAIL_USERNAME"),
		MailPassword: viper.GetString("MAIL_PASSWORD"),
		MailSender:   viper.GetString("MAIL_SENDER"),
		RabbitMQURL:  viper.GetString("RABBITMQ_URL"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q (want sqlite or postgres)", cfg.DBDriver)
	}

	return cfg, nil
}
