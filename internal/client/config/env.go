package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/dmitrijs2005/eventdesk/internal/timex"
)

const envPrefix = "EVENTDESK"

// envConfig maps EVENTDESK_* variables, e.g. EVENTDESK_API_BASE_URL.
type envConfig struct {
	APIBaseURL      string         `envconfig:"API_BASE_URL"`
	PushURL         string         `envconfig:"PUSH_URL"`
	DBPath          string         `envconfig:"DB_PATH"`
	RequestTimeout  timex.Duration `envconfig:"REQUEST_TIMEOUT"`
	LogLevel        string         `envconfig:"LOG_LEVEL"`
	LogFormat       string         `envconfig:"LOG_FORMAT"`
	NotificationAck string         `envconfig:"NOTIFICATION_ACK"`
}

func parseEnv(cfg *Config) error {
	var ec envConfig
	if err := envconfig.Process(envPrefix, &ec); err != nil {
		return fmt.Errorf("config env: %w", err)
	}

	setString(&cfg.APIBaseURL, ec.APIBaseURL)
	setString(&cfg.PushURL, ec.PushURL)
	setString(&cfg.DBPath, ec.DBPath)
	setString(&cfg.LogLevel, ec.LogLevel)
	setString(&cfg.LogFormat, ec.LogFormat)
	setString(&cfg.NotificationAck, ec.NotificationAck)
	setDuration(&cfg.RequestTimeout, ec.RequestTimeout)
	return nil
}
