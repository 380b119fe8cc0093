package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the eventdesk CLI.
type Config struct {
	APIBaseURL      string
	PushURL         string
	DBPath          string
	RequestTimeout  time.Duration
	LogLevel        string
	LogFormat       string
	NotificationAck string
}

// LoadDefaults populates c with defaults matching a local backend.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.PushURL = "ws://localhost:5000/ws"
	c.DBPath = "eventdesk.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "console"
	c.NotificationAck = "dismiss"
}

// LoadConfig applies defaults, then the config file named by -c/-config,
// then EVENTDESK_* environment variables, then flags. Later sources win.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.APIBaseURL == "":
		return fmt.Errorf("config: api base url is empty")
	case c.PushURL == "":
		return fmt.Errorf("config: push url is empty")
	case c.DBPath == "":
		return fmt.Errorf("config: db path is empty")
	case c.RequestTimeout <= 0:
		return fmt.Errorf("config: request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
