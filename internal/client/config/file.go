package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/eventdesk/internal/flagx"
	"github.com/dmitrijs2005/eventdesk/internal/timex"
)

// FileConfig is the on-disk shape of the configuration, JSON or YAML.
// Durations accept "3s" or integer nanoseconds. Absent keys keep the
// previous value.
type FileConfig struct {
	APIBaseURL      string         `json:"api_base_url" yaml:"api_base_url"`
	PushURL         string         `json:"push_url" yaml:"push_url"`
	DBPath          string         `json:"db_path" yaml:"db_path"`
	RequestTimeout  timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
	LogFormat       string         `json:"log_format" yaml:"log_format"`
	NotificationAck string         `json:"notification_ack" yaml:"notification_ack"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc FileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.PushURL, fc.PushURL)
	setString(&cfg.DBPath, fc.DBPath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.NotificationAck, fc.NotificationAck)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
