// Package config loads client configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"api"`
	Session struct {
		FilePath string `mapstructure:"file_path"`
	} `mapstructure:"session"`
	Notifications struct {
		// Mode is "local" (events classified client-side) or "server"
		// (pre-computed notifications fetched from the backend).
		Mode         string        `mapstructure:"mode"`
		PollInterval time.Duration `mapstructure:"poll_interval"`
	} `mapstructure:"notifications"`
	Events struct {
		// RefreshCron re-renders the event list on a schedule while a
		// session exists. Accepts cron specs and "@every" intervals.
		RefreshCron string `mapstructure:"refresh_cron"`
	} `mapstructure:"events"`
}

// LoadConfig reads the YAML file at path, overlaid with TASKMANAGER_*
// environment variables. A missing file is not an error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("session.file_path", "data/session.json")
	v.SetDefault("notifications.mode", "local")
	v.SetDefault("notifications.poll_interval", 10*time.Second)
	v.SetDefault("events.refresh_cron", "@every 1m")

	v.SetEnvPrefix("taskmanager")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
