package config

import (
	"errors"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds every recognized option. Values come from an optional
// YAML file overlaid with environment variables.
type Config struct {
	HTTPAddr string `yaml:"http_addr" env:"HTTP_ADDR" env-default:":8080"`
	GinMode  string `yaml:"gin_mode" env:"GIN_MODE" env-default:"debug"`

	// DBDriver selects the storage backend: "sqlite" or "mysql".
	DBDriver string `yaml:"db_driver" env:"DB_DRIVER" env-default:"sqlite"`
	DBPath   string `yaml:"db_path" env:"DB_PATH" env-default:"project_bot.db"`
	DBDSN    string `yaml:"db_dsn" env:"DB_DSN"`

	// ReminderHours is the deadline lookahead window; tasks due within
	// this many hours of a scan are notified. ReminderIntervalMinutes
	// is the scan cadence; zero or negative disables the scheduler.
	ReminderHours           int `yaml:"reminder_hours" env:"REMINDER_HOURS" env-default:"48"`
	ReminderIntervalMinutes int `yaml:"reminder_interval_minutes" env:"REMINDER_LOOP_MINUTES" env-default:"60"`

	// ChannelID, when set, restricts mutation commands to that channel.
	ChannelID string `yaml:"channel_id" env:"PROJECT_CHANNEL_ID"`

	// ModeratorIDs lists user ids granted the privileged capability.
	ModeratorIDs []string `yaml:"moderator_ids" env:"MODERATOR_IDS"`
}

// MustLoad reads the configuration or exits. An empty path means
// environment only; a missing file falls back to environment only.
func MustLoad(configPath string) Config {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read env: %s", err)
		}
		return cfg
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				log.Fatalf("cannot read env: %s", err)
			}
			return cfg
		}
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}

	return cfg
}
