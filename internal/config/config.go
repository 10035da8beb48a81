// Package config loads server settings from the environment.
//
// A `.env` file in the working directory is read first (development only;
// missing files are ignored), then variables are parsed into Config.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/robalobadob/julekalender/internal/words"
)

// Config holds every tunable of the server.
type Config struct {
	Port      string `env:"PORT"       envDefault:"5175"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // json | console
	DBPath    string `env:"DB_PATH"    envDefault:"./data/app.db"`

	ClientOrigin string        `env:"CLIENT_ORIGIN"  envDefault:"http://localhost:5173"`
	JWTSecret    string        `env:"JWT_SECRET"     envDefault:"dev_secret_change_me"`
	TokenTTL     time.Duration `env:"GAME_TOKEN_TTL" envDefault:"48h"`
	Production   bool          `env:"PRODUCTION"`

	WordsFile     string `env:"CALENDAR_WORDS_FILE"`
	WordsSeed     uint64 `env:"WORDS_SEED"`
	CalendarMonth int    `env:"CALENDAR_MONTH" envDefault:"12"`
	CalendarDays  int    `env:"CALENDAR_DAYS"  envDefault:"25"`
	// CalendarDay pins "today" to a fixed day index for testing.
	CalendarDay int `env:"CALENDAR_DAY"`

	DictionaryURL      string        `env:"DICTIONARY_URL"      envDefault:"https://ordregister.dk/lemma/COR/json"`
	DictionaryTimeout  time.Duration `env:"DICTIONARY_TIMEOUT"  envDefault:"3s"`
	DictionaryDisabled bool          `env:"DICTIONARY_DISABLED"`

	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"24h"`
}

// Load reads .env (if present) and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.CalendarMonth < 1 || c.CalendarMonth > 12 {
		return fmt.Errorf("CALENDAR_MONTH must be 1-12, got %d", c.CalendarMonth)
	}
	// Days past words.Days would be in the window but have no calendar word.
	if c.CalendarDays < 1 || c.CalendarDays > words.Days {
		return fmt.Errorf("CALENDAR_DAYS must be 1-%d, got %d", words.Days, c.CalendarDays)
	}
	if c.CalendarDay < 0 || c.CalendarDay > c.CalendarDays {
		return fmt.Errorf("CALENDAR_DAY must be 0-%d, got %d", c.CalendarDays, c.CalendarDay)
	}
	return nil
}
