// Package config holds the assistant's runtime settings.
//
// Settings come from defaults, then OFFICEPAL_* environment variables
// (a .env file is loaded by the entrypoint before this runs), then CLI
// flags applied by the caller. The Anthropic API key is deliberately
// not part of the config: the SDK reads ANTHROPIC_API_KEY itself and a
// missing key fails at the first chat call, not at startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jmadden/officepal/internal/provider"
)

// Defaults mirror the assistant's original resource names.
const (
	DefaultHistoryPath  = "chat_history.json"
	DefaultMeetingsPath = "meetings.json"
	DefaultMaxTokens    = 1024
	DefaultTemperature  = 0.7
	DefaultTypingDelay  = 15 * time.Millisecond
)

// Config represents the application configuration.
type Config struct {
	Model        string
	MaxTokens    int64
	Temperature  float64
	HistoryPath  string
	MeetingsPath string
	TypingDelay  time.Duration
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		Model:        provider.DefaultModel,
		MaxTokens:    DefaultMaxTokens,
		Temperature:  DefaultTemperature,
		HistoryPath:  DefaultHistoryPath,
		MeetingsPath: DefaultMeetingsPath,
		TypingDelay:  DefaultTypingDelay,
	}
}

// ApplyEnv overrides settings from OFFICEPAL_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("OFFICEPAL_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("OFFICEPAL_HISTORY_FILE"); v != "" {
		c.HistoryPath = v
	}
	if v := os.Getenv("OFFICEPAL_MEETINGS_FILE"); v != "" {
		c.MeetingsPath = v
	}
	if v := os.Getenv("OFFICEPAL_MAX_TOKENS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: OFFICEPAL_MAX_TOKENS: %w", err)
		}
		c.MaxTokens = n
	}
	if v := os.Getenv("OFFICEPAL_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: OFFICEPAL_TEMPERATURE: %w", err)
		}
		c.Temperature = f
	}
	if v := os.Getenv("OFFICEPAL_TYPING_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: OFFICEPAL_TYPING_DELAY: %w", err)
		}
		c.TypingDelay = d
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.MaxTokens, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.Temperature, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.HistoryPath, validation.Required),
		validation.Field(&c.MeetingsPath, validation.Required),
	)
}
