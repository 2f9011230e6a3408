package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	scheduler "github.com/yj0602/mechanics-scheduler-plus"
)

// Config holds all configuration values.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Slot length in minutes, a positive divisor of 1440.
	SlotGranularity int `mapstructure:"SLOT_GRANULARITY"`
	EndTimeCap      int `mapstructure:"END_TIME_CAP"`
	WeekStartsOn    int `mapstructure:"WEEK_STARTS_ON"`
	UpcomingLimit   int `mapstructure:"UPCOMING_LIMIT"`
}

// Load reads "scheduler.yaml" from the given paths (default "." and "./config"),
// environment variables winning over the file.
func Load(paths ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("scheduler")
	v.SetConfigType("yaml")

	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}

	for _, path := range paths {
		v.AddConfigPath(path)
	}

	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SLOT_GRANULARITY", int(scheduler.DefaultGranularity))
	v.SetDefault("END_TIME_CAP", scheduler.DefaultEndTimeCap)
	v.SetDefault("WEEK_STARTS_ON", int(scheduler.DefaultWeekStartsOn))
	v.SetDefault("UPCOMING_LIMIT", scheduler.DefaultUpcomingLimit)

	if errRead := v.ReadInConfig(); errRead != nil {
		var errNotFound viper.ConfigFileNotFoundError

		if !errors.As(errRead, &errNotFound) {
			return nil,
				fmt.Errorf("read config: %w", errRead)
		}
	}

	var result Config

	if errUnmarshal := v.Unmarshal(&result); errUnmarshal != nil {
		return nil,
			fmt.Errorf("unmarshal config: %w", errUnmarshal)
	}

	if errValidation := result.Validate(); errValidation != nil {
		return nil,
			errValidation
	}

	return &result,
		nil
}

func (c *Config) Settings() scheduler.Settings {
	return scheduler.Settings{
		Granularity:   scheduler.Granularity(c.SlotGranularity),
		EndTimeCap:    c.EndTimeCap,
		UpcomingLimit: c.UpcomingLimit,
		WeekStartsOn:  time.Weekday(c.WeekStartsOn),
	}
}

func (c *Config) Validate() error {
	if errSettings := c.Settings().Validate(); errSettings != nil {
		return fmt.Errorf("config: %w", errSettings)
	}

	if _, errLevel := zapcore.ParseLevel(c.LogLevel); errLevel != nil {
		return fmt.Errorf("config: %w", errLevel)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// NewLogger builds a production logger in production, a colored development one otherwise.
func NewLogger(c *Config) (*zap.Logger, error) {
	level, errLevel := zapcore.ParseLevel(c.LogLevel)
	if errLevel != nil {
		return nil,
			errLevel
	}

	var cfg zap.Config

	if c.IsProduction() {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}
