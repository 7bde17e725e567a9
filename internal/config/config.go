package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // calendar.location must resolve on hosts without zoneinfo

	"github.com/spf13/viper"
)

const (
	defaultLocation      = "Europe/Ljubljana"
	defaultCheckInterval = time.Minute
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Log      LogConfig      `mapstructure:"log"`
	Output   OutputConfig   `mapstructure:"output"`
}

// CalendarConfig represents holiday calendar configuration
type CalendarConfig struct {
	Location          string `mapstructure:"location"`            // IANA zone used for "now"
	ExtraHolidaysFile string `mapstructure:"extra_holidays_file"` // Optional MM-DD list
}

// WatchConfig represents watch mode configuration
type WatchConfig struct {
	CheckInterval string `mapstructure:"check_interval"`
	SystemTray    bool   `mapstructure:"system_tray"` // Show system tray icon (Windows only)
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// OutputConfig represents CLI output configuration
type OutputConfig struct {
	Format string `mapstructure:"format"` // text, json or yaml
	Color  bool   `mapstructure:"color"`
}

// Load loads configuration from file. A missing file is not an error,
// defaults apply instead.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("calendar.location", defaultLocation)
	v.SetDefault("watch.check_interval", defaultCheckInterval.String())
	v.SetDefault("log.level", "info")
	v.SetDefault("output.format", "text")
	v.SetDefault("output.color", true)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.tariff-blocks")
		v.AddConfigPath("/etc/tariff-blocks")
	}

	v.SetEnvPrefix("TARIFF_BLOCKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Calendar.GetLocationName()); err != nil {
		return fmt.Errorf("calendar.location: %w", err)
	}

	if c.Watch.CheckInterval != "" {
		interval, err := time.ParseDuration(c.Watch.CheckInterval)
		if err != nil {
			return fmt.Errorf("watch.check_interval: %w", err)
		}
		if interval <= 0 {
			return fmt.Errorf("watch.check_interval must be positive")
		}
	}

	switch c.Output.Format {
	case "", "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format must be 'text', 'json' or 'yaml', got '%s'", c.Output.Format)
	}

	return nil
}

// GetLocationName returns the configured zone name or the default
func (c *CalendarConfig) GetLocationName() string {
	if c.Location == "" {
		return defaultLocation
	}
	return c.Location
}

// GetLocation returns the configured time zone, falling back to local time
func (c *CalendarConfig) GetLocation() *time.Location {
	loc, err := time.LoadLocation(c.GetLocationName())
	if err != nil {
		return time.Local
	}
	return loc
}

// GetCheckInterval returns watch check interval duration
func (c *WatchConfig) GetCheckInterval() time.Duration {
	if c.CheckInterval == "" {
		return defaultCheckInterval
	}
	duration, err := time.ParseDuration(c.CheckInterval)
	if err != nil || duration <= 0 {
		return defaultCheckInterval
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Calendar.ExtraHolidaysFile = os.ExpandEnv(c.Calendar.ExtraHolidaysFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
