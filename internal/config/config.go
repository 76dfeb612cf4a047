package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Operating modes.
const (
	ModeAuto  = "auto"  // sunrise/sunset from coordinates
	ModeFixed = "fixed" // wakeup/bedtime from the schedule section
)

// Easing kinds for the transition curve.
const (
	EasingLinear    = "linear"
	EasingIn        = "ease_in"
	EasingOut       = "ease_out"
	EasingInOut     = "ease_in_out"
	timeOfDayLayout = "15:04"
)

// Location is the geographic position used in auto mode.
type Location struct {
	Latitude  float64 `mapstructure:"latitude" yaml:"latitude"`
	Longitude float64 `mapstructure:"longitude" yaml:"longitude"`
}

// Schedule holds the fixed-mode day boundaries as HH:MM local time.
type Schedule struct {
	Wakeup  string `mapstructure:"wakeup" yaml:"wakeup"`
	Bedtime string `mapstructure:"bedtime" yaml:"bedtime"`
}

// Transition controls how the temperature moves between extremes.
type Transition struct {
	DurationMinutes int    `mapstructure:"duration_minutes" yaml:"duration_minutes"`
	Easing          string `mapstructure:"easing" yaml:"easing"`
}

// Temperature holds the day/night Kelvin extremes.
type Temperature struct {
	Day   int `mapstructure:"day" yaml:"day"`
	Night int `mapstructure:"night" yaml:"night"`
}

// Daemon holds tick-loop and output settings.
type Daemon struct {
	TickIntervalSeconds  int    `mapstructure:"tick_interval_seconds" yaml:"tick_interval_seconds"`
	OptimizeUpdates      bool   `mapstructure:"optimize_updates" yaml:"optimize_updates"`
	StatusUpdateInterval int    `mapstructure:"status_update_interval" yaml:"status_update_interval"`
	StatusFile           string `mapstructure:"status_file" yaml:"status_file"`
	DBPath               string `mapstructure:"db_path" yaml:"db_path"`
	ListenPort           string `mapstructure:"listen_port" yaml:"listen_port"`
}

// Setter configures the external temperature-setter invocation.
type Setter struct {
	Command        string `mapstructure:"command" yaml:"command"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// Config is the resolved, immutable configuration for one run.
type Config struct {
	Mode        string      `mapstructure:"mode" yaml:"mode"`
	Location    Location    `mapstructure:"location" yaml:"location"`
	Schedule    Schedule    `mapstructure:"schedule" yaml:"schedule"`
	Transition  Transition  `mapstructure:"transition" yaml:"transition"`
	Temperature Temperature `mapstructure:"temperature" yaml:"temperature"`
	Daemon      Daemon      `mapstructure:"daemon" yaml:"daemon"`
	Setter      Setter      `mapstructure:"setter" yaml:"setter"`
	LogLevel    string      `mapstructure:"log_level" yaml:"log_level"`
}

// envBindings maps config keys to their fixed environment variable names.
// Environment values take precedence over the file.
var envBindings = map[string]string{
	"mode":                          "SUNDIAL_MODE",
	"location.latitude":             "SUNDIAL_LATITUDE",
	"location.longitude":            "SUNDIAL_LONGITUDE",
	"schedule.wakeup":               "SUNDIAL_WAKEUP",
	"schedule.bedtime":              "SUNDIAL_BEDTIME",
	"transition.duration_minutes":   "SUNDIAL_TRANSITION_DURATION",
	"transition.easing":             "SUNDIAL_EASING",
	"temperature.day":               "SUNDIAL_DAY_TEMP",
	"temperature.night":             "SUNDIAL_NIGHT_TEMP",
	"daemon.tick_interval_seconds":  "SUNDIAL_TICK_INTERVAL",
	"daemon.optimize_updates":       "SUNDIAL_OPTIMIZE_UPDATES",
	"daemon.status_update_interval": "SUNDIAL_STATUS_UPDATE_INTERVAL",
	"daemon.status_file":            "SUNDIAL_STATUS_FILE",
	"daemon.db_path":                "SUNDIAL_DB_PATH",
	"daemon.listen_port":            "SUNDIAL_PORT",
	"setter.command":                "SUNDIAL_SETTER_COMMAND",
	"setter.timeout_seconds":        "SUNDIAL_SETTER_TIMEOUT",
	"log_level":                     "SUNDIAL_LOG_LEVEL",
}

var (
	errInvalidMode      = errors.New("mode must be auto or fixed")
	errInvalidLatitude  = errors.New("location.latitude must be within [-90, 90]")
	errInvalidLongitude = errors.New("location.longitude must be within [-180, 180]")
	errInvalidEasing    = errors.New("transition.easing must be linear, ease_in, ease_out, or ease_in_out")
	errInvalidDuration  = errors.New("transition.duration_minutes must not be negative")
	errInvalidDayTemp   = errors.New("temperature.day must be a positive Kelvin value")
	errInvalidNightTemp = errors.New("temperature.night must be a positive Kelvin value")
	errInvalidTick      = errors.New("daemon.tick_interval_seconds must be at least 1")
	errInvalidStatusInt = errors.New("daemon.status_update_interval must not be negative")
)

// setDefaults registers default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", ModeAuto)
	v.SetDefault("location.latitude", 0.0)
	v.SetDefault("location.longitude", 0.0)
	v.SetDefault("schedule.wakeup", "07:00")
	v.SetDefault("schedule.bedtime", "22:00")
	v.SetDefault("transition.duration_minutes", 60)
	v.SetDefault("transition.easing", EasingLinear)
	v.SetDefault("temperature.day", 6500)
	v.SetDefault("temperature.night", 3500)
	v.SetDefault("daemon.tick_interval_seconds", 5)
	v.SetDefault("daemon.optimize_updates", true)
	v.SetDefault("daemon.status_update_interval", 1)
	v.SetDefault("daemon.status_file", "/tmp/sundial.status")
	v.SetDefault("daemon.db_path", "sundial.db")
	v.SetDefault("daemon.listen_port", "8437")
	v.SetDefault("setter.command", "hyprctl")
	v.SetDefault("setter.timeout_seconds", 5)
	v.SetDefault("log_level", "info")
}

// Default returns the configuration with every default applied and no file
// or environment input.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads the configuration file (if present), applies environment
// overrides and validates the result. An empty path falls back to
// configs/config.yml and ~/.config/sundial/config.yml.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath("configs")
		v.AddConfigPath("$HOME/.config/sundial")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default config is fine: defaults plus environment apply.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks ranges and formats. Configuration errors are not
// recoverable at runtime, so callers fail fast before entering the tick loop.
func Validate(cfg *Config) error {
	if cfg.Mode != ModeAuto && cfg.Mode != ModeFixed {
		return errInvalidMode
	}
	if cfg.Location.Latitude < -90 || cfg.Location.Latitude > 90 {
		return errInvalidLatitude
	}
	if cfg.Location.Longitude < -180 || cfg.Location.Longitude > 180 {
		return errInvalidLongitude
	}
	if _, err := ParseTimeOfDay(cfg.Schedule.Wakeup); err != nil {
		return fmt.Errorf("schedule.wakeup: %w", err)
	}
	if _, err := ParseTimeOfDay(cfg.Schedule.Bedtime); err != nil {
		return fmt.Errorf("schedule.bedtime: %w", err)
	}
	switch cfg.Transition.Easing {
	case EasingLinear, EasingIn, EasingOut, EasingInOut:
	default:
		return errInvalidEasing
	}
	if cfg.Transition.DurationMinutes < 0 {
		return errInvalidDuration
	}
	if cfg.Temperature.Day <= 0 {
		return errInvalidDayTemp
	}
	if cfg.Temperature.Night <= 0 {
		return errInvalidNightTemp
	}
	if cfg.Daemon.TickIntervalSeconds < 1 {
		return errInvalidTick
	}
	if cfg.Daemon.StatusUpdateInterval < 0 {
		return errInvalidStatusInt
	}
	if cfg.Setter.TimeoutSeconds < 1 {
		cfg.Setter.TimeoutSeconds = 5
	}
	return nil
}

// ParseTimeOfDay parses an HH:MM string into an offset from midnight.
func ParseTimeOfDay(s string) (time.Duration, error) {
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// TickInterval returns the tick period as a duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Daemon.TickIntervalSeconds) * time.Second
}

// TransitionDuration returns the transition window width as a duration.
func (c *Config) TransitionDuration() time.Duration {
	return time.Duration(c.Transition.DurationMinutes) * time.Minute
}

// SetterTimeout returns the bound on a single external setter invocation.
func (c *Config) SetterTimeout() time.Duration {
	return time.Duration(c.Setter.TimeoutSeconds) * time.Second
}

// ListenAddr returns the loopback address of the control API.
func (c *Config) ListenAddr() string {
	return "127.0.0.1:" + c.Daemon.ListenPort
}
