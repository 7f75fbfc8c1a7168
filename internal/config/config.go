// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/xkilldash9x/autoorbit/internal/motion"
)

// Config holds the entire application configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Motion MotionConfig `mapstructure:"motion" yaml:"motion"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// WindowConfig is an inclusive duration window in the config file.
type WindowConfig struct {
	Min time.Duration `mapstructure:"min" yaml:"min"`
	Max time.Duration `mapstructure:"max" yaml:"max"`
}

// MotionConfig tunes the motion session. Field semantics mirror
// motion.Params; see that type for details.
type MotionConfig struct {
	BaseRadius      float64       `mapstructure:"base_radius" yaml:"base_radius"`
	AngularVelocity float64       `mapstructure:"angular_velocity" yaml:"angular_velocity"`
	Jitter          float64       `mapstructure:"jitter" yaml:"jitter"`
	TickInterval    time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
	StartupDelay    time.Duration `mapstructure:"startup_delay" yaml:"startup_delay"`
	ScreenMargin    float64       `mapstructure:"screen_margin" yaml:"screen_margin"`

	EnableKeyboardSteps bool `mapstructure:"enable_keyboard_steps" yaml:"enable_keyboard_steps"`
	EnableSaccades      bool `mapstructure:"enable_saccades" yaml:"enable_saccades"`
	EnableUtilityHold   bool `mapstructure:"enable_utility_hold" yaml:"enable_utility_hold"`

	StepInterval    WindowConfig `mapstructure:"step_interval" yaml:"step_interval"`
	StepHold        WindowConfig `mapstructure:"step_hold" yaml:"step_hold"`
	SaccadeInterval WindowConfig `mapstructure:"saccade_interval" yaml:"saccade_interval"`

	JitterRandomScale  float64 `mapstructure:"jitter_random_scale" yaml:"jitter_random_scale"`
	WobbleScale        float64 `mapstructure:"wobble_scale" yaml:"wobble_scale"`
	WobbleVerticalBias float64 `mapstructure:"wobble_vertical_bias" yaml:"wobble_vertical_bias"`
	SpinNoiseScale     float64 `mapstructure:"spin_noise_scale" yaml:"spin_noise_scale"`

	Seed int64 `mapstructure:"seed" yaml:"seed"`
}

// Params converts the config section into engine parameters. Normalization
// and validation are the engine's job; this is a plain mapping.
func (m MotionConfig) Params() motion.Params {
	return motion.Params{
		BaseRadius:          m.BaseRadius,
		AngularVelocity:     m.AngularVelocity,
		Jitter:              m.Jitter,
		TickInterval:        m.TickInterval,
		StartupDelay:        m.StartupDelay,
		ScreenMargin:        m.ScreenMargin,
		EnableKeyboardSteps: m.EnableKeyboardSteps,
		EnableSaccades:      m.EnableSaccades,
		EnableUtilityHold:   m.EnableUtilityHold,
		StepInterval:        motion.Span{Low: m.StepInterval.Min, High: m.StepInterval.Max},
		StepHold:            motion.Span{Low: m.StepHold.Min, High: m.StepHold.Max},
		SaccadeInterval:     motion.Span{Low: m.SaccadeInterval.Min, High: m.SaccadeInterval.Max},
		JitterRandomScale:   m.JitterRandomScale,
		WobbleScale:         m.WobbleScale,
		WobbleVerticalBias:  m.WobbleVerticalBias,
		SpinNoiseScale:      m.SpinNoiseScale,
		Seed:                m.Seed,
	}
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "autoorbit")
	v.SetDefault("logger.log_file", "autoorbit.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Motion --
	v.SetDefault("motion.base_radius", 220.0)
	v.SetDefault("motion.angular_velocity", 1.25)
	v.SetDefault("motion.jitter", 6.0)
	v.SetDefault("motion.tick_interval", "10ms")
	v.SetDefault("motion.startup_delay", "5s")
	v.SetDefault("motion.screen_margin", 2.0)
	v.SetDefault("motion.enable_keyboard_steps", true)
	v.SetDefault("motion.enable_saccades", true)
	v.SetDefault("motion.enable_utility_hold", false)
	v.SetDefault("motion.step_interval.min", "9s")
	v.SetDefault("motion.step_interval.max", "20s")
	v.SetDefault("motion.step_hold.min", "45ms")
	v.SetDefault("motion.step_hold.max", "120ms")
	v.SetDefault("motion.saccade_interval.min", "4500ms")
	v.SetDefault("motion.saccade_interval.max", "9500ms")
	v.SetDefault("motion.jitter_random_scale", 0.2)
	v.SetDefault("motion.wobble_scale", 0.4)
	v.SetDefault("motion.wobble_vertical_bias", 0.6)
	v.SetDefault("motion.spin_noise_scale", 0.16)
	v.SetDefault("motion.seed", 0)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}
	return &cfg, nil
}
