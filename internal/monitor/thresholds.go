package monitor

import (
	"log/slog"

	"github.com/spf13/viper"
)

// Thresholds holds the numeric alerting limits. Values are read once at
// startup and treated as read-only for the lifetime of the monitor.
type Thresholds struct {
	CpuUsage     float64 `mapstructure:"cpu_usage" json:"cpu_usage"`
	MemoryUsage  float64 `mapstructure:"memory_usage" json:"memory_usage"`
	DiskUsage    float64 `mapstructure:"disk_usage" json:"disk_usage"`
	ResponseTime float64 `mapstructure:"response_time" json:"response_time"`
	ErrorRate    float64 `mapstructure:"error_rate" json:"error_rate"`
}

// DefaultThresholds returns the built-in limits used when no config file is
// given or a key is missing from it.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CpuUsage:     80,
		MemoryUsage:  85,
		DiskUsage:    90,
		ResponseTime: 5000,
		ErrorRate:    5,
	}
}

// thresholdKeys are the recognized config keys, also bound to
// AIOPSMON_<KEY> environment variables.
var thresholdKeys = []string{"cpu_usage", "memory_usage", "disk_usage", "response_time", "error_rate"}

// LoadThresholds reads limits from a flat JSON file at path, overriding the
// built-in defaults key by key. A missing, unreadable or malformed file is
// never fatal: a warning is logged and the defaults are kept.
func LoadThresholds(path string) Thresholds {
	t := DefaultThresholds()

	v := viper.New()
	v.SetEnvPrefix("aiopsmon")
	for _, key := range thresholdKeys {
		// error only occurs with zero arguments
		_ = v.BindEnv(key)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("Threshold config not loaded, using defaults", "path", path, "err", err)
			return t
		}
	}

	if err := v.Unmarshal(&t); err != nil {
		slog.Warn("Threshold config invalid, using defaults", "path", path, "err", err)
		return DefaultThresholds()
	}
	return t
}
