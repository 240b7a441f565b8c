// Package config loads dashboard and simulator settings from configs/config.yml,
// an optional .env file and DRYER_* environment variables (highest priority).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "DRYER"
	configName = "config"
)

type Config struct {
	Port      string          `mapstructure:"port"`
	LogLevel  string          `mapstructure:"log_level"`
	Device    DeviceConfig    `mapstructure:"device"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	MQTT      MQTTConfig      `mapstructure:"mqtt"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
}

// DeviceConfig points the dashboard at the dryer's control server.
type DeviceConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	ReconnectDelay   time.Duration `mapstructure:"reconnect_delay"`
	HandshakeTimeout time.Duration `mapstructure:"handshake_timeout"`
	HTTPTimeout      time.Duration `mapstructure:"http_timeout"`
}

type DashboardConfig struct {
	MaxDataPoints int `mapstructure:"max_data_points"`
	EventLogSize  int `mapstructure:"event_log_size"`
}

// MQTTConfig controls the optional snapshot mirror.
type MQTTConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Broker   string `mapstructure:"broker"`
	ClientID string `mapstructure:"client_id"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Topic    string `mapstructure:"topic"`
}

// SimulatorConfig is read by cmd/dryersim. With DebugEndpoints off the
// /debug/* routes are not served, which exercises the dashboard's fallbacks.
type SimulatorConfig struct {
	Port           string        `mapstructure:"port"`
	Tick           time.Duration `mapstructure:"tick"`
	DebugEndpoints bool          `mapstructure:"debug_endpoints"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8090")
	v.SetDefault("log_level", "info")

	v.SetDefault("device.base_url", "http://localhost:8080")
	v.SetDefault("device.reconnect_delay", 2*time.Second)
	v.SetDefault("device.handshake_timeout", 5*time.Second)
	v.SetDefault("device.http_timeout", 5*time.Second)

	v.SetDefault("dashboard.max_data_points", 60)
	v.SetDefault("dashboard.event_log_size", 500)

	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.client_id", "filament-dashboard")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.topic", "dryer/snapshot")

	v.SetDefault("simulator.port", "8080")
	v.SetDefault("simulator.tick", 2*time.Second)
	v.SetDefault("simulator.debug_endpoints", true)
}

// Load reads <dir>/config.yml if present. A missing file is not an error; a
// malformed one is.
func Load(dir string) (*Config, error) {
	// .env is optional, same as in local development setups
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(dir)
	v.SetConfigName(configName)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Device.BaseURL) == "" {
		return errors.New("device.base_url must be set")
	}
	if c.Device.ReconnectDelay <= 0 {
		return fmt.Errorf("device.reconnect_delay must be positive, got %s", c.Device.ReconnectDelay)
	}
	if c.Dashboard.MaxDataPoints <= 0 {
		return fmt.Errorf("dashboard.max_data_points must be positive, got %d", c.Dashboard.MaxDataPoints)
	}
	if c.MQTT.Enabled && strings.TrimSpace(c.MQTT.Topic) == "" {
		return errors.New("mqtt.topic must be set when mqtt is enabled")
	}
	return nil
}
