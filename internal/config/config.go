package config

import (
	"sync/atomic"
)

var configValue atomic.Value

func GetConfig() *Config {
	cfg, _ := configValue.Load().(*Config)
	if cfg == nil {
		return NewDefaultConfig()
	}
	return cfg
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string            `mapstructure:"version"`
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Providers   ProvidersConfig   `mapstructure:"providers"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Geolocation GeolocationConfig `mapstructure:"geolocation"`
	Watch       WatchConfig       `mapstructure:"watch"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

type ProvidersConfig struct {
	Geocoding ProviderConfig `mapstructure:"geocoding"`
	Reverse   ProviderConfig `mapstructure:"reverse"`
	Forecast  ProviderConfig `mapstructure:"forecast"`
	// Timeout in seconds; 0 leaves the transport default in place.
	Timeout int           `mapstructure:"timeout"`
	Breaker BreakerConfig `mapstructure:"breaker"`
}

type ProviderConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
}

type BreakerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Consecutive failures before the breaker opens.
	Failures    int `mapstructure:"failures"`
	OpenTimeout int `mapstructure:"open_timeout"`
}

type PreferencesConfig struct {
	Backend   string `mapstructure:"backend"`
	Path      string `mapstructure:"path"`
	RedisAddr string `mapstructure:"redis_addr"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type GeolocationConfig struct {
	Enabled   bool    `mapstructure:"enabled"`
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	Timeout   int     `mapstructure:"timeout"`
	MaxAge    int     `mapstructure:"max_age"`
}

type WatchConfig struct {
	TickSeconds    int `mapstructure:"tick_seconds"`
	RefreshMinutes int `mapstructure:"refresh_minutes"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Rate    float64 `mapstructure:"rate"`
	Burst   int     `mapstructure:"burst"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		Providers: ProvidersConfig{
			Geocoding: ProviderConfig{
				BaseURL: "https://geocoding-api.open-meteo.com/v1",
			},
			Reverse: ProviderConfig{
				BaseURL:   "https://nominatim.openstreetmap.org",
				UserAgent: "weather-dashboard/1.0",
			},
			Forecast: ProviderConfig{
				BaseURL: "https://api.open-meteo.com/v1",
			},
			Timeout: 0,
			Breaker: BreakerConfig{
				Enabled:     true,
				Failures:    5,
				OpenTimeout: 60,
			},
		},
		Preferences: PreferencesConfig{
			Backend:   "file",
			Path:      "preferences.yaml",
			RedisAddr: "localhost:6379",
			KeyPrefix: "",
		},
		Geolocation: GeolocationConfig{
			Enabled: false,
			Timeout: 10,
			MaxAge:  60,
		},
		Watch: WatchConfig{
			TickSeconds:    60,
			RefreshMinutes: 15,
		},
		RateLimit: RateLimitConfig{
			Enabled: false,
			Rate:    5,
			Burst:   10,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Endpoint:    "tempo:4317",
			ServiceName: "weather-dashboard",
		},
	}
}
