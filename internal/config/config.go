// internal/config/config.go
package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	ILS     ILSConfig     `yaml:"ils"`
	Cache   CacheConfig   `yaml:"cache"`
	Log     LogConfig     `yaml:"log"`
	Tracing TracingConfig `yaml:"tracing"`
	Display DisplayConfig `yaml:"display"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8084"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// ILSConfig points at the integrated library system web service.
type ILSConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"ILS_BASE_URL"   env-required:"true"`
	Timeout   time.Duration `yaml:"timeout"    env:"ILS_TIMEOUT"    env-default:"5s"`
	RateLimit float64       `yaml:"rate_limit" env:"ILS_RATE_LIMIT" env-default:"20"`
	Burst     int           `yaml:"burst"      env:"ILS_BURST"      env-default:"10"`
}

// CacheConfig controls the raw ILS payload cache. An empty DSN keeps the
// cache in memory.
type CacheConfig struct {
	Enabled       bool          `yaml:"enabled"        env:"CACHE_ENABLED"        env-default:"true"`
	DSN           string        `yaml:"dsn"            env:"CACHE_DSN"`
	TTL           time.Duration `yaml:"ttl"            env:"CACHE_TTL"            env-default:"30s"`
	PurgeInterval time.Duration `yaml:"purge_interval" env:"CACHE_PURGE_INTERVAL" env-default:"10m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// TracingConfig enables OTLP export when Endpoint is set.
type TracingConfig struct {
	Endpoint    string `yaml:"endpoint"     env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"libranexus-availability"`
	Insecure    bool   `yaml:"insecure"     env:"OTEL_EXPORTER_OTLP_INSECURE" env-default:"true"`
}

// DisplayConfig holds presentation ordering settings.
type DisplayConfig struct {
	// LaterLibrariesRaw lists libraries shown after all others, as
	// "Library=bucket" pairs separated by commas.
	LaterLibrariesRaw string `yaml:"later_libraries" env:"DISPLAY_LATER_LIBRARIES" env-default:"Ivy Stacks=ivy,Blandy Experimental Farm=remote,Mountain Lake=remote"`

	// LaterLibraries is parsed from LaterLibrariesRaw during validation.
	LaterLibraries map[string]string `yaml:"-" env:"-"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
