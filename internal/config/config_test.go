package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

ils:
  base_url: "https://ils.example.edu/ws"
  timeout: "3s"
  rate_limit: 5
  burst: 2

cache:
  enabled: true
  dsn: "postgres://u:p@localhost:5432/ilscache?sslmode=disable"
  ttl: "90s"

log:
  level: "debug"
  format: "text"

tracing:
  endpoint: "localhost:4318"

display:
  later_libraries: "Ivy Stacks=ivy, Blandy=remote"
`

func TestLoad_ValidYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, validYAML))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)

	assert.Equal(t, "https://ils.example.edu/ws", cfg.ILS.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.ILS.Timeout)
	assert.Equal(t, 5.0, cfg.ILS.RateLimit)
	assert.Equal(t, 2, cfg.ILS.Burst)

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.PurgeInterval)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "localhost:4318", cfg.Tracing.Endpoint)
	assert.Equal(t, "libranexus-availability", cfg.Tracing.ServiceName)

	assert.Equal(t, map[string]string{"Ivy Stacks": "ivy", "Blandy": "remote"}, cfg.Display.LaterLibraries)
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, validYAML))
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("ILS_TIMEOUT", "1s")
	t.Setenv("DISPLAY_LATER_LIBRARIES", "Annex=annex")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, time.Second, cfg.ILS.Timeout)
	assert.Equal(t, map[string]string{"Annex": "annex"}, cfg.Display.LaterLibraries)
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ILS_BASE_URL", "http://localhost:9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8084, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.ILS.Timeout)
	assert.Empty(t, cfg.Cache.DSN)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "ivy", cfg.Display.LaterLibraries["Ivy Stacks"])
	assert.Equal(t, "remote", cfg.Display.LaterLibraries["Mountain Lake"])
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.ErrorContains(t, err, "absent.yaml")
}

func TestLoad_MissingILS(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ILS_BASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: 8084},
			ILS:    ILSConfig{BaseURL: "https://ils.example.edu", Timeout: time.Second},
			Cache:  CacheConfig{Enabled: true, TTL: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad scheme", mutate: func(c *Config) { c.ILS.BaseURL = "ftp://ils" }, wantErr: "http or https"},
		{name: "zero timeout", mutate: func(c *Config) { c.ILS.Timeout = 0 }, wantErr: "timeout"},
		{name: "negative rate", mutate: func(c *Config) { c.ILS.RateLimit = -1 }, wantErr: "rate_limit"},
		{name: "zero ttl", mutate: func(c *Config) { c.Cache.TTL = 0 }, wantErr: "ttl"},
		{name: "cache disabled ignores ttl", mutate: func(c *Config) { c.Cache = CacheConfig{} }},
		{name: "port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "port"},
		{name: "later libraries", mutate: func(c *Config) { c.Display.LaterLibrariesRaw = "=ivy" }, wantErr: "later_libraries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseLaterLibraries(t *testing.T) {
	tests := []struct {
		raw  string
		want map[string]string
	}{
		{raw: "", want: nil},
		{raw: "  ", want: nil},
		{raw: "Ivy Stacks=ivy", want: map[string]string{"Ivy Stacks": "ivy"}},
		{raw: "Blandy = remote ,, Mountain Lake=remote", want: map[string]string{"Blandy": "remote", "Mountain Lake": "remote"}},
		{raw: "Annex", want: map[string]string{"Annex": "annex"}},
		{raw: "Annex=", want: map[string]string{"Annex": "annex"}},
	}

	for _, tt := range tests {
		got, err := ParseLaterLibraries(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}
