package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the file and fills defaults", func(t *testing.T) {
		// Given: a config that only sets a few fields
		path := writeConfig(t, `
log-level: debug
socket-port: "5000"
session-store: redis
redis:
  host: cache
`)

		// When: it is loaded
		conf, err := Load(path)

		// Then: the rest comes from the defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "json", conf.LogFormat)
		assert.Equal(t, "5000", conf.SocketPort)
		assert.Equal(t, "http://localhost:3000", conf.AllowedOrigin)
		assert.Equal(t, []string{"GET", "POST"}, conf.AllowedMethods)
		assert.Equal(t, SessionStoreRedis, conf.SessionStore)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 256, conf.WebSocket.SendBuffer)
		assert.Equal(t, int64(4096), conf.WebSocket.MaxMessageSize)
	})

	t.Run("Falls back to the environment without a file", func(t *testing.T) {
		t.Setenv("SOCKET_PORT", "4100")
		t.Setenv("ALLOWED_ORIGIN", "https://play.example")

		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.NoError(t, err)
		assert.Equal(t, "4100", conf.SocketPort)
		assert.Equal(t, "https://play.example", conf.AllowedOrigin)
		assert.Equal(t, SessionStoreMemory, conf.SessionStore)
	})

	t.Run("Rejects an invalid file", func(t *testing.T) {
		path := writeConfig(t, `session-store: etcd`)

		_, err := Load(path)

		require.ErrorIs(t, err, ErrUnknownSessionStore)
	})

	t.Run("MustLoad panics on invalid config", func(t *testing.T) {
		path := writeConfig(t, `socket-port: "0"`)

		assert.Panics(t, func() { MustLoad(path) })
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			SocketPort:    "4000",
			AllowedOrigin: "*",
			SessionStore:  SessionStoreMemory,
			WebSocket:     WebSocket{SendBuffer: 1, MaxMessageSize: 1},
		}
	}

	require.NoError(t, valid().Validate())

	cases := map[string]struct {
		mutate   func(conf *Config)
		expected error
	}{
		"non numeric port":  {func(conf *Config) { conf.SocketPort = "http" }, ErrInvalidPort},
		"port out of range": {func(conf *Config) { conf.SocketPort = "70000" }, ErrInvalidPort},
		"no origin":         {func(conf *Config) { conf.AllowedOrigin = "" }, ErrNoAllowedOrigin},
		"unknown store":     {func(conf *Config) { conf.SessionStore = "disk" }, ErrUnknownSessionStore},
		"zero send buffer":  {func(conf *Config) { conf.WebSocket.SendBuffer = 0 }, ErrInvalidWebSocket},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			conf := valid()
			tc.mutate(conf)

			assert.ErrorIs(t, conf.Validate(), tc.expected)
		})
	}
}
