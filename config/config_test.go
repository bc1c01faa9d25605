package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/treeguess/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "treeguess.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const sample = `
model:
  path: models/naruto.json
server:
  addr: 127.0.0.1:9000
  static_dir: frontend/build
  cors_origins: [http://localhost:3000]
  read_timeout: 3s
log:
  level: debug
  format: console
cache:
  size: 64
`

func TestLoad_File(t *testing.T) {
	m, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	cfg := m.Config()

	assert.Equal(t, "models/naruto.json", cfg.Model.Path)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "frontend/build", cfg.Server.StaticDir)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 64, cfg.Cache.Size)

	// Unset keys keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 100, cfg.Log.MaxSize)
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("TREEGUESS_SERVER_ADDR", ":7000")
	t.Setenv("TREEGUESS_CACHE_SIZE", "8")
	t.Setenv("TREEGUESS_MODEL_PATH", "from-env.json")

	m, err := Load(writeConfig(t, sample), WithOverride("model.path", "from-flag.json"))
	require.NoError(t, err)
	cfg := m.Config()

	assert.Equal(t, ":7000", cfg.Server.Addr, "env beats file")
	assert.Equal(t, 8, cfg.Cache.Size, "env beats file")
	assert.Equal(t, "from-flag.json", cfg.Model.Path, "override beats env")
}

func TestLoad_WithoutFile(t *testing.T) {
	t.Setenv("TREEGUESS_MODEL_PATH", "model.json")

	m, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, m.File())

	cfg := m.Config()
	assert.Equal(t, "model.json", cfg.Model.Path)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 1024, cfg.Cache.Size)
	assert.True(t, cfg.Cache.Warm)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		param string
	}{
		{"missing model path", "server:\n  addr: :8000\n", "model.path"},
		{"bad log level", "model:\n  path: m.json\nlog:\n  level: loud\n", "log.level"},
		{"bad log format", "model:\n  path: m.json\nlog:\n  format: xml\n", "log.format"},
		{"negative cache", "model:\n  path: m.json\ncache:\n  size: -1\n", "cache.size"},
		{"relative metrics path", "model:\n  path: m.json\nmetrics:\n  path: metrics\n", "metrics.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)

			var ve *errors.ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.param, ve.ParamName)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfig_ReturnsCopy(t *testing.T) {
	m, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	cfg := m.Config()
	cfg.Server.CORSOrigins[0] = "mutated"
	cfg.Cache.Size = 0

	again := m.Config()
	assert.Equal(t, "http://localhost:3000", again.Server.CORSOrigins[0])
	assert.Equal(t, 64, again.Cache.Size)
}

func TestLogConfig_Logger(t *testing.T) {
	lc := LogConfig{Level: "warn", Format: "json", File: "x.log", MaxSize: 1, MaxBackups: 2, MaxAge: 3, Compress: true}
	got := lc.Logger()
	assert.Equal(t, "warn", got.Level)
	assert.Equal(t, "x.log", got.File)
	assert.Equal(t, 2, got.MaxBackups)
	assert.True(t, got.Compress)
}

func TestWatch_ReloadsLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	path := writeConfig(t, sample)
	m, err := Load(path)
	require.NoError(t, err)

	changed := make(chan Config, 4)
	m.Watch(func(cfg Config) {
		select {
		case changed <- cfg:
		default:
		}
	})

	updated := "model:\n  path: models/naruto.json\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	select {
	case cfg := <-changed:
		assert.Equal(t, "error", cfg.Log.Level)
		assert.Equal(t, "error", m.Config().Log.Level)
		assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not observed")
	}
}
