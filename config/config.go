// Package config loads treeguess settings from a YAML file and TREEGUESS_*
// environment variables, and hot-reloads the log level when the file changes.
package config

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/treeguess/pkg/errors"
	"github.com/YuminosukeSato/treeguess/pkg/log"
)

// EnvPrefix prefixes environment overrides: TREEGUESS_SERVER_ADDR sets server.addr.
const EnvPrefix = "TREEGUESS"

// Config is the full treeguess configuration.
type Config struct {
	Model   ModelConfig   `mapstructure:"model"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ModelConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"             validate:"required"`
	StaticDir       string        `mapstructure:"static_dir"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"min=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"min=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"       validate:"oneof=debug info warn warning error"`
	Format     string `mapstructure:"format"      validate:"oneof=json console"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"    validate:"min=0"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAge     int    `mapstructure:"max_age"     validate:"min=0"` // days
	Compress   bool   `mapstructure:"compress"`
}

// Logger converts the section into pkg/log settings.
func (c LogConfig) Logger() log.Config {
	return log.Config{
		Level:      c.Level,
		Format:     c.Format,
		File:       c.File,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   c.Compress,
	}
}

type CacheConfig struct {
	// Size is the number of resolved nodes kept in memory; 0 disables the cache.
	Size int `mapstructure:"size" validate:"min=0"`
	// Warm resolves nodes into the cache before the server starts listening.
	Warm bool `mapstructure:"warm"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"startswith=/"`
}

var defaults = map[string]any{
	"model.path":              "",
	"server.addr":             ":8000",
	"server.static_dir":       "",
	"server.cors_origins":     []string{"*"},
	"server.read_timeout":     10 * time.Second,
	"server.write_timeout":    10 * time.Second,
	"server.shutdown_timeout": 5 * time.Second,
	"log.level":               "info",
	"log.format":              "json",
	"log.file":                "",
	"log.max_size":            100,
	"log.max_backups":         3,
	"log.max_age":             28,
	"log.compress":            false,
	"cache.size":              1024,
	"cache.warm":              true,
	"metrics.enabled":         true,
	"metrics.path":            "/metrics",
}

// Option adjusts the loader before the configuration is decoded.
type Option func(*viper.Viper)

// WithOverride sets key with the highest precedence, above the file and the
// environment. The CLI uses it for flags.
func WithOverride(key string, value any) Option {
	return func(v *viper.Viper) {
		v.Set(key, value)
	}
}

// Manager owns the current configuration and reloads it when the file changes.
type Manager struct {
	v        *viper.Viper
	validate *validator.Validate
	logger   log.Logger

	mu      sync.RWMutex
	current *Config
}

// Load reads path (optional; an empty path uses defaults and the environment
// only), applies opts and validates the result.
func Load(path string, opts ...Option) (*Manager, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	for _, opt := range opts {
		opt(v)
	}

	m := &Manager{
		v:        v,
		validate: newValidator(),
		logger:   log.GetLogger().With(log.ComponentKey, "config"),
	}
	cfg, err := m.decode()
	if err != nil {
		return nil, err
	}
	m.current = cfg
	return m, nil
}

// Config returns a copy of the current configuration.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg := *m.current
	cfg.Server.CORSOrigins = append([]string(nil), m.current.Server.CORSOrigins...)
	return cfg
}

// File is the configuration file in use, or "" when none was given.
func (m *Manager) File() string {
	return m.v.ConfigFileUsed()
}

// Watch reloads the file whenever it changes. A valid new configuration
// replaces the current one, updates the global log level and is passed to
// onChange; an invalid one is logged and ignored. Watch is a no-op without a file.
func (m *Manager) Watch(onChange func(Config)) {
	if m.File() == "" {
		return
	}
	m.v.OnConfigChange(func(event fsnotify.Event) {
		m.logger.Info("config change detected", "file", event.Name, "op", event.Op.String())

		cfg, err := m.decode()
		if err != nil {
			m.logger.Error("config reload rejected", err)
			return
		}
		if err := log.SetLevel(cfg.Log.Level); err != nil {
			m.logger.Warn("log level not applied", err)
		}

		m.mu.Lock()
		m.current = cfg
		m.mu.Unlock()

		m.logger.Info("config reloaded", "log.level", cfg.Log.Level)
		if onChange != nil {
			onChange(m.Config())
		}
	})
	m.v.WatchConfig()
}

func (m *Manager) decode() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := m.validate.Struct(&cfg); err != nil {
		return nil, validationError(err)
	}
	return &cfg, nil
}

// newValidator reports fields by their configuration keys instead of Go names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validationError turns the first validator failure into a ValidationError
// named by its dotted key, e.g. "log.level".
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(err, "validate config")
	}
	fe := fieldErrs[0]
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	reason := "failed '" + fe.Tag() + "'"
	if fe.Param() != "" {
		reason += " (" + fe.Param() + ")"
	}
	return errors.NewValidationError(key, reason, fe.Value())
}
