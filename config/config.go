// Package config loads the fintrack configuration: a YAML file, overridden by
// environment variables, completed by defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration file. They are also
// passed to extension commands.
const (
	EnvConfig       = "FT_CONFIG"
	EnvUser         = "FT_USER"
	EnvRemoteStore  = "FT_REMOTE_STORE"
	EnvLocalStore   = "FT_LOCAL_STORE"
	EnvLogLevel     = "FT_LOG_LEVEL"
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
)

// DefaultModel is the text generation model used by the advisor.
const DefaultModel = "gemini-2.5-flash"

// Config is the whole application configuration.
type Config struct {
	// User is the default username for login.
	User    string  `yaml:"user"`
	Store   Store   `yaml:"store"`
	Advisor Advisor `yaml:"advisor"`
	Server  Server  `yaml:"server"`
	Log     Log     `yaml:"log"`
}

// Store configures persistence.
type Store struct {
	// Remote is the URL of the remote document store: redis://, rediss:// or
	// postgres://. When empty the local store is used.
	Remote string `yaml:"remote"`
	// Local is the path of the local sqlite file. It also keeps the session.
	Local string `yaml:"local"`
	// Debounce is the quiet period before changes are written.
	Debounce time.Duration `yaml:"debounce"`
}

// Advisor configures the text generation service.
type Advisor struct {
	// APIKey enables the service. Without it the advisor is offline.
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
	// MinInterval is the minimum delay between two requests.
	MinInterval time.Duration `yaml:"min_interval"`
	// FailureThreshold is the number of consecutive failures that suspends
	// requests for OpenTimeout.
	FailureThreshold uint32        `yaml:"failure_threshold"`
	OpenTimeout      time.Duration `yaml:"open_timeout"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `yaml:"addr"`
}

// Log configures logging.
type Log struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		Store: Store{
			Local:    ".fintrack.db",
			Debounce: time.Second,
		},
		Advisor: Advisor{
			Model:            DefaultModel,
			MinInterval:      10 * time.Second,
			FailureThreshold: 3,
			OpenTimeout:      time.Minute,
		},
		Server: Server{Addr: "localhost:8080"},
		Log:    Log{Level: "info"},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies the
// environment. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %q: %w", path, err)
			}
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides the configuration with the environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v, ok := lookup(key); ok && v != "" {
				*dst = v
				return
			}
		}
	}
	set(&c.User, EnvUser)
	set(&c.Store.Remote, EnvRemoteStore)
	set(&c.Store.Local, EnvLocalStore)
	set(&c.Log.Level, EnvLogLevel)
	set(&c.Advisor.APIKey, EnvAPIKey, EnvGoogleAPIKey)
}

// Environ returns the environment variables that reproduce this
// configuration, API key excluded.
func (c Config) Environ() []string {
	return []string{
		EnvUser + "=" + c.User,
		EnvRemoteStore + "=" + c.Store.Remote,
		EnvLocalStore + "=" + c.Store.Local,
		EnvLogLevel + "=" + c.Log.Level,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	var errs error
	if c.Store.Remote != "" {
		u, err := url.Parse(c.Store.Remote)
		switch {
		case err != nil:
			errs = errors.Join(errs, fmt.Errorf("store remote: %w", err))
		case u.Scheme != "redis" && u.Scheme != "rediss" && u.Scheme != "postgres" && u.Scheme != "postgresql":
			errs = errors.Join(errs, fmt.Errorf("store remote: unsupported scheme %q, want redis, rediss or postgres", u.Scheme))
		}
	}
	if c.Store.Local == "" {
		errs = errors.Join(errs, errors.New("store local: path is required"))
	}
	if c.Store.Debounce < 0 {
		errs = errors.Join(errs, fmt.Errorf("store debounce must not be negative, got %v", c.Store.Debounce))
	}
	if c.Advisor.MinInterval < 0 {
		errs = errors.Join(errs, fmt.Errorf("advisor min_interval must not be negative, got %v", c.Advisor.MinInterval))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = errors.Join(errs, fmt.Errorf("log level: %w", err))
	}
	return errs
}

// LogLevel returns the configured zerolog level, info if invalid.
func (c Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
