package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/tmsim/internal/compiler"
	"github.com/aretw0/tmsim/internal/logging"
	"github.com/aretw0/tmsim/internal/runtime"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "tmsim.yaml"

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config holds the runtime settings of the CLI and the servers.
type Config struct {
	AcceptToken   string `mapstructure:"accept_token" yaml:"accept_token"`
	RejectToken   string `mapstructure:"reject_token" yaml:"reject_token"`
	Blank         string `mapstructure:"blank" yaml:"blank"`
	EmptySentinel string `mapstructure:"empty_sentinel" yaml:"empty_sentinel"`
	MaxSteps      int    `mapstructure:"max_steps" yaml:"max_steps"`
	Workers       int    `mapstructure:"workers" yaml:"workers"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
	LogFile       string `mapstructure:"log_file" yaml:"log_file"`

	Store StoreConfig `mapstructure:"store" yaml:"store"`
	HTTP  HTTPConfig  `mapstructure:"http" yaml:"http"`
}

// StoreConfig selects and configures the report store.
type StoreConfig struct {
	Driver   string        `mapstructure:"driver" yaml:"driver"`
	Path     string        `mapstructure:"path" yaml:"path"`
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	DSN      string        `mapstructure:"dsn" yaml:"dsn"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// HTTPConfig configures `tmsim serve`.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AcceptToken:   domain.DefaultTokens.Accept,
		RejectToken:   domain.DefaultTokens.Reject,
		Blank:         domain.DefaultBlank,
		EmptySentinel: compiler.DefaultEmptySentinel,
		MaxSteps:      runtime.DefaultMaxSteps,
		Workers:       1,
		LogLevel:      "info",
		Store: StoreConfig{
			Driver: DriverFile,
			Path:   ".tmsim/reports",
			Addr:   "localhost:6379",
		},
		HTTP: HTTPConfig{Addr: ":8080"},
	}
}

// envKeys maps environment variables onto configuration keys.
var envKeys = map[string][]string{
	"TMSIM_ACCEPT_TOKEN":   {"accept_token"},
	"TMSIM_REJECT_TOKEN":   {"reject_token"},
	"TMSIM_BLANK":          {"blank"},
	"TMSIM_EMPTY_SENTINEL": {"empty_sentinel"},
	"TMSIM_MAX_STEPS":      {"max_steps"},
	"TMSIM_WORKERS":        {"workers"},
	"TMSIM_LOG_LEVEL":      {"log_level"},
	"TMSIM_LOG_FILE":       {"log_file"},
	"TMSIM_STORE_DRIVER":   {"store", "driver"},
	"TMSIM_STORE_PATH":     {"store", "path"},
	"TMSIM_STORE_ADDR":     {"store", "addr"},
	"TMSIM_STORE_PASSWORD": {"store", "password"},
	"TMSIM_STORE_DB":       {"store", "db"},
	"TMSIM_STORE_DSN":      {"store", "dsn"},
	"TMSIM_STORE_TTL":      {"store", "ttl"},
	"TMSIM_HTTP_ADDR":      {"http", "addr"},
}

// Load reads the YAML file at path, overlays TMSIM_* environment variables
// and validates the result. A missing file yields the defaults unless
// explicit is set, in which case it is an error.
func Load(path string, explicit bool) (*Config, error) {
	raw := map[string]any{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	for env, key := range envKeys {
		if v, ok := os.LookupEnv(env); ok {
			set(raw, key, v)
		}
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func set(raw map[string]any, key []string, v string) {
	if len(key) == 1 {
		raw[key[0]] = v
		return
	}
	sub, ok := raw[key[0]].(map[string]any)
	if !ok {
		sub = map[string]any{}
		raw[key[0]] = sub
	}
	set(sub, key[1:], v)
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	var errs []error
	token := func(name, v string) {
		if v == "" || strings.ContainsAny(v, " \t\r\n") {
			errs = append(errs, fmt.Errorf("%s must be a single non-empty word", name))
		}
	}
	token("accept_token", c.AcceptToken)
	token("reject_token", c.RejectToken)
	token("blank", c.Blank)
	token("empty_sentinel", c.EmptySentinel)

	if c.AcceptToken == c.RejectToken {
		errs = append(errs, errors.New("accept_token and reject_token must differ"))
	}
	if c.MaxSteps < 0 {
		errs = append(errs, errors.New("max_steps must not be negative"))
	}
	if c.Workers <= 0 {
		errs = append(errs, errors.New("workers must be positive"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverRedis:
	case DriverPostgres:
		if c.Store.DSN == "" {
			errs = append(errs, errors.New("store.dsn is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}

	return errors.Join(errs...)
}

// Tokens returns the verdict words.
func (c *Config) Tokens() domain.Tokens {
	return domain.Tokens{Accept: c.AcceptToken, Reject: c.RejectToken}
}
