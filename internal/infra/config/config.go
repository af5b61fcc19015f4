package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment names accepted by backend.env.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Session store drivers.
const (
	DriverMemory = "memory"
	DriverBadger = "badger"
	DriverValkey = "valkey"
)

const defaultConfigPath = "configs/config.yaml"

// maxConsultAttempts allows a single retry of a consult call.
const maxConsultAttempts = 2

// Config aggregates runtime configuration used across the gateway.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Backend BackendConfig `yaml:"backend"`
	Consult ConsultConfig `yaml:"consult"`
	Session SessionConfig `yaml:"session"`
	UI      UIConfig      `yaml:"ui"`
}

// HTTPConfig controls the local gateway listener.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// BackendConfig describes the remote REST backend.
type BackendConfig struct {
	BaseURL       string        `yaml:"baseUrl"`
	Env           string        `yaml:"env"`
	Timeout       time.Duration `yaml:"timeout"`
	LoginRoute    string        `yaml:"loginRoute"`
	RedirectDelay time.Duration `yaml:"redirectDelay"`
}

// Development reports whether the HTTP downgrade retry is allowed.
func (b BackendConfig) Development() bool {
	return b.Env == EnvDevelopment
}

// ConsultConfig bounds the AI consult retry.
type ConsultConfig struct {
	MaxAttempts int           `yaml:"maxAttempts"`
	Backoff     time.Duration `yaml:"backoff"`
}

// SessionConfig selects where the token and profile live.
type SessionConfig struct {
	Driver     string `yaml:"driver"`
	Path       string `yaml:"path"`
	ValkeyAddr string `yaml:"valkeyAddr"`
	Prefix     string `yaml:"prefix"`
	Secret     string `yaml:"secret"`
}

// UIConfig sizes the UI event feed.
type UIConfig struct {
	FeedCapacity int `yaml:"feedCapacity"`
}

// Load resolves configuration from defaults, the YAML file, a .env file and
// the process environment, in that order.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	// .env is optional and never overrides variables already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("PAIRHEALTH_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("PAIRHEALTH_ENV"); v != "" {
		cfg.Backend.Env = strings.ToLower(v)
	}
	if v := os.Getenv("PAIRHEALTH_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Backend.Timeout = parsed
		}
	}
	if v := os.Getenv("CONSULT_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Consult.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("CONSULT_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Consult.Backoff = parsed
		}
	}
	if v := os.Getenv("SESSION_DRIVER"); v != "" {
		cfg.Session.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("SESSION_PATH"); v != "" {
		cfg.Session.Path = v
	}
	if v := os.Getenv("SESSION_VALKEY_ADDR"); v != "" {
		cfg.Session.ValkeyAddr = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      "127.0.0.1:8790",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 45 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL:       "https://sanchuang1.tcim.me",
			Env:           EnvProduction,
			Timeout:       30 * time.Second,
			LoginRoute:    "/pages/login/index",
			RedirectDelay: 1500 * time.Millisecond,
		},
		Consult: ConsultConfig{
			MaxAttempts: 2,
			Backoff:     600 * time.Millisecond,
		},
		Session: SessionConfig{
			Driver: DriverBadger,
			Path:   filepath.Join(xdg.DataHome, "pairhealth", "session"),
			Prefix: "pairhealth:session",
		},
		UI: UIConfig{
			FeedCapacity: 256,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	parsed, err := url.Parse(c.Backend.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return errors.New("backend.baseUrl must be an absolute http(s) URL")
	}
	if c.Backend.Env != EnvDevelopment && c.Backend.Env != EnvProduction {
		return fmt.Errorf("backend.env must be %q or %q", EnvDevelopment, EnvProduction)
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("backend.timeout must be positive")
	}
	if c.Backend.RedirectDelay < 0 {
		return errors.New("backend.redirectDelay cannot be negative")
	}
	if !strings.HasPrefix(c.Backend.LoginRoute, "/") {
		return errors.New("backend.loginRoute must start with /")
	}
	if c.Consult.MaxAttempts <= 0 || c.Consult.MaxAttempts > maxConsultAttempts {
		return fmt.Errorf("consult.maxAttempts must be between 1 and %d", maxConsultAttempts)
	}
	if c.Consult.Backoff < 0 {
		return errors.New("consult.backoff cannot be negative")
	}
	switch c.Session.Driver {
	case DriverMemory:
	case DriverBadger:
		if strings.TrimSpace(c.Session.Path) == "" {
			return errors.New("session.path cannot be empty for the badger driver")
		}
	case DriverValkey:
		if strings.TrimSpace(c.Session.ValkeyAddr) == "" {
			return errors.New("session.valkeyAddr cannot be empty for the valkey driver")
		}
	default:
		return fmt.Errorf("session.driver %q is not supported", c.Session.Driver)
	}
	if c.UI.FeedCapacity <= 0 {
		return errors.New("ui.feedCapacity must be positive")
	}
	return nil
}
