package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL = "http://localhost:8088/api"
	DefaultPort    = 8088
	dirName        = ".coachlix"
	fileName       = "config.yaml"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type SessionConfig struct {
	PlanID       string `yaml:"plan_id"`
	SoundEnabled bool   `yaml:"sound_enabled"`
	Compact      bool   `yaml:"compact"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	JSON  bool   `yaml:"json"`
}

type ServerConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	DBPath string `yaml:"db_path"`
	Token  string `yaml:"token"`
}

// Addr is the listen address of the plan server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Dir is the per-user data directory, ~/.coachlix.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath is ~/.coachlix/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	dir, err := Dir()
	if err != nil {
		dir = "."
	}
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: 30,
		},
		Session: SessionConfig{
			SoundEnabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(dir, "coachlix.log"),
		},
		Server: ServerConfig{
			Host:   "127.0.0.1",
			Port:   DefaultPort,
			DBPath: filepath.Join(dir, "plans.db"),
		},
	}
}

// Load reads config from a YAML file on top of the defaults, then applies
// environment variable overrides. A missing file is not an error.
//
//	COACHLIX_API_BASE_URL, COACHLIX_API_TOKEN, COACHLIX_PLAN_ID,
//	COACHLIX_SOUND, COACHLIX_LOG_LEVEL,
//	COACHLIX_SERVER_HOST, COACHLIX_SERVER_PORT,
//	COACHLIX_SERVER_DB, COACHLIX_SERVER_TOKEN
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Save writes cfg to path, creating the directory when needed.
func Save(path string, cfg *Config) error {
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COACHLIX_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("COACHLIX_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("COACHLIX_PLAN_ID"); v != "" {
		cfg.Session.PlanID = v
	}
	if v := os.Getenv("COACHLIX_SOUND"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.Session.SoundEnabled = on
		}
	}
	if v := os.Getenv("COACHLIX_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("COACHLIX_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("COACHLIX_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("COACHLIX_SERVER_DB"); v != "" {
		cfg.Server.DBPath = v
	}
	if v := os.Getenv("COACHLIX_SERVER_TOKEN"); v != "" {
		cfg.Server.Token = v
	}
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must not be negative")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	return nil
}
