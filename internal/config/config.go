package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type API struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

type Config struct {
	Env             string        `yaml:"env"`
	HTTPAddr        string        `yaml:"http_addr"`
	Storage         string        `yaml:"storage"`
	DBDriver        string        `yaml:"db_driver"`
	DBDSN           string        `yaml:"db_dsn"`
	LogLevel        string        `yaml:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	API             API           `yaml:"api"`
}

func Default() Config {
	return Config{
		Env:             "dev",
		HTTPAddr:        ":8080",
		Storage:         "memory",
		DBDriver:        "sqlite",
		LogLevel:        "info",
		ShutdownTimeout: 5 * time.Second,
		CORSOrigins:     []string{"http://localhost:3000"},
		API: API{
			Name:        "Task Monitoring API",
			Version:     "1.1.0",
			Description: "Backend API sederhana untuk belajar Django REST Framework dengan User Management",
		},
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getdur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getlist(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Load layers defaults, the optional YAML file at path, then environment
// variables. Command-line flags are applied on top by the caller.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.Env = getenv("APP_ENV", cfg.Env)
	cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.Storage = getenv("STORAGE", cfg.Storage)
	cfg.DBDriver = getenv("DB_DRIVER", cfg.DBDriver)
	cfg.DBDSN = getenv("DB_DSN", cfg.DBDSN)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.ShutdownTimeout = getdur("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.CORSOrigins = getlist("CORS_ORIGINS", cfg.CORSOrigins)
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Storage {
	case "memory", "sql":
	default:
		return fmt.Errorf("unknown storage %q (want memory or sql)", c.Storage)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
