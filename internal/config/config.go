package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type SessionConfig struct {
	Backend    string `yaml:"backend"` // "memory" or "redis"
	DefaultTTL string `yaml:"default_ttl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type PathsConfig struct {
	Login           string            `yaml:"login"`
	RegisteredLogin string            `yaml:"registered_login"`
	AuthPrefix      string            `yaml:"auth_prefix"`
	Dashboards      map[string]string `yaml:"dashboards"`
}

type ConfigFile struct {
	App     AppConfig     `yaml:"app"`
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Redis   RedisConfig   `yaml:"redis"`
	Paths   PathsConfig   `yaml:"paths"`
}

type Config struct {
	AppName        string
	Environment    string
	APIBaseURL     string
	APITimeout     time.Duration
	SessionBackend string
	SessionTTL     time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	LoginPath           string
	RegisteredLoginPath string
	AuthPrefix          string
	Dashboards          map[domain.Role]string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		AppName:        "healthcare",
		Environment:    "development",
		APIBaseURL:     env("AUTH_API_URL", "http://localhost:8080"),
		APITimeout:     15 * time.Second,
		SessionBackend: env("SESSION_BACKEND", "memory"),
		SessionTTL:     15 * time.Minute,
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  env("REDIS_PASSWORD", ""),
		RedisDB:        0,

		LoginPath:           "/auth/login",
		RegisteredLoginPath: "/auth/login?registered=true",
		AuthPrefix:          "/auth",
		Dashboards:          DefaultDashboards(),
	}
}

// DefaultDashboards maps every role to its post-login landing page
func DefaultDashboards() map[domain.Role]string {
	return map[domain.Role]string{
		domain.RoleSuperAdmin:   "/dashboard/super-admin",
		domain.RoleClinicAdmin:  "/dashboard/clinic-admin",
		domain.RoleDoctor:       "/dashboard/doctor",
		domain.RoleReceptionist: "/dashboard/receptionist",
		domain.RolePatient:      "/dashboard/patient",
	}
}

// Load reads the yaml config at path and merges it over the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if configFile.App.Name != "" {
		cfg.AppName = configFile.App.Name
	}
	if configFile.App.Environment != "" {
		cfg.Environment = configFile.App.Environment
	}
	if configFile.API.BaseURL != "" {
		cfg.APIBaseURL = configFile.API.BaseURL
	}
	if configFile.API.Timeout != "" {
		timeout, err := time.ParseDuration(configFile.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid api timeout: %w", err)
		}
		cfg.APITimeout = timeout
	}
	if configFile.Session.Backend != "" {
		cfg.SessionBackend = configFile.Session.Backend
	}
	if configFile.Session.DefaultTTL != "" {
		ttl, err := time.ParseDuration(configFile.Session.DefaultTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid session TTL: %w", err)
		}
		cfg.SessionTTL = ttl
	}
	if configFile.Redis.Addr != "" {
		cfg.RedisAddr = configFile.Redis.Addr
	}
	if configFile.Redis.Password != "" {
		cfg.RedisPassword = configFile.Redis.Password
	}
	if configFile.Redis.DB != 0 {
		cfg.RedisDB = configFile.Redis.DB
	}
	if configFile.Paths.Login != "" {
		cfg.LoginPath = configFile.Paths.Login
	}
	if configFile.Paths.RegisteredLogin != "" {
		cfg.RegisteredLoginPath = configFile.Paths.RegisteredLogin
	}
	if configFile.Paths.AuthPrefix != "" {
		cfg.AuthPrefix = configFile.Paths.AuthPrefix
	}
	if len(configFile.Paths.Dashboards) > 0 {
		dashboards := make(map[domain.Role]string, len(configFile.Paths.Dashboards))
		for role, path := range configFile.Paths.Dashboards {
			r := domain.Role(role)
			if !r.Valid() {
				return nil, fmt.Errorf("unknown role %q in dashboards config", role)
			}
			dashboards[r] = path
		}
		cfg.Dashboards = dashboards
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
