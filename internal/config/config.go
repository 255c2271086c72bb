package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// GarminPlaceholderClientID is the value shipped in sample configs. A client
// id equal to it, or empty, switches Garmin login to mock mode.
const GarminPlaceholderClientID = "YOUR_GARMIN_CLIENT_ID"

type Config struct {
	Server ServerConfig `toml:"server"`
	Redis  RedisConfig  `toml:"redis"`
	Auth   AuthConfig   `toml:"auth"`
	Garmin GarminConfig `toml:"garmin"`
	Log    LogConfig    `toml:"log"`
}

type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	Secure         bool     `toml:"secure"` // Use HTTPS-only cookies
	Environment    string   `toml:"environment"`
	AllowedOrigins []string `toml:"allowed_origins"`
	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP.
	TrustProxy bool `toml:"trust_proxy"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type AuthConfig struct {
	Secret         string `toml:"secret"`
	LoginRateLimit int    `toml:"login_rate_limit"`
}

type GarminConfig struct {
	ClientID              string `toml:"client_id"`
	ClientSecret          string `toml:"client_secret"`
	AuthorizationEndpoint string `toml:"authorization_endpoint"`
	TokenEndpoint         string `toml:"token_endpoint"`
	RedirectURI           string `toml:"redirect_uri"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Mock reports whether Garmin credentials are missing.
func (g GarminConfig) Mock() bool {
	return g.ClientID == "" || g.ClientID == GarminPlaceholderClientID
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			Environment:    "development",
			AllowedOrigins: []string{"*"},
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		Auth: AuthConfig{
			Secret:         "dev-secret-change-me",
			LoginRateLimit: 10,
		},
		Garmin: GarminConfig{
			ClientID:              GarminPlaceholderClientID,
			AuthorizationEndpoint: "https://connect.garmin.com/oauthConfirm",
			TokenEndpoint:         "https://connectapi.garmin.com/oauth-service/oauth/access_token",
			RedirectURI:           "dailycheck://auth",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load builds the config from defaults, then the TOML file named by
// CONFIG_FILE if set, then environment variables.
func Load() (*Config, error) {
	return LoadFile(getEnv("CONFIG_FILE", ""))
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decoding config file %s: %w", path, err)
		}
	}

	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvInt("SERVER_PORT", cfg.Server.Port)
	cfg.Server.Secure = getEnvBool("SERVER_SECURE", cfg.Server.Secure)
	cfg.Server.Environment = getEnv("APP_ENV", cfg.Server.Environment)
	cfg.Server.TrustProxy = getEnvBool("TRUST_PROXY", cfg.Server.TrustProxy)

	cfg.Redis.Enabled = getEnvBool("REDIS_ENABLED", cfg.Redis.Enabled)
	cfg.Redis.Host = getEnv("REDIS_HOST", cfg.Redis.Host)
	cfg.Redis.Port = getEnvInt("REDIS_PORT", cfg.Redis.Port)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)

	cfg.Auth.Secret = getEnv("APP_SECRET", cfg.Auth.Secret)
	cfg.Auth.LoginRateLimit = getEnvInt("LOGIN_RATE_LIMIT", cfg.Auth.LoginRateLimit)

	cfg.Garmin.ClientID = getEnv("GARMIN_CLIENT_ID", cfg.Garmin.ClientID)
	cfg.Garmin.ClientSecret = getEnv("GARMIN_CLIENT_SECRET", cfg.Garmin.ClientSecret)
	cfg.Garmin.RedirectURI = getEnv("GARMIN_REDIRECT_URI", cfg.Garmin.RedirectURI)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)

	if cfg.Server.Environment == "production" && cfg.Auth.Secret == defaults().Auth.Secret {
		return nil, fmt.Errorf("APP_SECRET must be set in production")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
