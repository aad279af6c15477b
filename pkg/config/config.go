package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Bind string
	Port int

	Store  StoreConfig
	Auth   AuthConfig
	Admin  AdminConfig
	Log    LogConfig
	Export ExportConfig
}

// StoreConfig describes the embedded SQLite store.
type StoreConfig struct {
	Path        string
	BusyTimeout time.Duration
}

// AuthConfig carries session token settings.
type AuthConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
}

// AdminConfig holds the seed administrator credentials.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportConfig tunes attendance sheet exports.
type ExportConfig struct {
	MaxRows int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Bind = v.GetString("BIND_ADDR")
	cfg.Port = v.GetInt("PORT")

	cfg.Store = StoreConfig{
		Path:        v.GetString("STORE_PATH"),
		BusyTimeout: parseDuration(v.GetString("STORE_BUSY_TIMEOUT"), 5*time.Second),
	}

	cfg.Auth = AuthConfig{
		TokenSecret: v.GetString("AUTH_TOKEN_SECRET"),
		TokenExpiry: parseDuration(v.GetString("AUTH_TOKEN_EXPIRY"), 12*time.Hour),
	}

	cfg.Admin = AdminConfig{
		Username: v.GetString("ADMIN_USERNAME"),
		Email:    v.GetString("ADMIN_EMAIL"),
		Password: v.GetString("ADMIN_PASSWORD"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Export = ExportConfig{
		MaxRows: v.GetInt("EXPORT_MAX_ROWS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("BIND_ADDR", "127.0.0.1")
	v.SetDefault("PORT", 43110)

	v.SetDefault("STORE_PATH", "./data/attendance.sqlite")
	v.SetDefault("STORE_BUSY_TIMEOUT", "5s")

	v.SetDefault("AUTH_TOKEN_SECRET", "dev_secret")
	v.SetDefault("AUTH_TOKEN_EXPIRY", "12h")

	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_EMAIL", "admin@school.local")
	v.SetDefault("ADMIN_PASSWORD", "admin123")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("EXPORT_MAX_ROWS", 5000)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
