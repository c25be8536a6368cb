package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

type Config struct {
	App         AppConfig
	DB          DBConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Admin       AdminConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Fingerprint FingerprintConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// AdminConfig holds the credentials reconciled into the admins table on startup.
type AdminConfig struct {
	Username string
	Password string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	LoginRPS   float64
	LoginBurst int
}

type FingerprintConfig struct {
	DeviceAPIKey string
	MaxWait      time.Duration
}

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// LoadConfig reads configFile when it exists and lets environment variables
// override every key.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			v.SetConfigFile(configFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil || accessExpiry <= 0 {
		accessExpiry = time.Hour
	}

	maxWait, err := time.ParseDuration(v.GetString("FINGERPRINT_MAX_WAIT"))
	if err != nil || maxWait <= 0 {
		maxWait = time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			TimeZone: v.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Admin: AdminConfig{
			Username: v.GetString("ADMIN_USERNAME"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			LoginRPS:   v.GetFloat64("LOGIN_RATE_LIMIT_RPS"),
			LoginBurst: v.GetInt("LOGIN_RATE_LIMIT_BURST"),
		},
		Fingerprint: FingerprintConfig{
			DeviceAPIKey: v.GetString("DEVICE_API_KEY"),
			MaxWait:      maxWait,
		},
	}

	if config.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ACCESS_EXPIRY", "1h")
	v.SetDefault("ADMIN_USERNAME", DefaultAdminUsername)
	v.SetDefault("ADMIN_PASSWORD", DefaultAdminPassword)
	v.SetDefault("LOGIN_RATE_LIMIT_RPS", 1.0)
	v.SetDefault("LOGIN_RATE_LIMIT_BURST", 5)
	v.SetDefault("FINGERPRINT_MAX_WAIT", "60s")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
