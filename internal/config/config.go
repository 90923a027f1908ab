package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage driver değerleri
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config ortam yapılandırmalarını tutar
type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	StorageDriver  string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPass         string
	DBName         string
	DBSSLMode      string
	DBMaxOpenConns int

	TxTimeout      time.Duration
	AutoMigrate    bool
	MigrationsPath string

	CORSOrigins    []string
	RateLimitRPM   int
	MaxUploadBytes int64
}

// yardımcı fonksiyon: ortam değişkeni yoksa default değeri döner
func getEnv(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s sayı olmalı: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%s true/false olmalı: %w", key, err)
	}
	return b, nil
}

// LoadConfig tüm yapılandırmayı yükler ve doğrular
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", DriverPostgres)),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "guild"),
		DBPass:         getEnv("DB_PASS", "password"),
		DBName:         getEnv("DB_NAME", "guilddb"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
	}

	var err error
	if cfg.DBMaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}

	timeoutSeconds, err := getEnvInt("TX_TIMEOUT_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	if timeoutSeconds <= 0 {
		return nil, fmt.Errorf("TX_TIMEOUT_SECONDS pozitif olmalı: %d", timeoutSeconds)
	}
	cfg.TxTimeout = time.Duration(timeoutSeconds) * time.Second

	if cfg.AutoMigrate, err = getEnvBool("AUTO_MIGRATE", false); err != nil {
		return nil, err
	}

	if cfg.RateLimitRPM, err = getEnvInt("RATE_LIMIT_RPM", 300); err != nil {
		return nil, err
	}

	uploadMB, err := getEnvInt("MAX_UPLOAD_MB", 10)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(uploadMB) << 20

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	switch cfg.StorageDriver {
	case DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("bilinmeyen STORAGE_DRIVER: %q (postgres|memory)", cfg.StorageDriver)
	}

	return cfg, nil
}

// IsDevelopment development ortamında mı
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// GetDSN veritabanı bağlantı URL'sini döner
func (c *Config) GetDSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return dsn.String()
}
