package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process configuration, loaded once at startup and
// passed to services at construction. Fields are never mutated afterwards.
type Config struct {
	Port         string
	AllowOrigins string

	// Bakong / KHQR
	BakongToken   string
	BakongAccount string
	BakongAPIURL  string
	MerchantName  string
	MerchantCity  string
	StoreLabel    string
	BillPrefix    string

	// Deeplink branding
	DeeplinkCallback string
	AppIconURL       string
	AppName          string

	DB    DBConfig
	Redis RedisConfig

	// Bot
	TelegramToken string
	GeminiAPIKey  string
	GeminiModel   string
}

// DBConfig holds database connection and pool settings.
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the full configuration from the environment.
func Load() Config {
	return Config{
		Port:         GetEnv("PORT", "5000"),
		AllowOrigins: GetEnv("ALLOW_ORIGINS", "http://127.0.0.1:5500,https://krouai.com"),

		BakongToken:   GetEnv("BAKONG_TOKEN", ""),
		BakongAccount: GetEnv("BAKONG_ACCOUNT", ""),
		BakongAPIURL:  GetEnv("BAKONG_API_URL", "https://api-bakong.nbc.gov.kh"),
		MerchantName:  GetEnv("MERCHANT_NAME", "KrouAI"),
		MerchantCity:  GetEnv("MERCHANT_CITY", "Phnom Penh"),
		StoreLabel:    GetEnv("STORE_LABEL", "KrouAI Credits"),
		BillPrefix:    GetEnv("BILL_PREFIX", "KROU"),

		DeeplinkCallback: GetEnv("DEEPLINK_CALLBACK", "https://krouai.com/?payment_success=true"),
		AppIconURL:       GetEnv("APP_ICON_URL", "https://krouai.com/logo.png"),
		AppName:          GetEnv("APP_NAME", "KrouAI"),

		DB: DBConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "krouai"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},

		TelegramToken: GetEnv("TELEGRAM_TOKEN", ""),
		GeminiAPIKey:  GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:   GetEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
