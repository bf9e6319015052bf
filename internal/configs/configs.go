package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Config struct {
	Env                    string
	LogLevel               string
	AppURL                 string
	DatabaseDSN            string
	RateLimit              int
	RateLimitBurst         int
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	LockBackend            string
	LockKeyPrefix          string
	LockTTLSeconds         int
	LockWaitMilliseconds   int
	NotifyBackend          string
	NotifyChannel          string
	NotifyWorkers          int
	NotifyQueueSize        int
	JWTSecret              string
	AllowHeaderIdentity    bool
	OfferMinMessageLength  int
	OfferMinHourlyRate     decimal.Decimal
	ShutdownTimeoutSeconds int
}

const (
	BackendLocal = "local"
	BackendRedis = "redis"
	BackendLog   = "log"
)

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		Env:                    getEnv("APP_ENV", "local"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "taskmarket.db"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		RateLimitBurst:         getEnvAsInt("RATE_LIMIT_BURST", 20),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		LockBackend:            strings.ToLower(getEnv("LOCK_BACKEND", BackendLocal)),
		LockKeyPrefix:          getEnv("LOCK_KEY_PREFIX", "taskmarket:lock:task:"),
		LockTTLSeconds:         getEnvAsInt("LOCK_TTL_SECONDS", 10),
		LockWaitMilliseconds:   getEnvAsInt("LOCK_WAIT_MILLISECONDS", 2000),
		NotifyBackend:          strings.ToLower(getEnv("NOTIFY_BACKEND", BackendLog)),
		NotifyChannel:          getEnv("NOTIFY_CHANNEL", "taskmarket:offers"),
		NotifyWorkers:          getEnvAsInt("NOTIFY_WORKERS", 2),
		NotifyQueueSize:        getEnvAsInt("NOTIFY_QUEUE_SIZE", 100),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		AllowHeaderIdentity:    getEnvAsBool("ALLOW_HEADER_IDENTITY", true),
		OfferMinMessageLength:  getEnvAsInt("OFFER_MIN_MESSAGE_LENGTH", 10),
		OfferMinHourlyRate:     getEnvAsDecimal("OFFER_MIN_HOURLY_RATE", decimal.Zero),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

// UsesRedis reports whether any component needs a Redis connection.
func (c Config) UsesRedis() bool {
	return c.LockBackend == BackendRedis || c.NotifyBackend == BackendRedis
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.RateLimitBurst <= 0 {
		log.Fatal("RATE_LIMIT_BURST must be greater than 0")
	}
	if cfg.RedisDB < 0 {
		log.Fatal("REDIS_DB must not be negative")
	}
	if cfg.LockBackend != BackendLocal && cfg.LockBackend != BackendRedis {
		log.Fatalf("LOCK_BACKEND must be %q or %q", BackendLocal, BackendRedis)
	}
	if cfg.LockTTLSeconds <= 0 {
		log.Fatal("LOCK_TTL_SECONDS must be greater than 0")
	}
	if cfg.LockWaitMilliseconds < 0 {
		log.Fatal("LOCK_WAIT_MILLISECONDS must not be negative")
	}
	if cfg.NotifyBackend != BackendLog && cfg.NotifyBackend != BackendRedis {
		log.Fatalf("NOTIFY_BACKEND must be %q or %q", BackendLog, BackendRedis)
	}
	if cfg.NotifyWorkers <= 0 {
		log.Fatal("NOTIFY_WORKERS must be greater than 0")
	}
	if cfg.NotifyQueueSize <= 0 {
		log.Fatal("NOTIFY_QUEUE_SIZE must be greater than 0")
	}
	if cfg.OfferMinMessageLength < 0 {
		log.Fatal("OFFER_MIN_MESSAGE_LENGTH must not be negative")
	}
	if cfg.OfferMinHourlyRate.IsNegative() {
		log.Fatal("OFFER_MIN_HOURLY_RATE must not be negative")
	}
	if cfg.JWTSecret == "" && !cfg.AllowHeaderIdentity {
		log.Fatal("JWT_SECRET is required when ALLOW_HEADER_IDENTITY is false")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Fatalf("invalid boolean value for %s", key)
		}
		return b
	}
	return defaultVal
}

func getEnvAsDecimal(key string, defaultVal decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			log.Fatalf("invalid decimal value for %s", key)
		}
		return d
	}
	return defaultVal
}
