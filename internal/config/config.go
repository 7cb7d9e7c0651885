package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	Env             string
	BackendBaseURL  string
	BackendTimeout  time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// Session store: "bolt" (default) or "redis".
	SessionStore   string
	SessionDBPath  string
	RedisAddr      string
	RedisPassword  string
	SessionTTL     time.Duration
	CountCacheTTL  time.Duration
	RateLimitRPS   float64
	RateLimitBurst int

	MaxRequestBodySize int64
}

func Load() *Config {
	// Missing .env is fine, env vars may come from the environment itself.
	_ = godotenv.Load()

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		BackendBaseURL:  getEnv("BACKEND_BASE_URL", "https://technest-backend-4b5u.onrender.com"),
		BackendTimeout:  getDuration("BACKEND_TIMEOUT", 60*time.Second),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		SessionStore:  getEnv("SESSION_STORE", "bolt"),
		SessionDBPath: getEnv("SESSION_DB_PATH", "data/sessions.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Sessions live as long as the auth cookie.
		SessionTTL:     getDuration("SESSION_TTL", 7*24*time.Hour),
		CountCacheTTL:  getDuration("COUNT_CACHE_TTL", 5*time.Minute),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 40),

		MaxRequestBodySize: 1 << 20, // 1MB
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
