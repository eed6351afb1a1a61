package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type Config struct {
	Port          string
	StoreDriver   string
	StorePath     string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CORSOrigins   []string
	Location      *time.Location
	RefreshCron   string
	LogDir        string
	Debug         bool
}

// Load reads configuration from the environment, after merging an optional .env file.
func Load(envFiles ...string) (Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverJSON)),
		RedisHost:     strings.TrimSpace(os.Getenv("REDIS_HOST")),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CORSOrigins:   getEnvList("CORS_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		RefreshCron:   getEnv("STREAK_REFRESH_CRON", "0 5 0 * * *"),
		LogDir:        os.Getenv("LOG_DIR"),
		Debug:         getEnvBool("DEBUG", false),
	}

	switch cfg.StoreDriver {
	case DriverJSON:
		cfg.StorePath = getEnv("STORE_PATH", "./data/momentum.json")
	case DriverSQLite:
		cfg.StorePath = getEnv("STORE_PATH", "./data/momentum.db")
	case DriverMemory:
	default:
		return cfg, fmt.Errorf("unknown STORE_DRIVER %q (json, sqlite, memory)", cfg.StoreDriver)
	}

	cfg.Location = time.Local
	if name := strings.TrimSpace(os.Getenv("TZ_NAME")); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return cfg, fmt.Errorf("invalid TZ_NAME %q: %w", name, err)
		}
		cfg.Location = loc
	}

	return cfg, nil
}

func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
