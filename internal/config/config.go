package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	FrontendURL    string

	// Search
	MaxRows               int
	MaxCols               int
	DefaultMoveTime       time.Duration
	MaxMoveTime           time.Duration
	SearchMaxDepth        int
	KeepLastCompleteDepth bool

	// Analysis cache
	RedisURL      string
	RedisPassword string
	CacheTTL      time.Duration

	// API auth
	JWTSecret   string
	APITokenTTL time.Duration
	AdminKey    string

	LogLevel  string
	LogPretty bool
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	defaultMoveTime := GetEnvAsDuration("DEFAULT_MOVE_TIME_MS", time.Second, time.Millisecond)
	maxMoveTime := GetEnvAsDuration("MAX_MOVE_TIME_MS", 10*time.Second, time.Millisecond)
	if defaultMoveTime > maxMoveTime {
		log.Warn().
			Dur("default", defaultMoveTime).
			Dur("max", maxMoveTime).
			Msg("DEFAULT_MOVE_TIME_MS exceeds MAX_MOVE_TIME_MS, clamping")
		defaultMoveTime = maxMoveTime
	}

	AppConfig = &Config{
		Port:           port,
		AllowedOrigins: allowedOrigins,
		FrontendURL:    frontendURL,

		MaxRows:               GetEnvAsInt("BOARD_MAX_ROWS", 10),
		MaxCols:               GetEnvAsInt("BOARD_MAX_COLS", 10),
		DefaultMoveTime:       defaultMoveTime,
		MaxMoveTime:           maxMoveTime,
		SearchMaxDepth:        GetEnvAsInt("SEARCH_MAX_DEPTH", 0),
		KeepLastCompleteDepth: GetEnvAsBool("KEEP_LAST_COMPLETE_DEPTH", false),

		RedisURL:      GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		CacheTTL:      GetEnvAsDuration("CACHE_TTL_SECONDS", 10*time.Minute, time.Second),

		JWTSecret:   GetEnv("JWT_SECRET", ""),
		APITokenTTL: GetEnvAsDuration("API_TOKEN_TTL_MINUTES", 24*time.Hour, time.Minute),
		AdminKey:    GetEnv("API_ADMIN_KEY", ""),

		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogPretty: GetEnvAsBool("LOG_PRETTY", false),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("Invalid integer value, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("Invalid boolean value, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads an integer count of unit, e.g. milliseconds.
func GetEnvAsDuration(key string, defaultValue, unit time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		log.Warn().Str("key", key).Str("value", valueStr).Dur("default", defaultValue).Msg("Invalid duration value, using default")
		return defaultValue
	}
	return time.Duration(value) * unit
}
