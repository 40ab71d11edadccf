package config

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	SessionStoreDatabase = "database"
	SessionStoreRedis    = "redis"
	SessionStoreMemory   = "memory"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	Port        string
	Environment string

	// MasterSecret feeds the key derivation for at-rest encryption. The
	// server refuses to start without it.
	MasterSecret string

	Store        string
	DatabaseURL  string
	SessionStore string
	Redis        RedisConfig

	SessionTTL         time.Duration
	PasswordMinLength  int
	PasswordComplexity bool

	CorsConfig cors.Options
}

// Load reads configuration from the environment (with a .env file in
// development). It fails rather than falling back when a value required for
// secure operation is missing or malformed.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENV", "development"),
		MasterSecret: getEnv("MASTER_SECRET", ""),
		Store:        getEnv("STORE", StorePostgres),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		SessionStore: getEnv("SESSION_STORE", SessionStoreDatabase),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		CorsConfig: corsConfig(),
	}

	// Refuse to serve rather than silently operate unencrypted.
	if cfg.MasterSecret == "" {
		return nil, fmt.Errorf("MASTER_SECRET must be set")
	}

	switch cfg.Store {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set when STORE=%s", StorePostgres)
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("unknown STORE %q", cfg.Store)
	}

	switch cfg.SessionStore {
	case SessionStoreDatabase, SessionStoreRedis, SessionStoreMemory:
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL: %q", os.Getenv("SESSION_TTL"))
	}
	cfg.SessionTTL = ttl

	minLength, err := strconv.Atoi(getEnv("PASSWORD_MIN_LENGTH", "8"))
	if err != nil || minLength < 1 {
		return nil, fmt.Errorf("invalid PASSWORD_MIN_LENGTH: %q", os.Getenv("PASSWORD_MIN_LENGTH"))
	}
	cfg.PasswordMinLength = minLength

	complexity, err := strconv.ParseBool(getEnv("PASSWORD_COMPLEXITY", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid PASSWORD_COMPLEXITY: %q", os.Getenv("PASSWORD_COMPLEXITY"))
	}
	cfg.PasswordComplexity = complexity

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %q", os.Getenv("REDIS_DB"))
	}
	cfg.Redis.DB = redisDB

	return cfg, nil
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func corsConfig() cors.Options {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		origins = append(origins, origin)
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
