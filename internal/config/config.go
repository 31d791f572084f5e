package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Store    StoreConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	DashboardCacheTTL  time.Duration
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
	Verbose    bool
}

type StoreConfig struct {
	Backend  string // memory, file or postgres
	FilePath string
}

type AuthConfig struct {
	JwtSecret         string
	AdminEmail        string
	AdminPasswordHash string // bcrypt
	TokenTTL          time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			DashboardCacheTTL:  time.Duration(getEnvAsInt("DASHBOARD_CACHE_TTL_SECONDS", 30)) * time.Second,
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Verbose:    getEnvAsBool("DB_LOG_QUERIES", false),
		},
		Store: StoreConfig{
			Backend:  getEnv("STORE_BACKEND", StoreMemory),
			FilePath: getEnv("STORE_FILE_PATH", "data/subcontrol.json"),
		},
		Auth: AuthConfig{
			JwtSecret:         getEnv("JWT_SECRET", ""),
			AdminEmail:        getEnv("ADMIN_EMAIL", "admin@example.com"),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			TokenTTL:          time.Duration(getEnvAsInt("TOKEN_TTL_MINUTES", 60)) * time.Minute,
		},
	}
}

// Validate reports settings the process cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory:
	case StoreFile:
		if c.Store.FilePath == "" {
			return fmt.Errorf("STORE_FILE_PATH is required for the file store")
		}
	case StorePostgres:
		if c.Database.Connection == "" {
			return fmt.Errorf("DB_CONNECTION_STRING is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want memory, file or postgres)", c.Store.Backend)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
