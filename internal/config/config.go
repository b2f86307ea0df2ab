package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"esolve-collections/internal/pkg/password"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds all configuration for the application
type Config struct {
	AppMode    string
	Port       string
	Database   DatabaseConfig
	Session    SessionConfig
	Redis      RedisConfig
	Credential CredentialConfig
	Seed       SeedConfig
	Cron       CronConfig
	Cookie     CookieConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver     string // sqlite or mysql
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
}

// SessionConfig selects where the persisted session state lives
type SessionConfig struct {
	Backend string // db, redis or memory
}

// RedisConfig holds redis configuration for SESSION_BACKEND=redis
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// CredentialConfig holds login and credential settings
type CredentialConfig struct {
	TTL            time.Duration
	SharedPassword string
	DirectoryFile  string
	LoginDelay     time.Duration
	HashCost       int
}

// SeedConfig controls the sample population generated at startup
type SeedConfig struct {
	Agents     int
	Cases      int
	RandomSeed int64
}

// CronConfig holds background job schedules
type CronConfig struct {
	DailySummary string
	SessionCheck string
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		zap.L().Warn(".env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	database := loadDatabaseConfig(appMode)
	if database.Driver != "sqlite" && database.Driver != "mysql" {
		return nil, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'sqlite' or 'mysql')", database.Driver)
	}

	session := SessionConfig{Backend: getEnv("SESSION_BACKEND", "db")}
	switch session.Backend {
	case "db", "redis", "memory":
	default:
		return nil, fmt.Errorf("invalid SESSION_BACKEND: '%s' (must be 'db', 'redis' or 'memory')", session.Backend)
	}

	config := &Config{
		AppMode:    appMode,
		Port:       getEnv("PORT", "3000"),
		Database:   database,
		Session:    session,
		Redis:      loadRedisConfig(),
		Credential: loadCredentialConfig(),
		Seed:       loadSeedConfig(),
		Cron:       loadCronConfig(),
		Cookie:     loadCookieConfig(appMode),
	}

	zap.L().Info("Configuration loaded",
		zap.String("mode", appMode),
		zap.String("db_driver", database.Driver),
		zap.String("session_backend", session.Backend),
	)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Driver:     strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		SQLitePath: getEnv("SQLITE_PATH", "esolve.db"),
		Host:       getEnv(prefix+"DB_HOST", "localhost"),
		Port:       getEnv(prefix+"DB_PORT", "3306"),
		User:       getEnv(prefix+"DB_USER", "root"),
		Password:   getEnv(prefix+"DB_PASS", ""),
		DBName:     getEnv(prefix+"DB_NAME", "esolve"),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
		Password:  getEnv("REDIS_PASSWORD", ""),
		DB:        getEnvInt("REDIS_DB", 0),
		KeyPrefix: getEnv("REDIS_KEY_PREFIX", "esolve:"),
	}
}

func loadCredentialConfig() CredentialConfig {
	return CredentialConfig{
		TTL:            time.Duration(getEnvInt("CREDENTIAL_TTL_MINUTES", 60)) * time.Minute,
		SharedPassword: getEnv("SHARED_PASSWORD", "password123"),
		DirectoryFile:  getEnv("DIRECTORY_FILE", ""),
		LoginDelay:     time.Duration(getEnvInt("LOGIN_DELAY_MS", 0)) * time.Millisecond,
		HashCost:       getEnvInt("PASSWORD_HASH_COST", password.DefaultCost),
	}
}

func loadSeedConfig() SeedConfig {
	seed, err := strconv.ParseInt(getEnv("SEED_RANDOM", "42"), 10, 64)
	if err != nil {
		seed = 42
	}
	return SeedConfig{
		Agents:     getEnvInt("SEED_AGENTS", 5),
		Cases:      getEnvInt("SEED_CASES", 150),
		RandomSeed: seed,
	}
}

func loadCronConfig() CronConfig {
	return CronConfig{
		DailySummary: getEnv("SUMMARY_CRON", "0 18 * * *"),
		SessionCheck: getEnv("SESSION_CHECK_CRON", "@every 1m"),
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable, falling back on parse errors
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		zap.L().Warn("Invalid integer env value, using default",
			zap.String("key", key), zap.Int("default", defaultValue))
		return defaultValue
	}
	return value
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://dashboard.esolve.com"
	}
	return origins
}
