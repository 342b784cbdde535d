package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AuthModeFirebase = "firebase"
	AuthModeDev      = "dev"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Firebase   FirebaseConfig
	Auth       AuthConfig
	App        AppConfig
	Limits     LimitsConfig
	Validation ValidationConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
}

type AuthConfig struct {
	// Mode is "firebase" (verify ID tokens) or "dev" (trust X-User-* headers).
	Mode string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

type LimitsConfig struct {
	// WritesPerMinute is the sustained per-user rate for POST/PUT routes.
	WritesPerMinute int
	WriteBurst      int
	SubmitGuardTTL  time.Duration
}

type ValidationConfig struct {
	TitleMin int
	BodyMin  int
}

// Load reads the environment and validates it for the API server.
func Load() (*Config, error) {
	cfg := Read()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read builds a Config from the environment without validating it.
// Tools that only need a subset (the worker CLI) check what they use.
func Read() *Config {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "mentormap"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		},
		Auth: AuthConfig{
			Mode: strings.ToLower(getEnv("AUTH_MODE", AuthModeFirebase)),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Limits: LimitsConfig{
			WritesPerMinute: getEnvAsInt("WRITES_PER_MINUTE", 30),
			WriteBurst:      getEnvAsInt("WRITE_BURST", 5),
			SubmitGuardTTL:  getEnvAsDuration("SUBMIT_GUARD_TTL", 30*time.Second),
		},
		Validation: ValidationConfig{
			TitleMin: getEnvAsInt("VALIDATION_TITLE_MIN", 5),
			BodyMin:  getEnvAsInt("VALIDATION_BODY_MIN", 20),
		},
	}
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	switch c.Auth.Mode {
	case AuthModeFirebase:
		if c.Firebase.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when AUTH_MODE=firebase")
		}
	case AuthModeDev:
		if c.App.Environment == "production" {
			return fmt.Errorf("AUTH_MODE=dev is not allowed in production")
		}
	default:
		return fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeFirebase, AuthModeDev, c.Auth.Mode)
	}

	if c.Validation.TitleMin < 1 || c.Validation.BodyMin < 1 {
		return fmt.Errorf("validation minimums must be positive")
	}

	if c.Limits.WritesPerMinute < 1 || c.Limits.WriteBurst < 1 {
		return fmt.Errorf("WRITES_PER_MINUTE and WRITE_BURST must be at least 1")
	}

	return nil
}

// DSN renders the lib/pq keyword/value connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
