package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSecretsDir = "/run/secrets"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost      string
	ServerPort      string
	ShutdownTimeout time.Duration

	// Database configuration. DBDriver is "postgres" or "sqlite".
	DBDriver          string
	DatabaseURL       string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	SQLitePath        string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	MigrationsDir     string

	// Redis configuration. Rate limiting is skipped when RedisEnabled is false.
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	JWTExpiry time.Duration

	CORSAllowedOrigins []string

	AuthRateLimit    int
	AuthRateWindow   time.Duration
	RecipeRateLimit  int
	RecipeRateWindow time.Duration

	LogLevel    string
	SeedOnStart bool
}

// LoadConfig reads configuration from the environment. An optional .env file
// (or ENV_FILE) is loaded first; variables already set take precedence.
// Sensitive values fall back to docker secret files under SECRETS_DIR.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	r := &reader{}
	cfg := &Config{
		Environment: GetEnvironment(),

		ServerHost:      r.str("SERVER_HOST", "server_host", "0.0.0.0"),
		ServerPort:      r.str("SERVER_PORT", "server_port", "5000"),
		ShutdownTimeout: r.duration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DBDriver:          strings.ToLower(r.str("DB_DRIVER", "", "postgres")),
		DatabaseURL:       r.str("DATABASE_URL", "database_url", ""),
		DBHost:            r.str("DB_HOST", "db_host", "localhost"),
		DBPort:            r.str("DB_PORT", "db_port", "5432"),
		DBUser:            r.str("DB_USER", "db_user", "postgres"),
		DBPassword:        r.str("DB_PASSWORD", "db_password", ""),
		DBName:            r.str("DB_NAME", "db_name", "recipeshare"),
		DBSSLMode:         r.str("DB_SSL_MODE", "db_ssl_mode", "disable"),
		SQLitePath:        r.str("SQLITE_PATH", "", "recipeshare.db"),
		DBMaxOpenConns:    r.integer("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    r.integer("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetime: r.duration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		MigrationsDir:     r.str("MIGRATIONS_DIR", "", "migrations"),

		RedisEnabled:  r.boolean("REDIS_ENABLED", true),
		RedisHost:     r.str("REDIS_HOST", "redis_host", "localhost"),
		RedisPort:     r.str("REDIS_PORT", "redis_port", "6379"),
		RedisPassword: r.str("REDIS_PASSWORD", "redis_password", ""),
		RedisDB:       r.integer("REDIS_DB", 0),
		RedisURL:      r.str("REDIS_URL", "redis_url", ""),

		JWTSecret: r.str("JWT_SECRET", "jwt_secret", ""),
		JWTExpiry: r.duration("JWT_EXPIRY", 24*time.Hour),

		CORSAllowedOrigins: splitList(r.str("CORS_ALLOWED_ORIGINS", "", "http://localhost:5173")),

		AuthRateLimit:    r.integer("AUTH_RATE_LIMIT", 20),
		AuthRateWindow:   r.duration("AUTH_RATE_WINDOW", 15*time.Minute),
		RecipeRateLimit:  r.integer("RECIPE_RATE_LIMIT", 30),
		RecipeRateWindow: r.duration("RECIPE_RATE_WINDOW", time.Hour),

		LogLevel:    r.str("LOG_LEVEL", "", "info"),
		SeedOnStart: r.boolean("SEED_ON_START", false),
	}
	if len(r.errs) > 0 {
		return nil, fmt.Errorf("invalid configuration:\n%s", strings.Join(r.errs, "\n"))
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// ListenAddr is the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisAddr is the host:port of the redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// reader resolves values and collects parse errors so all of them are reported at once.
type reader struct {
	errs []string
}

func (r *reader) str(env, secret, def string) string {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	if secret != "" {
		if v := readSecret(secret); v != "" {
			return v
		}
	}
	return def
}

func (r *reader) integer(env string, def int) int {
	v := strings.TrimSpace(os.Getenv(env))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s: %q is not an integer", env, v))
		return def
	}
	return n
}

func (r *reader) boolean(env string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(env))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s: %q is not a boolean", env, v))
		return def
	}
	return b
}

func (r *reader) duration(env string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(env))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s: %q is not a duration", env, v))
		return def
	}
	return d
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = defaultSecretsDir
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
