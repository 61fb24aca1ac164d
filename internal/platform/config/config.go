package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAdminTitles is the job-title allow-list that grants the admin role
// when ADMIN_TITLES is not set. It is consumed only through Config; no other
// package keeps its own copy.
const DefaultAdminTitles = "Analista de T.I,RH,Financeiro,Diretoria"

type Config struct {
	Addr                   string
	DatabaseURL            string
	JWTSecret              string
	TokenTTL               time.Duration
	DataEncryptionKey      string
	UploadDir              string
	MigrationsDir          string
	Environment            string
	AdminTitles            []string
	SeedAdminName          string
	SeedAdminEmail         string
	SeedAdminPassword      string
	SeedAdminTitle         string
	RunMigrations          bool
	RunSeed                bool
	MaxBodyBytes           int64
	RateLimitPerMinute     int
	MetricsEnabled         bool
	PayslipUniquePerPeriod bool
}

func Load() Config {
	return Config{
		Addr:                   getEnv("APP_ADDR", ":8080"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		TokenTTL:               getEnvDuration("TOKEN_TTL", 8*time.Hour),
		DataEncryptionKey:      getEnv("DATA_ENCRYPTION_KEY", ""),
		UploadDir:              getEnv("UPLOAD_DIR", "storage/uploads"),
		MigrationsDir:          getEnv("MIGRATIONS_DIR", "migrations"),
		Environment:            getEnv("APP_ENV", "development"),
		AdminTitles:            splitList(getEnv("ADMIN_TITLES", DefaultAdminTitles)),
		SeedAdminName:          getEnv("SEED_ADMIN_NAME", "Administrador"),
		SeedAdminEmail:         getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:      getEnv("SEED_ADMIN_PASSWORD", ""),
		SeedAdminTitle:         getEnv("SEED_ADMIN_TITLE", "RH"),
		RunMigrations:          getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:                getEnvBool("RUN_SEED", true),
		MaxBodyBytes:           int64(getEnvInt("MAX_BODY_BYTES", 10*1024*1024)),
		RateLimitPerMinute:     getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:         getEnvBool("METRICS_ENABLED", true),
		PayslipUniquePerPeriod: getEnvBool("PAYSLIP_UNIQUE_PER_PERIOD", false),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if len(c.AdminTitles) == 0 {
		return fmt.Errorf("ADMIN_TITLES must list at least one privileged job title")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
