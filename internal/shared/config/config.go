package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv        string
	LogLevel      string
	EncryptionKey string
	Audit         AuditConfig
	Postgres      PostgresConfig
	Argon2        Argon2Config
}

type AuditConfig struct {
	LogFile string
}

// PostgresConfig is optional; an empty URL disables the database audit store.
type PostgresConfig struct {
	URL string
}

type Argon2Config struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// IsDev reports whether human-readable logging should be used.
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

var bindings = map[string]string{
	"app.env":        "APP_ENV",
	"log.level":      "LOG_LEVEL",
	"audit.log_file": "AUDIT_LOG_FILE",
	"postgres.url":   "DATABASE_URL",
	"encryption.key": "ENCRYPTION_KEY",
	"argon2.time":    "ARGON2_TIME",
	"argon2.memory":  "ARGON2_MEMORY_KIB",
	"argon2.threads": "ARGON2_THREADS",
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	v.SetDefault("app.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("audit.log_file", "security.log")
	v.SetDefault("argon2.time", 2)
	v.SetDefault("argon2.memory", 19456)
	v.SetDefault("argon2.threads", 1)

	cfg := Config{
		AppEnv:        v.GetString("app.env"),
		LogLevel:      strings.ToLower(v.GetString("log.level")),
		EncryptionKey: v.GetString("encryption.key"),
		Audit:         AuditConfig{LogFile: v.GetString("audit.log_file")},
		Postgres:      PostgresConfig{URL: v.GetString("postgres.url")},
		Argon2: Argon2Config{
			Time:      v.GetUint32("argon2.time"),
			MemoryKiB: v.GetUint32("argon2.memory"),
		},
	}

	threads := v.GetUint32("argon2.threads")
	if threads > math.MaxUint8 {
		return nil, fmt.Errorf("ARGON2_THREADS must be at most %d, got %d", math.MaxUint8, threads)
	}
	cfg.Argon2.Threads = uint8(threads)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Audit.LogFile == "" {
		return errors.New("AUDIT_LOG_FILE must not be empty")
	}
	if c.Argon2.Time == 0 || c.Argon2.MemoryKiB == 0 || c.Argon2.Threads == 0 {
		return errors.New("ARGON2_TIME, ARGON2_MEMORY_KIB and ARGON2_THREADS must be positive")
	}

	// The key only protects data leaving the process.
	if c.Postgres.URL == "" {
		return nil
	}
	if c.EncryptionKey == "" {
		return errors.New("ENCRYPTION_KEY is required when DATABASE_URL is set")
	}
	if len(c.EncryptionKey) != 64 {
		return fmt.Errorf("ENCRYPTION_KEY must be a 64-character hex string (32 bytes), but got %d chars", len(c.EncryptionKey))
	}
	return nil
}
