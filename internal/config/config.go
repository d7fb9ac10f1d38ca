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

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config holds every application setting.
type Config struct {
	HTTPAddr        string
	StoreDriver     string
	SQLitePath      string
	SeedHTML        string
	MaxConnections  int
	ShutdownTimeout time.Duration
	TelegramToken   string
	LogLevel        string
	LogFormat       string
}

// Load reads the .env file, if any, and then the process environment.
func Load() (*Config, error) {
	// A missing file is fine: in Docker the variables come from the environment.
	if err := godotenv.Load(); err != nil {
		fmt.Println("info: .env not found, reading variables from the environment")
	}
	return FromEnv()
}

// FromEnv builds the config from the current process environment only.
func FromEnv() (*Config, error) {
	driver := strings.ToLower(withDefault(os.Getenv("STORE_DRIVER"), DriverMemory))
	if driver != DriverMemory && driver != DriverSQLite {
		return nil, fmt.Errorf("STORE_DRIVER %q: expected %q or %q", driver, DriverMemory, DriverSQLite)
	}

	maxConns, err := strconv.Atoi(withDefault(os.Getenv("MAX_CONNECTIONS"), "0"))
	if err != nil || maxConns < 0 {
		return nil, fmt.Errorf("MAX_CONNECTIONS must be a non-negative integer")
	}

	shutdown, err := time.ParseDuration(withDefault(os.Getenv("SHUTDOWN_TIMEOUT"), "5s"))
	if err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}

	seedHTML := strings.TrimSpace(os.Getenv("SEED_HTML"))
	if seedHTML != "" {
		seedHTML = resolvePath(seedHTML)
	}

	return &Config{
		HTTPAddr:        withDefault(os.Getenv("HTTP_ADDR"), ":8080"),
		StoreDriver:     driver,
		SQLitePath:      resolvePath(withDefault(os.Getenv("SQLITE_PATH"), "data/books.db")),
		SeedHTML:        seedHTML,
		MaxConnections:  maxConns,
		ShutdownTimeout: shutdown,
		TelegramToken:   strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		LogLevel:        withDefault(os.Getenv("LOG_LEVEL"), "info"),
		LogFormat:       withDefault(os.Getenv("LOG_FORMAT"), "console"),
	}, nil
}

func withDefault(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func resolvePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	if filepath.IsAbs(p) {
		return p
	}

	if cwd, err := os.Getwd(); err == nil {
		return filepath.Clean(filepath.Join(cwd, p))
	}

	return p
}
