package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"food_delivery/internal/status"
	"food_delivery/internal/utils"
)

// Record store backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	StoreBackend string
	StorePath    string
	BcryptCost   int
	TickInterval time.Duration

	// Optional login performed by the tracker at startup.
	LoginPhone string
	LoginPIN   string
}

// Load reads a .env file if there is one, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendSQLite)),
		StorePath:    getEnv("STORE_PATH", "delivery.db"),
		BcryptCost:   utils.MinPINCost,
		TickInterval: status.DefaultInterval,
		LoginPhone:   getEnv("TRACKER_PHONE", ""),
		LoginPIN:     getEnv("TRACKER_PIN", ""),
	}

	switch cfg.StoreBackend {
	case BackendSQLite, BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q (want sqlite, postgres or memory)", cfg.StoreBackend)
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("Invalid BCRYPT_COST, defaulting to %d: %v", utils.MinPINCost, err)
		} else if cost < utils.MinPINCost {
			log.Printf("BCRYPT_COST %d is below the minimum, using %d", cost, utils.MinPINCost)
		} else {
			cfg.BcryptCost = cost
		}
	}

	if v := os.Getenv("TICK_INTERVAL_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			log.Printf("Invalid TICK_INTERVAL_MS %q, defaulting to %v", v, status.DefaultInterval)
		} else {
			cfg.TickInterval = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
