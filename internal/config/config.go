package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DBDSN            string
	Environment      string
	JWTSecret        string
	MigrationsDir    string
	SlotHorizonWeeks int
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:          os.Getenv("PORT"),
		DBDSN:         os.Getenv("DB_DSN"),
		Environment:   os.Getenv("ENV"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}

	cfg.SlotHorizonWeeks = 4
	if raw := os.Getenv("SLOT_HORIZON_WEEKS"); raw != "" {
		weeks, err := strconv.Atoi(raw)
		if err != nil || weeks <= 0 {
			return nil, fmt.Errorf("SLOT_HORIZON_WEEKS must be a positive integer, got %q", raw)
		}
		cfg.SlotHorizonWeeks = weeks
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}
