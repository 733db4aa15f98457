package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment variables for the service.
type Config struct {
	Env            string // "production" or "development"
	Port           string // HTTP port (default: 8080)
	MongoURL       string // MongoDB connection string
	MongoDB        string // Database name (default: resouq)
	RedisURL       string // Optional rating-summary cache
	OfferSweepSpec string // Cron spec for the offer expiry sweep (default: @every 5m)
}

// LoadConfig loads environment variables into Config and validates them.
// A .env file is honored when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:            os.Getenv("ENV"),
		Port:           os.Getenv("PORT"),
		MongoURL:       os.Getenv("MONGO_URL"),
		MongoDB:        os.Getenv("MONGO_DB"),
		RedisURL:       os.Getenv("REDIS_URL"),
		OfferSweepSpec: os.Getenv("OFFER_SWEEP_SPEC"),
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "resouq"
	}
	if cfg.OfferSweepSpec == "" {
		cfg.OfferSweepSpec = "@every 5m"
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}

	return cfg, nil
}
