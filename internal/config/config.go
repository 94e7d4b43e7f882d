package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort          string
	DatabaseDSN       string
	JWTSecret         string
	CORSOrigins       string
	LowStockThreshold int // podrazumevani prag za obaveštenja o niskom lageru
}

func Load() *Config {
	// .env je opcioni, u produkciji se sve zadaje kroz okruženje
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:       getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=magacin port=5432 sslmode=disable"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		CORSOrigins:       getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 5),
	}

	// Sigurnosne provere za produkciju
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET nije definisan! Obavezan je za rad servera.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET mora imati bar 32 karaktera!")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=magacin port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN koristi podrazumevanu vrednost, za produkciju zadaj sopstvenu Postgres konekciju.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[WARN] %s=%q nije validan broj, koristi se %d", key, v, def)
		return def
	}
	return n
}
