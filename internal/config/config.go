package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	ServerPort string

	// Seed values applied idempotently at startup.
	BankSeedCapital   string
	BankOperatorEmail string
	BankOperatorToken string
}

// Load reads configuration from the environment, after loading a .env file
// when one is present. A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "scrooge_bank"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		BankSeedCapital:   getEnv("BANK_SEED_CAPITAL", "250000.00"),
		BankOperatorEmail: getEnv("BANK_OPERATOR_EMAIL", "operator@scrooge-bank.com"),
		BankOperatorToken: getEnv("BANK_OPERATOR_TOKEN", ""),
	}
}

func (c *Config) GetDBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
