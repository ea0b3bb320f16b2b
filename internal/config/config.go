package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath          string
	TelegramToken   string
	DefaultTimezone string
	DailyClearBonus int // -1 = use the engine default
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults/environment variables")
	}

	return Config{
		DBPath:          getenv("HABITFLOW_DB", ""),
		TelegramToken:   getenv("TELEGRAM_BOT_TOKEN", ""),
		DefaultTimezone: getenv("HABITFLOW_TZ", "UTC"),
		DailyClearBonus: getenvInt("HABITFLOW_DAILY_CLEAR_BONUS", -1),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
