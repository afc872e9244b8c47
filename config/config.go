package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings. LobbyCapacity and DepositAmount
// are the fixed operating constants every lobby runs with: set once at
// startup, immutable afterwards.
type Config struct {
	Port          string
	DatabaseURL   string
	LobbyCapacity int
	DepositAmount float64
}

var C Config

const (
	defaultPort          = "4000"
	defaultLobbyCapacity = 500
	defaultDepositAmount = 0.05
)

// Load reads .env and environment variables into C.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	C.DatabaseURL = os.Getenv("DATABASE_URL")
	if C.DatabaseURL == "" {
		log.Fatal("[FATAL] DATABASE_URL is required in .env or environment")
	}

	C.Port = os.Getenv("PORT")
	if C.Port == "" {
		C.Port = defaultPort
	}

	C.LobbyCapacity = defaultLobbyCapacity
	if v := os.Getenv("LOBBY_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Fatalf("[FATAL] Invalid LOBBY_CAPACITY: %q", v)
		}
		C.LobbyCapacity = n
	}

	C.DepositAmount = defaultDepositAmount
	if v := os.Getenv("DEPOSIT_AMOUNT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			log.Fatalf("[FATAL] Invalid DEPOSIT_AMOUNT: %q", v)
		}
		C.DepositAmount = f
	}
}
