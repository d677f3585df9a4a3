package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	// GuessDurationSeconds bounds the guessing phase. Zero means the round
	// stays open until the host closes it.
	GuessDurationSeconds int
	// MaxPlayers caps the number of players per room. Zero means unlimited.
	MaxPlayers int
	// JoinBaseURL overrides the URL encoded into join QR codes. When empty
	// the request host is used.
	JoinBaseURL string
}

func Default() Config {
	return Config{
		GuessDurationSeconds: 0,
		MaxPlayers:           0,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("GUESS_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.GuessDurationSeconds = value
		}
	}
	if raw := os.Getenv("MAX_PLAYERS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.MaxPlayers = value
		}
	}
	if raw := os.Getenv("JOIN_BASE_URL"); raw != "" {
		cfg.JoinBaseURL = raw
	}
	return cfg
}
