// Package config reads process configuration from a .env file and the
// environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const defaultServer = "http://localhost:8000"

type Config struct {
	// Server is the tutor backend base URL.
	Server string

	// LogDir is where the session log file lives.
	LogDir string

	// Device pins a capture device by name; empty means system default.
	Device string

	// Player overrides the TTS playback command; empty means autodetect.
	Player string
}

// Load reads configuration from a .env file (if present) and
// environment variables, applying defaults when values are missing.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		Server: envOr("TEACHME_SERVER", defaultServer),
		LogDir: envOr("TEACHME_LOG_DIR", defaultLogDir()),
		Device: os.Getenv("TEACHME_DEVICE"),
		Player: os.Getenv("TEACHME_PLAYER"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultLogDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "teachme")
	}
	return filepath.Join(base, "teachme")
}
