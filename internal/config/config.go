package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	Port        string
	APIBaseURL  string
	SessionFile string
}

func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8080/api"),
		SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskboard-session.json"
	}
	return filepath.Join(home, ".taskboard", "session.json")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
