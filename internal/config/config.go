package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Backend names for the standings/fixtures source.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath      string
	StandingsFile string
	FixturesFile  string
	ListenAddr    string
	SimRuns       int
	SimWorkers    int
	StoreBackend  string
	PostgresURL   string
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first.
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to the current working directory (useful for go run).
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	cfg := &AppConfig{
		DataPath:      dataPath,
		StandingsFile: getEnv("STANDINGS_FILE", filepath.Join(dataPath, "data", "standings.json")),
		FixturesFile:  getEnv("FIXTURES_FILE", filepath.Join(dataPath, "data", "fixtures_list.json")),
		ListenAddr:    getEnv("LISTEN_ADDR", "127.0.0.1:8080"),
		SimRuns:       getEnvInt("SIM_RUNS", 16000),
		SimWorkers:    getEnvInt("SIM_WORKERS", 4),
		StoreBackend:  getEnv("STORE_BACKEND", BackendFile),
		PostgresURL:   getEnv("POSTGRES_URL", ""),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer environment value")
	}
	return fallback
}
