package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	DatasetPath string

	SystemsPageURL    string
	SystemsTableIndex int
	HTTPTimeoutMs     int
	HTTPRateLimitRPS  int
	HTTPUserAgent     string

	ChartOutputPath string
	ChartTitle      string
	ChartCaption    string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "psephos.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		DatasetPath: getEnv("DATASET_PATH", ""),

		SystemsPageURL:    getEnv("SYSTEMS_PAGE_URL", "https://www.cia.gov/the-world-factbook/field/suffrage/"),
		SystemsTableIndex: getEnvInt("SYSTEMS_TABLE_INDEX", 2),
		HTTPTimeoutMs:     getEnvInt("HTTP_TIMEOUT_MS", 30000),
		HTTPRateLimitRPS:  getEnvInt("HTTP_RATE_LIMIT_RPS", 2),
		HTTPUserAgent:     getEnv("HTTP_USER_AGENT", "psephos/1.0"),

		ChartOutputPath: getEnv("CHART_OUTPUT_PATH", filepath.Join(cwd, "out", "voting-systems.png")),
		ChartTitle:      getEnv("CHART_TITLE", "Electoral systems for national legislatures"),
		ChartCaption:    getEnv("CHART_CAPTION", ""),
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
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
