package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        string
	GinMode           string
	TesseractDataPath string
	TesseractLanguage string
	PaddleAPIURL      string
	PaddleTimeout     time.Duration
	MaxFileSize       int64
	LogLevel          string
	LogFormat         string
	// ExtractionConfigPath points at an optional YAML file overriding engine thresholds.
	ExtractionConfigPath string
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		GinMode:              getEnv("GIN_MODE", "release"),
		TesseractDataPath:    getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		TesseractLanguage:    getEnv("TESSERACT_LANG", "eng+deu"),
		PaddleAPIURL:         getEnv("PADDLEOCR_API_URL", ""),
		PaddleTimeout:        getEnvDuration("PADDLEOCR_TIMEOUT", 30*time.Second),
		MaxFileSize:          int64(getEnvInt("MAX_FILE_SIZE_MB", 10)) * 1024 * 1024,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "text"),
		ExtractionConfigPath: getEnv("EXTRACTION_CONFIG", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
