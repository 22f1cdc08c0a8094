package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        string
	MaxFileSize       int64
	ParamsFile        string
	TesseractDataPath string
	OCREnabled        bool
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	serverPort := getEnv("SERVER_PORT", "8080")

	paramsFile := getEnv("RGDU_PARAMS_FILE", "data/rgdu_params.json")

	tessdataPath := getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/")

	return &Config{
		ServerPort:        serverPort,
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
		ParamsFile:        paramsFile,
		TesseractDataPath: tessdataPath,
		OCREnabled:        getEnvBool("OCR_ENABLED", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}
