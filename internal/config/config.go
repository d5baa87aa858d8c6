package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	DBPath string

	SpreadsheetID   string
	CredentialsPath string
	PostalSheetName string
	RatesSource     string
	RatesXLSXPath   string
	Variant         string

	TNClientID       string
	TNClientSecret   string
	PublicAPIURL     string
	CarrierName      string
	TNRateLimitRPS   int
	TNTimeoutMs      int
	RegisterDelaySec int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:   getEnv("PORT", "3000"),
		DBPath: getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),

		SpreadsheetID:   getEnv("GOOGLE_SHEET_ID", ""),
		CredentialsPath: getEnv("GCP_CREDENTIALS_PATH", ""),
		PostalSheetName: getEnv("POSTAL_SHEET_NAME", "CODIGOS POSTALES"),
		RatesSource:     getEnv("RATES_SOURCE", "google"),
		RatesXLSXPath:   getEnv("RATES_XLSX_PATH", filepath.Join(cwd, "data", "rates.xlsx")),
		Variant:         getEnv("VARIANT", "full"),

		TNClientID:       getEnv("TIENDA_NUBE_CLIENT_ID", ""),
		TNClientSecret:   getEnv("TIENDA_NUBE_CLIENT_SECRET", ""),
		PublicAPIURL:     getEnv("PUBLIC_API_URL", ""),
		CarrierName:      getEnv("CARRIER_NAME", "Mobapp Express"),
		TNRateLimitRPS:   getEnvInt("TIENDA_NUBE_RATE_LIMIT_RPS", 2),
		TNTimeoutMs:      getEnvInt("TIENDA_NUBE_TIMEOUT_MS", 30000),
		RegisterDelaySec: getEnvInt("REGISTER_DELAY_SEC", 5),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
