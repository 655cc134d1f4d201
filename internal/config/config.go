package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-logger/internal/store"
	"github.com/i474232898/weather-logger/internal/weather"
	"github.com/i474232898/weather-logger/internal/weather/providers"
)

// Default location: New Delhi.
const (
	DefaultLatitude  = 28.61
	DefaultLongitude = 77.21
)

type AppConfig struct {
	// Location to sample.
	Location weather.Location

	APIBaseURL string `validate:"required,url"`
	CSVPath    string `validate:"required"`

	// Outbound request settings. Zero timeout means none.
	HTTPTimeout time.Duration `validate:"gte=0"`
	MaxRetries  int           `validate:"gte=0"`

	Port string `validate:"required,numeric"`
}

var validate = validator.New()

// Load reads configuration from the environment (and .env, when present)
// with defaults matching a plain single-shot run.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	lat, err := getenvFloat("WEATHER_LATITUDE", DefaultLatitude)
	if err != nil {
		return nil, err
	}
	lon, err := getenvFloat("WEATHER_LONGITUDE", DefaultLongitude)
	if err != nil {
		return nil, err
	}
	cfg.Location = weather.Location{Latitude: lat, Longitude: lon}

	cfg.APIBaseURL = getenvDefault("WEATHER_API_URL", providers.DefaultOpenMeteoURL)
	cfg.CSVPath = getenvDefault("WEATHER_CSV_PATH", store.DefaultPath)

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	retries, err := getenvInt("FETCH_MAX_RETRIES", 0)
	if err != nil {
		return nil, err
	}
	cfg.MaxRetries = retries

	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
