package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/i474232898/weather-logger/internal/config"
	"github.com/i474232898/weather-logger/internal/store"
	"github.com/i474232898/weather-logger/internal/weather"
	"github.com/i474232898/weather-logger/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatalf("failed to log current weather: %v", err)
	}
}

// run performs a single fetch-and-append pass and reports it on out.
func run(ctx context.Context, cfg *config.AppConfig, out io.Writer) error {
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	csvStore := store.NewCSVStore(cfg.CSVPath)
	provider := providers.NewOpenMeteoProvider(httpClient, cfg.APIBaseURL, cfg.MaxRetries)
	service := weather.NewService(csvStore, provider, cfg.Location)

	rec, err := service.LogCurrent(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, "Logged:", rec.Date, weather.FormatTemperature(rec.Temperature))
	return err
}
