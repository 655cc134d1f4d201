package weather

import (
	"context"
	"time"
)

// Provider abstracts a current-weather data source (e.g. Open-Meteo).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (ProviderReading, error)
}

// Store is the contract the CSV log (and any test double) must satisfy.
type Store interface {
	Append(rec Record) error
	GetLatest() (Record, error)
	GetRange(from, to time.Time) ([]Record, error)
}
