package weather

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Service runs one logging pass: fetch from the provider, stamp with today's
// date and append to the store.
type Service struct {
	store    Store
	provider Provider
	location Location
	now      func() time.Time
}

// NewService creates a new Service for a single location.
func NewService(store Store, provider Provider, loc Location) *Service {
	return &Service{
		store:    store,
		provider: provider,
		location: loc,
		now:      time.Now,
	}
}

// SetClock replaces the clock used to compute the record date.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Location returns the location this service logs.
func (s *Service) Location() Location {
	return s.location
}

// LogCurrent fetches the current temperature and appends it to the store.
// Nothing is appended when the fetch fails.
func (s *Service) LogCurrent(ctx context.Context) (Record, error) {
	if s.provider == nil {
		return Record{}, fmt.Errorf("no weather provider configured")
	}

	log.Printf("DEBUG: LogCurrent called for %.2f,%.2f via %s", s.location.Latitude, s.location.Longitude, s.provider.Name())

	reading, err := s.provider.Fetch(ctx, s.location)
	if err != nil {
		return Record{}, fmt.Errorf("fetch from %s: %w", s.provider.Name(), err)
	}

	rec := NewRecord(s.now(), reading.TemperatureC)
	if err := s.store.Append(rec); err != nil {
		return Record{}, fmt.Errorf("append record: %w", err)
	}
	return rec, nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest() (Record, error) {
	return s.store.GetLatest()
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(from, to time.Time) ([]Record, error) {
	return s.store.GetRange(from, to)
}
