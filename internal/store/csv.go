package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/i474232898/weather-logger/internal/weather"
)

var (
	// ErrNotFound is returned when the log holds no matching records.
	ErrNotFound = errors.New("no weather records found")
)

// DefaultPath is the log file used when none is configured.
const DefaultPath = "weather.csv"

// CSVStore is an append-only comma-separated log of weather records.
// It does no locking; concurrent writers may interleave.
type CSVStore struct {
	path string
}

// NewCSVStore creates a store backed by path. The file is created on first
// append.
func NewCSVStore(path string) *CSVStore {
	if path == "" {
		path = DefaultPath
	}
	return &CSVStore{path: path}
}

// Path returns the backing file path.
func (s *CSVStore) Path() string {
	return s.path
}

// Append writes rec as a single "date,temperature" line at the end of the file.
func (s *CSVStore) Append(rec weather.Record) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(rec.Fields()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush record: %w", err)
	}

	return f.Close()
}

// ReadAll returns every well-formed record in file order. Lines that do not
// parse are skipped. A missing file is an empty log.
func (s *CSVStore) ReadAll() ([]weather.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var records []weather.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				log.Printf("INFO: skipping malformed line %d in %s: %v", parseErr.StartLine, s.path, err)
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
		}

		rec, ok := parseRow(row)
		if !ok {
			line, _ := r.FieldPos(0)
			log.Printf("INFO: skipping unparsable line %d in %s: %q", line, s.path, row)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string) (weather.Record, bool) {
	if len(row) != 2 {
		return weather.Record{}, false
	}
	if _, err := time.Parse(weather.DateLayout, row[0]); err != nil {
		return weather.Record{}, false
	}
	temp, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return weather.Record{}, false
	}
	return weather.Record{Date: row[0], Temperature: temp}, true
}

// GetLatest returns the last record in the log.
func (s *CSVStore) GetLatest() (weather.Record, error) {
	records, err := s.ReadAll()
	if err != nil {
		return weather.Record{}, err
	}
	if len(records) == 0 {
		return weather.Record{}, ErrNotFound
	}
	return records[len(records)-1], nil
}

// GetRange returns all records whose day falls between from and to (inclusive).
// Only the calendar day of from and to is considered.
func (s *CSVStore) GetRange(from, to time.Time) ([]weather.Record, error) {
	records, err := s.ReadAll()
	if err != nil {
		return nil, err
	}

	fromDay := truncateDay(from)
	toDay := truncateDay(to)

	var result []weather.Record
	for _, rec := range records {
		day, err := rec.Day()
		if err != nil {
			continue
		}
		if !day.Before(fromDay) && !day.After(toDay) {
			result = append(result, rec)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
