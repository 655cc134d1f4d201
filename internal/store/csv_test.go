package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-logger/internal/weather"
)

func newTestStore(t *testing.T) *CSVStore {
	t.Helper()
	return NewCSVStore(filepath.Join(t.TempDir(), "weather.csv"))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAppendWritesDateCommaTemperature(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append(weather.Record{Date: "2026-10-14", Temperature: 31.2}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "2026-10-14,31.2\n", string(data))
}

func TestAppendTwiceYieldsTwoLines(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append(weather.Record{Date: "2026-10-14", Temperature: 30}))
	require.NoError(t, s.Append(weather.Record{Date: "2026-10-14", Temperature: 30}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "2026-10-14,30.0\n2026-10-14,30.0\n", string(data))
}

func TestAppendKeepsExistingContent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("2026-10-01,25.5\n"), 0644))

	require.NoError(t, s.Append(weather.Record{Date: "2026-10-02", Temperature: 26}))

	records, err := s.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []weather.Record{
		{Date: "2026-10-01", Temperature: 25.5},
		{Date: "2026-10-02", Temperature: 26},
	}, records)
}

func TestReadAllMissingFile(t *testing.T) {
	s := newTestStore(t)

	records, err := s.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = s.GetLatest()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadAllSkipsMalformedLines(t *testing.T) {
	s := newTestStore(t)
	content := "2026-10-01,25.5\n" +
		"garbage\n" +
		"2026-13-01,20\n" +
		"2026-10-02,not-a-number\n" +
		"2026-10-03,27.25,extra\n" +
		"2026-10-04,-1.0\n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0644))

	records, err := s.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []weather.Record{
		{Date: "2026-10-01", Temperature: 25.5},
		{Date: "2026-10-04", Temperature: -1},
	}, records)
}

func TestGetLatest(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(weather.Record{Date: "2026-10-13", Temperature: 29}))
	require.NoError(t, s.Append(weather.Record{Date: "2026-10-14", Temperature: 31.2}))

	rec, err := s.GetLatest()
	require.NoError(t, err)
	assert.Equal(t, weather.Record{Date: "2026-10-14", Temperature: 31.2}, rec)
}

func TestGetRangeIsInclusive(t *testing.T) {
	s := newTestStore(t)
	for i, d := range []string{"2026-10-10", "2026-10-11", "2026-10-12", "2026-10-13"} {
		require.NoError(t, s.Append(weather.Record{Date: d, Temperature: float64(20 + i)}))
	}

	// Time of day on the bounds is ignored.
	got, err := s.GetRange(time.Date(2026, 10, 11, 18, 0, 0, 0, time.UTC), day(2026, 10, 12))
	require.NoError(t, err)
	assert.Equal(t, []weather.Record{
		{Date: "2026-10-11", Temperature: 21},
		{Date: "2026-10-12", Temperature: 22},
	}, got)

	_, err = s.GetRange(day(2026, 11, 1), day(2026, 11, 30))
	assert.ErrorIs(t, err, ErrNotFound)
}
