package weather

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used in the log file.
const DateLayout = "2006-01-02"

// Location is the fixed point the logger samples.
type Location struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// Record is one logged observation: the UTC day of the run and the
// temperature reported at that moment.
type Record struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"temperatureC"`
}

// NewRecord builds a Record for the UTC calendar day containing at.
func NewRecord(at time.Time, temperature float64) Record {
	return Record{
		Date:        at.UTC().Format(DateLayout),
		Temperature: temperature,
	}
}

// Day parses the record date back into a UTC midnight timestamp.
func (r Record) Day() (time.Time, error) {
	return time.ParseInLocation(DateLayout, r.Date, time.UTC)
}

// Fields returns the record as CSV columns.
func (r Record) Fields() []string {
	return []string{r.Date, FormatTemperature(r.Temperature)}
}

// FormatTemperature renders t in its shortest round-trip form, always
// keeping a fractional part so 30 is written as "30.0".
func FormatTemperature(t float64) string {
	s := strconv.FormatFloat(t, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ProviderReading is a single provider's normalized current-weather reading.
type ProviderReading struct {
	ProviderName string
	Timestamp    time.Time // observation time reported upstream, UTC
	TemperatureC float64
}
