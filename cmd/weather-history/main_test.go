package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-logger/internal/store"
	"github.com/i474232898/weather-logger/internal/weather"
	"github.com/i474232898/weather-logger/internal/weather/providers"
)

func TestHealthAndRequestID(t *testing.T) {
	csvStore := store.NewCSVStore(filepath.Join(t.TempDir(), "weather.csv"))
	svc := weather.NewService(csvStore, providers.NewOpenMeteoProvider(http.DefaultClient, "", 0), weather.Location{})
	app := newApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "weather-history", body["service"])
}

func TestErrorHandlerRendersJSON(t *testing.T) {
	csvStore := store.NewCSVStore(filepath.Join(t.TempDir(), "weather.csv"))
	svc := weather.NewService(csvStore, nil, weather.Location{})
	app := newApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/latest", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Error)
	assert.NotEmpty(t, body.Message)
}
