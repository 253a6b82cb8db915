package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestReady(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("all up", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(map[string]Pinger{"postgres": ok, "redis": ok}, nopLogger{}).
			Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("redis down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(map[string]Pinger{"postgres": ok, "redis": down}, nopLogger{}).
			Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, statusUnavailable, resp.Status)
		assert.Equal(t, statusOK, resp.Dependencies["postgres"])
		assert.Equal(t, statusUnavailable, resp.Dependencies["redis"])
	})
}

func TestLive(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(nil, nopLogger{}).Live(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
