package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		health     HealthChecker
		wantStatus int
		wantBody   string
	}{
		{name: "no database", health: nil, wantStatus: http.StatusOK, wantBody: "disabled"},
		{name: "database up", health: pingFunc(func(context.Context) error { return nil }), wantStatus: http.StatusOK, wantBody: "connected"},
		{name: "database down", health: pingFunc(func(context.Context) error { return errors.New("refused") }), wantStatus: http.StatusServiceUnavailable, wantBody: "unreachable"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(":0", tc.health, "release")

			resp := httptest.NewRecorder()
			s.Engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tc.wantStatus, resp.Code)
			require.Contains(t, resp.Body.String(), tc.wantBody)
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	s := New(":0", nil, "release")

	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "footprint_records_ingested_total")
}
