package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHealth struct {
	err error
}

func (f fakeHealth) Ping(ctx context.Context) error { return f.err }

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		health   HealthChecker
		code     int
		status   string
		database string
	}{
		{name: "connected", health: fakeHealth{}, code: http.StatusOK, status: "healthy", database: "connected"},
		{name: "unreachable", health: fakeHealth{err: errors.New("dial tcp: refused")}, code: http.StatusServiceUnavailable, status: "unhealthy"},
		{name: "memory", health: nil, code: http.StatusOK, status: "healthy", database: "memory"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := get(t, New(":0", tc.health, nil, "release"), "/health")
			require.Equal(t, tc.code, resp.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body["status"])
			if tc.database != "" {
				assert.Equal(t, tc.database, body["database"])
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "aggview_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	resp := get(t, New(":0", nil, reg, "release"), "/metrics")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "aggview_test_total 1")
}

func TestMetricsEndpointDisabled(t *testing.T) {
	resp := get(t, New(":0", nil, nil, "release"), "/metrics")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
