package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-bridge/internal/handler"
	"github.com/noah-isme/attendance-bridge/pkg/config"
	"github.com/noah-isme/attendance-bridge/pkg/response"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	d := handler.NewDispatcher(zap.NewNop(), nil)
	d.Register("echo:get", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var req struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, err
		}
		return req.Value, nil
	})

	cfg := &config.Config{Env: config.EnvDevelopment, Bind: "127.0.0.1", Port: 0}
	return New(cfg, d, zap.NewNop()).Handler
}

func TestInvokeRoute(t *testing.T) {
	srv := newTestServer(t)

	body := strings.NewReader(`{"op":"echo:get","payload":{"value":"hi"}}`)
	req := httptest.NewRequest(http.MethodPost, "/invoke", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "hi", env.Data)
}

func TestInvokeUnknownOpStillHTTPOK(t *testing.T) {
	srv := newTestServer(t)

	body := strings.NewReader(`{"op":"no:suchOp","payload":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/invoke", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestInvokeMissingOp(t *testing.T) {
	srv := newTestServer(t)

	body := strings.NewReader(`{"payload":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/invoke", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
}

func TestHealthRoute(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
