package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

func TestHealthHandler_Healthcheck(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
		wantBody   string
	}{
		{"no database probe", nil, http.StatusOK, `{"status":"ok"}`},
		{"database reachable", fakePinger{}, http.StatusOK, `{"status":"ok"}`},
		{"database down", fakePinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable,
			`{"status":"unavailable","reason":"database unreachable"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.db)
			router := gin.New()
			router.GET("/healthcheck", handler.Healthcheck)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/healthcheck", http.NoBody)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Equal(t, "no-cache, no-store, max-age=0, must-revalidate", w.Header().Get("Cache-Control"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
