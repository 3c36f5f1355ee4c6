package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/pronounce/component"
	apperrors "github.com/kbukum/pronounce/errors"
	"github.com/kbukum/pronounce/logger"
	"github.com/kbukum/pronounce/server/middleware"
)

func testConfig() Config {
	cfg := Config{Host: "127.0.0.1", MaxBodySize: "1KB"}
	cfg.ApplyDefaults()
	cfg.Port = 0
	return cfg
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Port != DefaultPort {
		t.Errorf("port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.MaxBodySize != "10MB" {
		t.Errorf("max body = %s", cfg.MaxBodySize)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Addr() != ":8000" {
		t.Errorf("addr = %s", cfg.Addr())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Port = 70000 }},
		{"read timeout", func(c *Config) { c.ReadTimeout = -1 }},
		{"rate limit", func(c *Config) { c.RateLimit.RequestsPerMinute = -5 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestHandlerAppliesMiddleware(t *testing.T) {
	s := New(testConfig(), logger.Nop())
	s.Engine().POST("/echo", func(c *gin.Context) {
		if _, err := c.GetRawData(); err != nil {
			RespondWithError(c, err)
			return
		}
		RespondOK(c, gin.H{"request_id": logger.RequestIDFrom(c.Request.Context())})
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/echo", strings.NewReader("short"))
	req.Header.Set("Origin", "https://app.example.com")
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	id := rr.Header().Get(middleware.HeaderRequestID)
	if id == "" {
		t.Fatal("missing request id header")
	}
	var body map[string]string
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if body["request_id"] != id {
		t.Errorf("context id %q != header id %q", body["request_id"], id)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Error("expected CORS header")
	}

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest("POST", "/echo", strings.NewReader(strings.Repeat("x", 4096))))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody apperrors.ErrorCode
	}{
		{"app error", apperrors.NotFound("word", "mauve"), http.StatusNotFound, apperrors.ErrCodeNotFound},
		{"wrapped", fmt.Errorf("decode: %w", apperrors.Decode("mp3", nil)), http.StatusUnprocessableEntity, apperrors.ErrCodeDecode},
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, apperrors.ErrCodeTooLarge},
		{"foreign", fmt.Errorf("boom"), http.StatusInternalServerError, apperrors.ErrCodeInternal},
	}
	gin.SetMode(gin.TestMode)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rr)
			RespondWithError(c, tc.err)

			if rr.Code != tc.wantCode {
				t.Errorf("code = %d, want %d", rr.Code, tc.wantCode)
			}
			var body apperrors.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Error.Code != tc.wantBody {
				t.Errorf("error code = %s, want %s", body.Error.Code, tc.wantBody)
			}
		})
	}
}

func TestStartStop(t *testing.T) {
	s := New(testConfig(), logger.Nop())
	s.RegisterDefaultEndpoints("pronounce", nil)

	if h := s.Health(context.Background()); h.Status != component.StatusUnhealthy {
		t.Errorf("health before start = %s", h.Status)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	if h := s.Health(context.Background()); h.Status != component.StatusHealthy {
		t.Errorf("health after start = %s", h.Status)
	}

	resp, err := http.Get("http://" + s.Addr() + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(s.Describe().Details, "routes") {
		t.Errorf("describe = %q", s.Describe().Details)
	}
}
