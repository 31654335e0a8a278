package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataloglens/backend/config"
	"github.com/cataloglens/backend/internal/domain"
	"github.com/cataloglens/backend/internal/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubCache struct{}

func (stubCache) Get(ctx context.Context, key string) (interface{}, error) {
	return nil, domain.ErrCacheMiss
}
func (stubCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (stubCache) Delete(ctx context.Context, key string) error    { return nil }
func (stubCache) Exists(ctx context.Context, key string) (bool, error) { return false, nil }

type stubModel struct {
	response string
	err      error
}

func (m stubModel) Chat(ctx context.Context, systemPrompt, userInput string) (string, error) {
	return m.response, m.err
}

func testRouter(model stubModel) *gin.Engine {
	schema := &domain.Schema{
		Properties: map[string]domain.PropertyDef{
			"category": {
				Type:        domain.TypeEnum,
				Description: "The main category of the product",
				Values:      []string{"clothing", "electronics"},
			},
		},
	}
	svc := usecase.NewParseService(stubCache{}, model, nil, schema, usecase.ParseServiceConfig{})
	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	return SetupRouter(cfg, NewHandler(svc))
}

func TestHealthCheck(t *testing.T) {
	router := testRouter(stubModel{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "cataloglens-backend", body["service"])
}

func TestParseProduct(t *testing.T) {
	t.Run("returns the canonicalized document", func(t *testing.T) {
		router := testRouter(stubModel{response: `{"category": "Electroniks"}`})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse",
			strings.NewReader(`{"description": "Blue wireless earbuds"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "electronics", body["category"])
	})

	t.Run("rejects a missing description", func(t *testing.T) {
		router := testRouter(stubModel{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "description is required")
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		router := testRouter(stubModel{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader("not json"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps extraction failures to bad gateway", func(t *testing.T) {
		router := testRouter(stubModel{err: domain.ErrExtractionFailed})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse",
			strings.NewReader(`{"description": "A red hat"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("maps non-JSON model output to bad gateway", func(t *testing.T) {
		router := testRouter(stubModel{response: "Sure, here you go"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse",
			strings.NewReader(`{"description": "A red hat"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("unconfigured service reports unavailable", func(t *testing.T) {
		cfg := &config.Config{}
		router := SetupRouter(cfg, NewHandler(nil))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse",
			strings.NewReader(`{"description": "A red hat"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestGetSchema(t *testing.T) {
	router := testRouter(stubModel{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schema", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var schema domain.Schema
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &schema))
	assert.Equal(t, []string{"clothing", "electronics"}, schema.Properties["category"].Values)
}
