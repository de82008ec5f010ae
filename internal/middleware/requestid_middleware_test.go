package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-grocer-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.Use(RequestID())
		r.GET("/ping", func(c *gin.Context) {
			response.Success(c, http.StatusOK, gin.H{"pong": true})
		})
		return r
	}

	t.Run("generates_id_and_echoes_it_in_envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)

		newRouter().ServeHTTP(w, req)

		headerID := w.Header().Get("X-Request-ID")
		if assert.NotEmpty(t, headerID) {
			_, err := uuid.Parse(headerID)
			assert.NoError(t, err)
		}

		var env response.APIResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, headerID, env.RequestID)
	})

	t.Run("preserves_client_supplied_id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "trace-abc-123")

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, "trace-abc-123", w.Header().Get("X-Request-ID"))

		var env response.APIResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "trace-abc-123", env.RequestID)
	})
}
