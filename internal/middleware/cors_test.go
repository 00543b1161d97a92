package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		expectedStatus int
	}{
		{"GET passes through", http.MethodGet, http.StatusOK},
		{"POST passes through", http.MethodPost, http.StatusOK},
		{"PUT passes through", http.MethodPut, http.StatusOK},
		{"DELETE passes through", http.MethodDelete, http.StatusOK},
		{"OPTIONS preflight returns 204", http.MethodOptions, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS())
			handler := func(c *gin.Context) { c.Status(http.StatusOK) }
			router.GET("/test", handler)
			router.POST("/test", handler)
			router.PUT("/test", handler)
			router.DELETE("/test", handler)
			router.OPTIONS("/test", handler)

			req := httptest.NewRequest(tt.method, "/test", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			h := w.Header()
			assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", h.Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Origin, Content-Type, Authorization", h.Get("Access-Control-Allow-Headers"))
			assert.Equal(t, "86400", h.Get("Access-Control-Max-Age"))
		})
	}
}

func TestCORS_PreflightDoesNotReachHandler(t *testing.T) {
	handlerCalled := false

	router := gin.New()
	router.Use(CORS())
	router.OPTIONS("/test", func(c *gin.Context) {
		handlerCalled = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, handlerCalled, "handler should not run for preflight requests")
}
