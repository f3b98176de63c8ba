package util

import (
	"errors"
	"linuxplus_backend/pkg/logger"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogInternalErrorTagsCaller(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/quiz/submit", func(c *gin.Context) {
		c.Set(ContextUserKey, &Claims{UserID: "u-9"})
		LogInternalError(c, errors.New("store down"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/quiz/submit", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", w.Code)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries: got %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["user_id"] != "u-9" || fields["route"] != "/api/quiz/submit" || fields["method"] != http.MethodPost {
		t.Fatalf("fields = %v", fields)
	}
}
