package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"yieldvault/internal/testutil"
)

func TestHealthHandler(t *testing.T) {
	t.Run("reports healthy database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		r := gin.New()
		r.GET("/api/health", NewHealthHandler(db, false).Health)

		rec := doRequest(r, "GET", "/api/health", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["status"] != "ok" || result["ai"] != "fallback" {
			t.Errorf("unexpected health %v", result)
		}
	})

	t.Run("reports closed database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.TeardownTestDB(t, db)
		r := gin.New()
		r.GET("/api/health", NewHealthHandler(db, true).Health)

		rec := doRequest(r, "GET", "/api/health", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		if got := parseJSON(t, rec)["database"]; got != "unreachable" {
			t.Errorf("expected unreachable, got %v", got)
		}
	})
}
