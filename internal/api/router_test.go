package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, dir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewServer(dir).RegisterRoutes(r)
	return r
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Fatalf("unexpected health body: %s", w.Body.String())
	}
}

func TestServesRenderedArtifacts(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "data.json"), []byte(`[]`), 0o644); err != nil {
		t.Fatalf("write data.json: %v", err)
	}

	r := newTestRouter(t, dir)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/data.json", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("data.json status = %d, want 200", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("unexpected body: %q", w.Body.String())
	}
}
