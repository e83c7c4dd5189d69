package api_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/garnizeh/quickgig/api"
)

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "assets"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	return dir
}

func TestSPAHandler(t *testing.T) {
	h := api.NewSPAHandler(writeSite(t))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "Asset", path: "/assets/app.js", wantStatus: http.StatusOK, wantBody: "console.log(1)"},
		{name: "Root", path: "/", wantStatus: http.StatusOK, wantBody: "<html>app</html>"},
		{name: "ClientRoute", path: "/employer/dashboard", wantStatus: http.StatusOK, wantBody: "<html>app</html>"},
		{name: "DirectoryFallsBack", path: "/assets", wantStatus: http.StatusOK, wantBody: "<html>app</html>"},
		{name: "UnknownAPI", path: "/api/unknown", wantStatus: http.StatusNotFound, wantBody: `"error":"Not found"`},
		{name: "PostToClientRoute", method: http.MethodPost, path: "/employer/dashboard", wantStatus: http.StatusNotFound, wantBody: `"error":"Not found"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req := httptest.NewRequest(method, "/", nil)
			req.URL.Path = tt.path
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status: got %d want %d", w.Code, tt.wantStatus)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Fatalf("body: got %q want it to contain %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}
