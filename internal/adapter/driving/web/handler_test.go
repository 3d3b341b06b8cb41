package web_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chayanin/showcase/internal/adapter/driving/web"
)

func setupStatic(t *testing.T) http.Handler {
	t.Helper()

	publicDir := t.TempDir()
	uploadDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "app.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(uploadDir, "123_ab.png"), []byte("png-bytes"), 0o644))

	mux := http.NewServeMux()
	web.RegisterRoutes(mux, web.NewHandler(publicDir, uploadDir))
	return mux
}

func TestServeApp(t *testing.T) {
	mux := setupStatic(t)

	tests := []struct {
		name     string
		path     string
		wantBody string
	}{
		{name: "root serves index", path: "/", wantBody: "<html>app</html>"},
		{name: "existing asset", path: "/app.css", wantBody: "body{}"},
		{name: "client route falls back to index", path: "/admin/projects", wantBody: "<html>app</html>"},
		{name: "missing file falls back to index", path: "/nope.js", wantBody: "<html>app</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestServeUploads(t *testing.T) {
	mux := setupStatic(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/123_ab.png", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())

	// A missing upload is a plain 404, not an index fallback.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/missing.png", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
