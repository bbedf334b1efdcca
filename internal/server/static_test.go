package server_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentcal/internal/server"
	"contentcal/internal/store"
)

func frontendDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<div id=\"calendar-app\"></div>"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log('calendar')"), 0o600))
	return dir
}

func TestStatic_ServesFrontend(t *testing.T) {
	st := store.New(store.NewMemoryPersistence(), nil)
	st.Load(t.Context(), fixtureSeed())
	handler := server.New(st, nil, server.WithAssistant(&fakeAssistant{}), server.WithStaticDir(frontendDir(t))).Handler()

	get := func(path string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		return rr
	}

	for _, path := range []string{"/", "/clientes/c1", "/relatorios"} {
		rr := get(path)
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Contains(t, rr.Body.String(), "calendar-app", path)
	}

	rr := get("/assets/app.js")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "console.log")

	rr = get("/api/unknown")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	assert.NotContains(t, rr.Body.String(), "calendar-app")

	rr = get("/api/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestStatic_MissingIndexIsAPIOnly(t *testing.T) {
	st := store.New(store.NewMemoryPersistence(), nil)
	st.Load(t.Context(), fixtureSeed())
	handler := server.New(st, nil, server.WithAssistant(&fakeAssistant{}), server.WithStaticDir(t.TempDir())).Handler()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/clientes/c1", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
}
