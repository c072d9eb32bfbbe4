package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSPAHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	h := newSPAHandler(dir)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	t.Run("serves real files", func(t *testing.T) {
		rec := get("/app.js")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "console.log(1)", rec.Body.String())
	})

	t.Run("falls back to index.html", func(t *testing.T) {
		for _, path := range []string{"/", "/some/client/route"} {
			rec := get(path)
			assert.Equal(t, http.StatusOK, rec.Code, path)
			assert.Equal(t, "<html>app</html>", rec.Body.String(), path)
		}
	})

	t.Run("does not escape the static dir", func(t *testing.T) {
		outside := filepath.Join(filepath.Dir(dir), "secret.txt")
		require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))

		rec := get("/../secret.txt")
		assert.NotEqual(t, "secret", rec.Body.String())
	})

	t.Run("missing index.html is a 404", func(t *testing.T) {
		empty := newSPAHandler(t.TempDir())
		rec := httptest.NewRecorder()
		empty.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("no static dir configured", func(t *testing.T) {
		none := newSPAHandler("")
		rec := httptest.NewRecorder()
		none.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
