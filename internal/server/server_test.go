package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/themeforge/internal/compliance"
	"github.com/v0xg/themeforge/internal/export"
	"github.com/v0xg/themeforge/internal/logging"
	"github.com/v0xg/themeforge/internal/theme"
)

func sample() *theme.Structure {
	s := theme.New()
	s.Put(theme.Layout, theme.RootLayout, "<html><body>{{ content_for_layout }}</body></html>")
	s.Put(theme.Sections, "main-product.liquid", "<h1>{{ product.title }}</h1>")
	s.Put(theme.Templates, "product.json", `{"sections":{"main":{"type":"main-product"}},"order":["main"]}`)
	s.Put(theme.Config, theme.SettingsSchema, []any{})
	s.Put(theme.Config, theme.SettingsData, map[string]any{"current": map[string]any{}})
	s.Put(theme.Locales, theme.DefaultLocale, map[string]any{})
	return s
}

func get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := New(sample(), "demo", logging.Nop()).Router()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := get(t, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, 6.0, body["files"])
}

func TestPreview(t *testing.T) {
	w := get(t, "/preview/product?viewport=mobile")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<h1>Linen Overshirt</h1>")
	assert.Contains(t, w.Body.String(), "max-width:375px")

	w = get(t, "/preview/cart")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompliance(t *testing.T) {
	w := get(t, "/compliance")
	assert.Equal(t, http.StatusOK, w.Code)

	var r compliance.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.True(t, r.Passed, r.Errors)
}

func TestExport(t *testing.T) {
	w := get(t, "/export")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "demo.zip")

	s, err := export.ReadBytes(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 6, s.Count())
}
