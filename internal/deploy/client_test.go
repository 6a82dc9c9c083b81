package deploy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/themeforge/internal/logging"
	"github.com/v0xg/themeforge/internal/theme"
)

type fakeRemote struct {
	mu        sync.Mutex
	drafts    []string
	entries   map[string]string
	order     []string
	published bool
	failKey   string
}

func (f *fakeRemote) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer secret" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}
	mux.HandleFunc("POST /themes", auth(func(w http.ResponseWriter, r *http.Request) {
		var req draftRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.mu.Lock()
		f.drafts = append(f.drafts, req.Name)
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(draftResponse{ID: "42"})
	}))
	mux.HandleFunc("PUT /themes/{id}/assets", auth(func(w http.ResponseWriter, r *http.Request) {
		var req entryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Key == f.failKey {
			http.Error(w, "too large", http.StatusUnprocessableEntity)
			return
		}
		f.mu.Lock()
		f.entries[req.Key] = req.Value
		f.order = append(f.order, req.Key)
		f.mu.Unlock()
	}))
	mux.HandleFunc("POST /themes/{id}/publish", auth(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42", r.PathValue("id"))
		f.mu.Lock()
		f.published = true
		f.mu.Unlock()
	}))
	return mux
}

func sample() *theme.Structure {
	s := theme.New()
	s.Put(theme.Layout, theme.RootLayout, "{{ content_for_layout }}")
	s.Put(theme.Sections, "main-product.liquid", "<main></main>")
	s.Put(theme.Config, theme.SettingsData, map[string]any{"current": map[string]any{}})
	return s
}

func TestPushUploadsEveryFileAndPublishes(t *testing.T) {
	remote := &fakeRemote{entries: map[string]string{}}
	srv := httptest.NewServer(remote.handler(t))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/", "secret", time.Second)
	require.NoError(t, err)

	id, err := Push(context.Background(), c, sample(), Options{Name: "Generated", Publish: true, Log: logging.Nop()})
	require.NoError(t, err)
	assert.Equal(t, "42", id)
	assert.Equal(t, []string{"Generated"}, remote.drafts)
	assert.Equal(t, []string{"layout/theme.liquid", "sections/main-product.liquid", "config/settings_data.json"}, remote.order)
	assert.JSONEq(t, `{"current":{}}`, remote.entries["config/settings_data.json"])
	assert.True(t, remote.published)
}

func TestPushStopsOnFailedUpload(t *testing.T) {
	remote := &fakeRemote{entries: map[string]string{}, failKey: "sections/main-product.liquid"}
	srv := httptest.NewServer(remote.handler(t))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret", time.Second)
	require.NoError(t, err)

	id, err := Push(context.Background(), c, sample(), Options{Name: "x", Publish: true})
	assert.Equal(t, "42", id)
	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusUnprocessableEntity, serr.Code)
	assert.Len(t, remote.order, 1)
	assert.False(t, remote.published)
}

func TestPushRefusesSharedEntryPaths(t *testing.T) {
	remote := &fakeRemote{entries: map[string]string{}}
	srv := httptest.NewServer(remote.handler(t))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret", time.Second)
	require.NoError(t, err)

	s := sample()
	s.Put(theme.Snippets, "a/card.liquid", "a")
	s.Put(theme.Snippets, "b/card.liquid", "b")

	id, err := Push(context.Background(), c, s, Options{Name: "x"})
	require.Error(t, err)
	assert.Empty(t, id)
	assert.Empty(t, remote.drafts)
	assert.Empty(t, remote.order)
}

func TestClientRejectsBadToken(t *testing.T) {
	remote := &fakeRemote{entries: map[string]string{}}
	srv := httptest.NewServer(remote.handler(t))
	defer srv.Close()

	c, err := NewClient(srv.URL, "wrong", time.Second)
	require.NoError(t, err)
	_, err = c.CreateDraft(context.Background(), "x")
	assert.ErrorContains(t, err, "status 401")
}

func TestNewClientRequiresSettings(t *testing.T) {
	_, err := NewClient("", "t", 0)
	assert.Error(t, err)
	_, err = NewClient("https://x", "", 0)
	assert.Error(t, err)
}
