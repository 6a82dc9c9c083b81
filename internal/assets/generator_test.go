package assets

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/themeforge/internal/blueprint"
	"github.com/v0xg/themeforge/internal/imaging"
	"github.com/v0xg/themeforge/internal/logging"
	"github.com/v0xg/themeforge/internal/storage"
	"github.com/v0xg/themeforge/internal/tokens"
)

type fakeImager struct {
	mu      sync.Mutex
	png     []byte
	fail    string
	prompts []string
}

func (f *fakeImager) GenerateImage(_ context.Context, prompt, _ string) (Image, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.fail != "" && strings.Contains(prompt, f.fail) {
		return Image{}, errors.New("quota")
	}
	return Image{Data: f.png, MIME: "image/png"}, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.Black)
	data, err := imaging.Encode(img)
	require.NoError(t, err)
	return data
}

func TestGenerateUploadsAndRecords(t *testing.T) {
	im := &fakeImager{png: pngBytes(t, 32, 18), fail: "Newsletter art"}
	store := storage.NewLocal(t.TempDir(), "https://cdn.example")
	g := &Generator{Imager: im, Store: store, Log: logging.Nop()}

	sections := []blueprint.Section{
		{Type: "hero", Purpose: "Welcome", Inputs: []blueprint.Input{
			{ID: "image", Kind: blueprint.KindImage, Purpose: "Hero background"},
			{ID: "heading", Kind: blueprint.KindText, Purpose: "Headline"},
		}},
		{Type: "newsletter", Purpose: "Signup", Inputs: []blueprint.Input{
			{ID: "art", Kind: blueprint.KindImage, Purpose: "Newsletter art"},
		}},
	}
	tok := tokens.Finalize(tokens.Partial{"colors": map[string]any{"palette": []any{"#123456"}}})

	m := g.Generate(context.Background(), "sess1", sections, tok)
	require.Equal(t, 1, m.Len(), "failed asset is skipped")

	a := m.Assets[0]
	assert.Equal(t, TypeHero, a.Type)
	assert.Equal(t, "16:9", a.AspectRatio)
	assert.Equal(t, 32, a.Width)
	assert.Equal(t, 18, a.Height)
	assert.Nil(t, a.Data)
	assert.True(t, strings.HasPrefix(a.URL, "https://cdn.example/sessions/sess1/"))
	assert.Contains(t, a.Prompt, "#123456")
	assert.Len(t, m.ForSection("hero"), 1)

	entries, err := store.List(context.Background(), "sessions/sess1/")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPlanRespectsLimit(t *testing.T) {
	var inputs []blueprint.Input
	for i := 0; i < 10; i++ {
		inputs = append(inputs, blueprint.Input{Kind: blueprint.KindImage, Purpose: "x"})
	}
	reqs := plan([]blueprint.Section{{Type: "gallery", Purpose: "p", Inputs: inputs}}, tokens.Finalize(tokens.Partial{}), 3)
	assert.Len(t, reqs, 3)
	assert.Equal(t, TypeLifestyle, reqs[0].Type)
}

func TestResolveRefs(t *testing.T) {
	src := `<img src="asset://abc"><img src="asset://zzz"><img src="asset://abc">`
	out, missing := ResolveRefs(src, map[string]string{"abc": "https://cdn/x.png"})
	assert.Equal(t, `<img src="https://cdn/x.png"><img src="asset://zzz"><img src="https://cdn/x.png">`, out)
	assert.Equal(t, []string{"zzz"}, missing)
}

func TestNilManifest(t *testing.T) {
	var m *Manifest
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.URLs())
	assert.Nil(t, m.ForSection("hero"))
}
