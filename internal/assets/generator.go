package assets

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/v0xg/themeforge/internal/blueprint"
	"github.com/v0xg/themeforge/internal/imaging"
	"github.com/v0xg/themeforge/internal/logging"
	"github.com/v0xg/themeforge/internal/storage"
	"github.com/v0xg/themeforge/internal/tokens"
)

// DefaultLimit caps the number of images generated per session.
const DefaultLimit = 6

// Generator produces imagery for blueprint image inputs and uploads it.
type Generator struct {
	Imager Imager
	Store  storage.ObjectStore
	Limit  int
	Log    *logging.Logger
}

// Generate walks the blueprint and creates one asset per image input, up to
// Limit. Individual failures are logged and skipped: assets are optional.
func (g *Generator) Generate(ctx context.Context, sessionID string, sections []blueprint.Section, tok *tokens.DesignTokens) *Manifest {
	m := NewManifest(sessionID)
	limit := g.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	for _, req := range plan(sections, tok, limit) {
		asset, err := g.generateOne(ctx, sessionID, req)
		if err != nil {
			g.Log.Warn("asset generation failed", "section", req.Section, "type", string(req.Type), "error", err.Error())
			continue
		}
		m.Assets = append(m.Assets, asset)
	}
	return m
}

func (g *Generator) generateOne(ctx context.Context, sessionID string, a GeneratedAsset) (GeneratedAsset, error) {
	img, err := g.Imager.GenerateImage(ctx, a.Prompt, a.AspectRatio)
	if err != nil {
		return GeneratedAsset{}, err
	}
	decoded, err := imaging.Decode(img.Data)
	if err != nil {
		return GeneratedAsset{}, err
	}

	a.Data = img.Data
	a.MIME = img.MIME
	a.Width = decoded.Bounds().Dx()
	a.Height = decoded.Bounds().Dy()

	objectPath := path.Join("sessions", sessionID, a.ID+extension(img.MIME))
	url, err := g.Store.Upload(ctx, img.Data, objectPath)
	if err != nil {
		return GeneratedAsset{}, fmt.Errorf("upload: %w", err)
	}
	a.URL = url
	a.Data = nil
	return a, nil
}

// plan derives the asset requests without calling anything.
func plan(sections []blueprint.Section, tok *tokens.DesignTokens, limit int) []GeneratedAsset {
	var out []GeneratedAsset
	palette := strings.Join(tok.Colors.Palette, ", ")

	for _, s := range sections {
		for _, in := range s.Inputs {
			if in.Kind != blueprint.KindImage {
				continue
			}
			if len(out) >= limit {
				return out
			}
			typ, ratio := classify(s.Type)
			prompt := fmt.Sprintf("Original %s photograph for an online store section. Section purpose: %s. Image purpose: %s. Colour palette: %s. No text, no logos, no watermarks, no recognizable brands.",
				typ, s.Purpose, in.Purpose, palette)
			out = append(out, GeneratedAsset{
				ID:          strings.ReplaceAll(uuid.NewString(), "-", ""),
				Type:        typ,
				Prompt:      prompt,
				AspectRatio: ratio,
				Section:     s.Type,
			})
		}
	}
	return out
}

func classify(sectionType string) (Type, string) {
	t := strings.ToLower(sectionType)
	switch {
	case strings.Contains(t, "hero"), strings.Contains(t, "slideshow"):
		return TypeHero, "16:9"
	case strings.Contains(t, "banner"), strings.Contains(t, "promo"):
		return TypeBanner, "16:9"
	case strings.Contains(t, "product"), strings.Contains(t, "collection"):
		return TypeProduct, "1:1"
	case strings.Contains(t, "background"):
		return TypeBackground, "16:9"
	}
	return TypeLifestyle, "4:3"
}

func extension(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	}
	return ".png"
}
