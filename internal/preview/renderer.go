// Package preview renders a theme page against mock storefront data. It is
// read-only over the theme and safe for concurrent use.
package preview

import (
	"encoding/json"
	"fmt"
	"html"
	"maps"
	"strings"

	"github.com/osteele/liquid"

	"github.com/v0xg/themeforge/internal/theme"
)

// Viewport is a preview width preset.
type Viewport string

const (
	Desktop Viewport = "desktop"
	Tablet  Viewport = "tablet"
	Mobile  Viewport = "mobile"
)

// Widths in CSS pixels.
var Widths = map[Viewport]int{Desktop: 1440, Tablet: 768, Mobile: 375}

// PageTypes are the page types with mock data.
var PageTypes = []string{"product", "home", "collection", "cart", "page"}

// templateFor maps page types to template names.
var templateFor = map[string]string{
	"product":    "product",
	"home":       "index",
	"collection": "collection",
	"cart":       "cart",
	"page":       "page",
}

// Renderer renders pages of one theme.
type Renderer struct {
	Theme     *theme.Structure
	AssetBase string

	locale   map[string]any
	settings map[string]any
}

// New prepares a renderer. The structure must not be modified while the
// renderer is in use.
func New(s *theme.Structure) *Renderer {
	r := &Renderer{Theme: s, AssetBase: "/assets", locale: map[string]any{}, settings: map[string]any{}}
	if v, ok := s.Get(theme.Locales, theme.DefaultLocale); ok {
		_ = decode(v, &r.locale)
	}
	var data struct {
		Current map[string]any `json:"current"`
	}
	if v, ok := s.Get(theme.Config, theme.SettingsData); ok && decode(v, &data) == nil && data.Current != nil {
		r.settings = data.Current
	}
	return r
}

// Render returns the HTML of pageType at viewport. Sections that fail to
// render are replaced by an inline error block; only a missing or
// unreadable template is an error.
func (r *Renderer) Render(pageType string, vp Viewport) (string, error) {
	width, ok := Widths[vp]
	if !ok {
		return "", fmt.Errorf("unknown viewport %q", vp)
	}
	name, ok := templateFor[pageType]
	if !ok {
		return "", fmt.Errorf("unknown page type %q", pageType)
	}
	v, ok := r.Theme.Get(theme.Templates, theme.TemplateFile(name))
	if !ok {
		return "", fmt.Errorf("templates/%s is missing", theme.TemplateFile(name))
	}
	tpl, err := theme.ParseTemplate(v)
	if err != nil {
		return "", fmt.Errorf("templates/%s: %w", theme.TemplateFile(name), err)
	}
	tpl.Normalize()

	base, _ := MockData(pageType)
	base["settings"] = r.settings

	p := &page{r: r, engine: liquid.NewEngine(), base: base, active: map[string]bool{}}
	r.registerFilters(p.engine)
	p.registerTags()

	var body strings.Builder
	for _, id := range tpl.Order {
		placed := tpl.Sections[id]
		if placed.Disabled {
			continue
		}
		body.WriteString(p.section(id, placed.Type, placed.Settings))
	}

	content := fmt.Sprintf(`<div class="preview-viewport" data-viewport="%s" style="max-width:%dpx;margin:0 auto">%s</div>`,
		vp, width, body.String())
	return p.layout(content), nil
}

// page is the state of one Render call. Tags registered on its engine
// close over it, so each call gets its own engine.
type page struct {
	r      *Renderer
	engine *liquid.Engine
	base   map[string]any
	active map[string]bool
}

func (p *page) layout(content string) string {
	src, ok := p.r.Theme.Text(theme.Layout, theme.RootLayout)
	if !ok {
		return content
	}
	bindings := maps.Clone(p.base)
	bindings["content_for_layout"] = content
	bindings["content_for_header"] = ""
	out, err := p.engine.ParseAndRenderString(src, bindings)
	if err != nil {
		return errorBlock("layout", err) + content
	}
	return out
}

// section renders one section file with its schema defaults overlaid by
// the placed settings.
func (p *page) section(id, typ string, placed map[string]any) string {
	src, ok := p.r.Theme.Text(theme.Sections, theme.SectionFile(typ))
	if !ok {
		return errorBlock(typ, fmt.Errorf("sections/%s is missing", theme.SectionFile(typ)))
	}
	if p.active[typ] {
		return errorBlock(typ, fmt.Errorf("section %s renders itself", typ))
	}
	p.active[typ] = true
	defer delete(p.active, typ)

	body, schema := theme.SplitSchema(src)
	settings := schemaDefaults(schema)
	maps.Copy(settings, placed)
	if id == "" {
		id = typ
	}

	bindings := maps.Clone(p.base)
	bindings["section"] = map[string]any{"id": id, "settings": settings, "blocks": []any{}}
	out, err := p.engine.ParseAndRenderString(body, bindings)
	if err != nil {
		return errorBlock(typ, err)
	}
	return out
}

func (p *page) snippet(name string) string {
	src, ok := p.r.Theme.Text(theme.Snippets, theme.SectionFile(name))
	if !ok {
		return errorBlock(name, fmt.Errorf("snippets/%s is missing", theme.SectionFile(name)))
	}
	out, err := p.engine.ParseAndRenderString(src, p.base)
	if err != nil {
		return errorBlock(name, err)
	}
	return out
}

func schemaDefaults(schema string) map[string]any {
	out := map[string]any{}
	if schema == "" {
		return out
	}
	var s struct {
		Settings []struct {
			ID      string `json:"id"`
			Default any    `json:"default"`
		} `json:"settings"`
	}
	if json.Unmarshal([]byte(schema), &s) != nil {
		return out
	}
	for _, setting := range s.Settings {
		if setting.ID != "" && setting.Default != nil {
			out[setting.ID] = setting.Default
		}
	}
	return out
}

func errorBlock(name string, err error) string {
	return fmt.Sprintf(`<div class="preview-error" data-section="%s">Section %s failed to render: %s</div>`,
		html.EscapeString(name), html.EscapeString(name), html.EscapeString(err.Error()))
}

func decode(v any, out any) error {
	text, err := theme.Encode(v)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(text), out)
}
