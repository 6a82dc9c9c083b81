package preview

import (
	"fmt"
	"html"
	"strings"

	"github.com/osteele/liquid"
	"github.com/osteele/liquid/render"
)

// registerFilters installs storefront filters with preview semantics.
func (r *Renderer) registerFilters(e *liquid.Engine) {
	e.RegisterFilter("money", money)
	e.RegisterFilter("money_with_currency", func(v any) string { return money(v) + " USD" })
	e.RegisterFilter("asset_url", func(name string) string { return r.assetURL(name) })
	e.RegisterFilter("img_url", imageURL)
	e.RegisterFilter("image_url", imageURL)
	e.RegisterFilter("stylesheet_tag", func(url string) string {
		return fmt.Sprintf(`<link rel="stylesheet" href="%s">`, html.EscapeString(url))
	})
	e.RegisterFilter("script_tag", func(url string) string {
		return fmt.Sprintf(`<script src="%s" defer></script>`, html.EscapeString(url))
	})
	e.RegisterFilter("handle", handleize)
	e.RegisterFilter("handleize", handleize)
	e.RegisterFilter("t", r.translate)
}

// registerTags installs storefront tags. Sections and snippets render from
// the structure; the rest keep their body and drop side effects.
func (p *page) registerTags() {
	e := p.engine
	e.RegisterTag("section", func(c render.Context) (string, error) {
		return p.section("", unquote(c.TagArgs()), nil), nil
	})
	e.RegisterTag("render", func(c render.Context) (string, error) {
		return p.snippet(firstArg(c.TagArgs())), nil
	})
	e.RegisterBlock("form", func(c render.Context) (string, error) {
		inner, err := c.InnerString()
		if err != nil {
			return "", err
		}
		kind := firstArg(c.TagArgs())
		return fmt.Sprintf(`<form method="post" action="#" data-form="%s">%s</form>`, html.EscapeString(kind), inner), nil
	})
	e.RegisterBlock("paginate", func(c render.Context) (string, error) {
		return c.InnerString()
	})
	e.RegisterBlock("style", func(c render.Context) (string, error) {
		inner, err := c.InnerString()
		if err != nil {
			return "", err
		}
		return "<style>" + inner + "</style>", nil
	})
	e.RegisterBlock("javascript", func(c render.Context) (string, error) {
		return "", nil
	})
	e.RegisterBlock("schema", func(c render.Context) (string, error) {
		return "", nil
	})
}

func money(v any) string {
	var cents float64
	switch t := v.(type) {
	case int:
		cents = float64(t)
	case int64:
		cents = float64(t)
	case float64:
		cents = t
	default:
		return ""
	}
	return fmt.Sprintf("$%.2f", cents/100)
}

// imageURL accepts an image path or an object with src.
func imageURL(v any, _ any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if src, ok := t["src"].(string); ok {
			return src
		}
	}
	return "/preview/images/placeholder.png"
}

func (r *Renderer) assetURL(name string) string {
	return strings.TrimSuffix(r.AssetBase, "/") + "/" + name
}

// translate resolves a dotted key against the default locale, falling back
// to the key itself.
func (r *Renderer) translate(key string) string {
	var cur any = r.locale
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return key
		}
		cur = m[part]
	}
	if s, ok := cur.(string); ok {
		return s
	}
	return key
}

func handleize(s string) string {
	var sb strings.Builder
	dash := false
	for _, c := range strings.ToLower(s) {
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' {
			sb.WriteRune(c)
			dash = false
		} else if sb.Len() > 0 && !dash {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `'"`)
}

// firstArg returns the first comma-separated tag argument, unquoted.
func firstArg(s string) string {
	head, _, _ := strings.Cut(s, ",")
	return unquote(head)
}
