// Package codegen turns design tokens and a page blueprint into theme source
// files. Three roles run concurrently: product logic, theme architecture and
// secondary pages. The stage is all-or-nothing.
package codegen

import (
	"strconv"
	"strings"

	"github.com/v0xg/themeforge/internal/blueprint"
)

// Fixed section names owned by the generators.
const (
	PrimarySection = "main-product"
	HeaderSection  = "header"
	FooterSection  = "footer"
)

// DefaultMaxSupporting caps supporting sections per product page.
const DefaultMaxSupporting = 5

// fallbackPrimary is used when the blueprint is empty.
var fallbackPrimary = blueprint.Section{
	Type:    PrimarySection,
	Purpose: "Product detail with media gallery, title, price, variant picker and add to cart form",
}

// Planned is a section with the file name it will be written to.
type Planned struct {
	Name    string
	Section blueprint.Section
}

// Plan fixes every generated section name before generation starts, so the
// page generators can reference sections the product generator has not
// written yet.
type Plan struct {
	Primary    blueprint.Section
	Supporting []Planned
}

// NewPlan picks the primary section and names the bounded supporting prefix.
func NewPlan(sections []blueprint.Section, limit int) Plan {
	if limit < 0 {
		limit = 0
	}
	idx := blueprint.SelectPrimary(sections)
	if idx < 0 {
		return Plan{Primary: fallbackPrimary, Supporting: []Planned{}}
	}

	taken := map[string]bool{PrimarySection: true, HeaderSection: true, FooterSection: true}
	p := Plan{Primary: sections[idx], Supporting: []Planned{}}
	for _, s := range blueprint.Supporting(sections, idx, limit) {
		name := unique(slug(s.Type), taken)
		taken[name] = true
		p.Supporting = append(p.Supporting, Planned{Name: name, Section: s})
	}
	return p
}

// SectionNames lists every section the generators will write.
func (p Plan) SectionNames() []string {
	names := []string{HeaderSection, PrimarySection}
	for _, s := range p.Supporting {
		names = append(names, s.Name)
	}
	return append(names, FooterSection)
}

func unique(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	for i := 2; ; i++ {
		candidate := name + "-" + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// slug turns a blueprint type into a kebab-case file name.
func slug(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		case sb.Len() > 0 && !dash:
			sb.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(sb.String(), "-")
	if out == "" {
		return "section"
	}
	return out
}

// title turns "featured-collection" into "Featured collection".
func title(name string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(name))
	if len(words) == 0 {
		return "Section"
	}
	out := strings.Join(words, " ")
	return strings.ToUpper(out[:1]) + out[1:]
}
