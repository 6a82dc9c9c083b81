package assemble

import (
	"fmt"
	"strings"

	"github.com/v0xg/themeforge/internal/theme"
)

// Validate runs the structural, tag-balance and template checks over s.
// It does not modify s.
func Validate(s *theme.Structure) (errs, warnings []string) {
	errs = append(errs, theme.Missing(s)...)
	for _, imb := range theme.StructureBalance(s) {
		errs = append(errs, imb.Error())
	}

	for _, name := range s.Names(theme.Templates) {
		v, _ := s.Get(theme.Templates, name)
		tpl, err := theme.ParseTemplate(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("templates/%s: invalid JSON: %v", name, err))
			continue
		}
		for _, ref := range tpl.References() {
			if !s.Has(theme.Sections, theme.SectionFile(ref)) {
				warnings = append(warnings, fmt.Sprintf("templates/%s references missing section %q", name, ref))
			}
		}
	}

	if layout, ok := s.Text(theme.Layout, theme.RootLayout); ok && !strings.Contains(layout, "content_for_layout") {
		warnings = append(warnings, "layout/"+theme.RootLayout+" does not output content_for_layout")
	}
	for _, name := range s.Names(theme.Sections) {
		if text, _ := s.Text(theme.Sections, name); strings.TrimSpace(theme.StripSchema(text)) == "" {
			warnings = append(warnings, "sections/"+name+" has an empty body")
		}
	}
	return errs, warnings
}
