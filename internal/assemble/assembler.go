// Package assemble merges generated and derived theme files, fills in
// boilerplate and validates the result.
package assemble

import (
	"fmt"

	"github.com/v0xg/themeforge/internal/ai"
	"github.com/v0xg/themeforge/internal/assets"
	"github.com/v0xg/themeforge/internal/logging"
	"github.com/v0xg/themeforge/internal/theme"
)

// Input is the output of the generation stages.
type Input struct {
	Generated *theme.Structure
	Settings  *theme.Structure
	Manifest  *assets.Manifest
}

// Result is always returned; Valid tells the caller whether to proceed.
type Result struct {
	Structure *theme.Structure `json:"-"`
	Valid     bool             `json:"valid"`
	Errors    []string         `json:"errors"`
	Warnings  []string         `json:"warnings"`
}

// Assembler builds the final theme structure.
type Assembler struct {
	Log *logging.Logger
}

// Assemble never fails: problems are reported in the result.
func (a *Assembler) Assemble(in Input) Result {
	res := Result{Errors: []string{}, Warnings: []string{}}

	s := theme.New()
	if in.Generated != nil {
		s = in.Generated.Clone()
	}
	if in.Settings != nil {
		for _, b := range theme.Buckets {
			for _, name := range in.Settings.Names(b) {
				if s.Has(b, name) {
					res.Warnings = append(res.Warnings, fmt.Sprintf("%s/%s generated twice, keeping the generated copy", b, name))
					continue
				}
				v, _ := in.Settings.Get(b, name)
				s.Put(b, name, v)
			}
		}
	}

	res.Warnings = append(res.Warnings, normalize(s, in.Manifest.URLs())...)
	fabricate(s)

	errs, warns := Validate(s)
	res.Errors = append(res.Errors, errs...)
	res.Warnings = append(res.Warnings, warns...)
	res.Structure = s
	res.Valid = len(res.Errors) == 0

	a.Log.Info("theme assembled", "files", s.Count(), "valid", res.Valid, "errors", len(res.Errors), "warnings", len(res.Warnings))
	return res
}

// normalize strips fences from every text file and resolves asset
// references. It returns one warning per unresolved reference.
func normalize(s *theme.Structure, urls map[string]string) []string {
	var warnings []string
	for _, b := range theme.Buckets {
		for _, name := range s.Names(b) {
			v, _ := s.Get(b, name)
			text, ok := v.(string)
			if !ok {
				continue
			}
			text, missing := assets.ResolveRefs(ai.StripFences(text), urls)
			for _, id := range missing {
				warnings = append(warnings, fmt.Sprintf("%s/%s references unknown asset %s", b, name, id))
			}
			s.Put(b, name, text)
		}
	}
	return warnings
}

// fabricate adds the boilerplate files a theme needs and no stage wrote.
// The root layout is never fabricated.
func fabricate(s *theme.Structure) {
	if !s.Has(theme.Config, theme.SettingsSchema) {
		s.Put(theme.Config, theme.SettingsSchema, baseSettingsSchema())
	}
	if !s.Has(theme.Config, theme.SettingsData) {
		s.Put(theme.Config, theme.SettingsData, baseSettingsData())
	}
	if len(s.Bucket(theme.Locales)) == 0 {
		s.Put(theme.Locales, theme.DefaultLocale, baseLocale())
	}
}
