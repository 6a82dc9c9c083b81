// Package compliance checks an assembled theme for originality, platform
// compatibility and visual parity with the captured page. It never modifies
// the theme.
package compliance

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/v0xg/themeforge/internal/imaging"
	"github.com/v0xg/themeforge/internal/logging"
	"github.com/v0xg/themeforge/internal/theme"
)

// Check names used in Report.Checks.
const (
	CheckCopyright    = "copyright"
	CheckPlaceholder  = "placeholder_content"
	CheckOriginality  = "structural_originality"
	CheckVisualParity = "visual_parity"
	CheckSchema       = "schema_compatibility"
	CheckTagBalance   = "tag_balance"
)

// Thresholds bound the visual-parity metrics.
type Thresholds struct {
	Layout     float64
	Typography float64
	Spacing    float64
	ColorDelta float64
}

// DefaultThresholds are the minimum similarities and maximum color delta a
// theme must reach.
var DefaultThresholds = Thresholds{Layout: 0.85, Typography: 0.90, Spacing: 0.85, ColorDelta: 10}

// PlaceholderRatio is the share of long quoted strings that must look like
// placeholder copy.
const PlaceholderRatio = 0.7

// Screenshots of the source page and the rendered theme, PNG encoded.
type Screenshots struct {
	Before []byte
	After  []byte
}

// Report is the outcome of Validate.
type Report struct {
	Passed             bool            `json:"passed"`
	Checks             map[string]bool `json:"checks"`
	Errors             []string        `json:"errors"`
	Warnings           []string        `json:"warnings"`
	VisualParityPassed bool            `json:"visualParityPassed"`
	Metrics            imaging.Parity  `json:"metrics"`
	Placeholder        float64         `json:"placeholderRatio"`
}

// Validator runs the compliance checks. The zero value uses
// DefaultThresholds.
type Validator struct {
	Thresholds *Thresholds
	Log        *logging.Logger
}

// Validate runs every check. shots may be nil.
func (v *Validator) Validate(s *theme.Structure, shots *Screenshots) Report {
	r := Report{Checks: map[string]bool{}, Errors: []string{}, Warnings: []string{}}

	if hits := scanSignatures(s); len(hits) > 0 {
		r.Errors = append(r.Errors, hits...)
	} else {
		r.Checks[CheckCopyright] = true
	}

	r.Placeholder = placeholderRatio(s)
	r.Checks[CheckPlaceholder] = r.Placeholder >= PlaceholderRatio
	if !r.Checks[CheckPlaceholder] {
		r.Warnings = append(r.Warnings, fmt.Sprintf("only %.0f%% of long quoted strings are placeholder copy", r.Placeholder*100))
	}

	r.Checks[CheckOriginality] = true
	for _, b := range []theme.Bucket{theme.Layout, theme.Sections, theme.Templates, theme.Config} {
		if len(s.Bucket(b)) == 0 {
			r.Checks[CheckOriginality] = false
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s/ is empty", b))
		}
	}

	missing := theme.Missing(s)
	r.Errors = append(r.Errors, missing...)
	r.Checks[CheckSchema] = len(missing) == 0

	imbalances := theme.StructureBalance(s)
	for _, imb := range imbalances {
		r.Errors = append(r.Errors, imb.Error())
	}
	r.Checks[CheckTagBalance] = len(imbalances) == 0

	r.Metrics, r.VisualParityPassed = v.parity(shots, &r)
	r.Checks[CheckVisualParity] = r.VisualParityPassed

	r.Passed = r.Checks[CheckCopyright] && r.Checks[CheckSchema] && r.Checks[CheckTagBalance] && r.VisualParityPassed
	v.Log.Info("compliance checked", "passed", r.Passed, "errors", len(r.Errors), "warnings", len(r.Warnings))
	return r
}

func (v *Validator) parity(shots *Screenshots, r *Report) (imaging.Parity, bool) {
	th := DefaultThresholds
	if v.Thresholds != nil {
		th = *v.Thresholds
	}
	if shots == nil || len(shots.Before) == 0 || len(shots.After) == 0 {
		return imaging.Identical, true
	}

	p, err := imaging.Compare(shots.Before, shots.After)
	if err != nil {
		r.Errors = append(r.Errors, "visual parity: "+err.Error())
		return p, false
	}

	ok := true
	if p.LayoutSimilarity < th.Layout {
		ok = false
		r.Errors = append(r.Errors, fmt.Sprintf("layout similarity %.2f below %.2f", p.LayoutSimilarity, th.Layout))
	}
	if p.TypographyMatch < th.Typography {
		ok = false
		r.Errors = append(r.Errors, fmt.Sprintf("typography match %.2f below %.2f", p.TypographyMatch, th.Typography))
	}
	if p.SpacingSimilarity < th.Spacing {
		ok = false
		r.Errors = append(r.Errors, fmt.Sprintf("spacing similarity %.2f below %.2f", p.SpacingSimilarity, th.Spacing))
	}
	if p.ColorDelta > th.ColorDelta {
		ok = false
		r.Errors = append(r.Errors, fmt.Sprintf("color delta %.1f above %.1f", p.ColorDelta, th.ColorDelta))
	}
	return p, ok
}

// signatures are markers of third-party owned assets: stock-photo
// watermarks and commercial theme marketplaces.
var signatures = []*regexp.Regexp{
	regexp.MustCompile(`(?i)gettyimages`),
	regexp.MustCompile(`(?i)shutterstock`),
	regexp.MustCompile(`(?i)istockphoto`),
	regexp.MustCompile(`(?i)stock\.adobe\.com`),
	regexp.MustCompile(`(?i)alamy\.com`),
	regexp.MustCompile(`(?i)depositphotos`),
	regexp.MustCompile(`(?i)dreamstime`),
	regexp.MustCompile(`(?i)themeforest`),
	regexp.MustCompile(`(?i)envato`),
	regexp.MustCompile(`(?i)cdn\.shopify\.com/s/files/`),
}

// scanSignatures looks for disallowed markers in asset, section and snippet
// sources. Hosted images from the source store count as copied assets.
func scanSignatures(s *theme.Structure) []string {
	var hits []string
	for _, b := range []theme.Bucket{theme.Assets, theme.Sections, theme.Snippets} {
		for _, name := range s.Names(b) {
			text, _ := s.Text(b, name)
			for _, sig := range signatures {
				if m := sig.FindString(text); m != "" {
					hits = append(hits, fmt.Sprintf("%s/%s contains third-party asset marker %q", b, name, m))
				}
			}
		}
	}
	return hits
}

// placeholderKeywords mark copy that merchants are expected to replace.
var placeholderKeywords = []string{
	"lorem", "ipsum", "placeholder", "sample", "example", "your ",
	"add a", "describe", "insert", "demo", "dummy", "tagline",
}

var (
	quoted    = regexp.MustCompile(`"([^"\n]{20,})"|'([^'\n]{20,})'`)
	markupish = regexp.MustCompile(`\{\{|\{%|<`)
)

// placeholderRatio is the share of quoted strings of at least 20 characters
// in section sources that contain a placeholder keyword. A theme without
// such strings scores 1.
func placeholderRatio(s *theme.Structure) float64 {
	total, hits := 0, 0
	for _, name := range s.Names(theme.Sections) {
		text, _ := s.Text(theme.Sections, name)
		for _, m := range quoted.FindAllStringSubmatch(text, -1) {
			str := m[1] + m[2]
			if markupish.MatchString(str) {
				continue
			}
			total++
			lower := strings.ToLower(str)
			for _, kw := range placeholderKeywords {
				if strings.Contains(lower, kw) {
					hits++
					break
				}
			}
		}
	}
	if total == 0 {
		return 1
	}
	return float64(hits) / float64(total)
}
