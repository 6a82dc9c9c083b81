package tokens

import (
	"fmt"
	"strconv"
	"strings"
)

// Partial is the loosely typed token object returned by one extraction call.
// Top-level keys are colors, typography, spacing, borderRadius, shadows and
// buttons.
type Partial map[string]any

const paletteKey = "palette"

// Merge combines a vision partial and a stylesheet partial. Every key present
// in vision wins; stylesheet keys only fill what vision left absent. Nested
// objects are merged key by key. Palette lists are concatenated and
// deduplicated after normalization.
func Merge(vision, stylesheet Partial) Partial {
	return Partial(mergeMaps(vision, stylesheet))
}

func mergeMaps(primary, secondary map[string]any) map[string]any {
	out := make(map[string]any, len(primary)+len(secondary))
	for k, v := range secondary {
		out[k] = v
	}
	for k, pv := range primary {
		sv, exists := secondary[k]
		if !exists {
			out[k] = pv
			continue
		}
		if k == paletteKey {
			out[k] = concatPalettes(pv, sv)
			continue
		}
		pm, pok := pv.(map[string]any)
		sm, sok := sv.(map[string]any)
		if pok && sok {
			out[k] = mergeMaps(pm, sm)
			continue
		}
		out[k] = pv
	}
	return out
}

func concatPalettes(a, b any) []any {
	all := append(toStrings(a), toStrings(b)...)
	deduped := DedupePalette(all)
	out := make([]any, len(deduped))
	for i, c := range deduped {
		out[i] = c
	}
	return out
}

// Finalize converts a merged partial into DesignTokens, sanitizing every
// color. Missing groups become empty, never nil.
func Finalize(p Partial) *DesignTokens {
	t := &DesignTokens{
		Colors:  Colors{Roles: map[string]string{}},
		Spacing: toStringMap(p["spacing"]),
		Radii:   toStringMap(p["borderRadius"]),
		Shadows: toStringMap(p["shadows"]),
	}

	if colors, ok := p["colors"].(map[string]any); ok {
		for role, v := range colors {
			if role == paletteKey {
				continue
			}
			if s, ok := v.(string); ok {
				t.Colors.Roles[role] = SanitizeColor(s)
			} else {
				t.Colors.Roles[role] = DefaultColor
			}
		}
		t.Colors.Palette = DedupePalette(toStrings(colors[paletteKey]))
	}
	if t.Colors.Palette == nil {
		t.Colors.Palette = []string{}
	}
	typo, _ := p["typography"].(map[string]any)
	t.Typography = Typography{
		Families:     toStrings(typo["fontFamilies"]),
		HeadingSizes: toStringMap(typo["headingSizes"]),
		BodySizes:    toStringMap(typo["bodySizes"]),
		Weights:      toInts(typo["weights"]),
	}

	if list, ok := p["buttons"].([]any); ok {
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			b := ButtonStyle{
				Name:       str(m["name"]),
				Background: SanitizeColor(str(m["background"])),
				Text:       SanitizeColor(str(m["text"])),
				Radius:     str(m["radius"]),
				Padding:    str(m["padding"]),
			}
			if b.Name == "" {
				b.Name = fmt.Sprintf("button-%d", i+1)
			}
			if border := str(m["border"]); border != "" {
				b.Border = SanitizeColor(border)
			}
			t.Buttons = append(t.Buttons, b)
		}
	}
	if t.Buttons == nil {
		t.Buttons = []ButtonStyle{}
	}
	return t
}

func str(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func toStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := str(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return []string{}
		}
		return []string{t}
	}
	return []string{}
}

func toStringMap(v any) map[string]string {
	out := map[string]string{}
	m, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for k, item := range m {
		if s := str(item); s != "" {
			out[k] = s
		}
	}
	return out
}

func toInts(v any) []int {
	out := []int{}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		switch n := item.(type) {
		case float64:
			out = append(out, int(n))
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				out = append(out, i)
			}
		}
	}
	return out
}
