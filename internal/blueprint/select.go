package blueprint

import "strings"

// primaryHints are matched against section types, strongest first.
var primaryHints = []string{"product", "main", "hero"}

// SelectPrimary returns the index of the section most closely matching the
// primary content region, or -1 for an empty list. Type hints win over
// visual importance; ties keep document order.
func SelectPrimary(sections []Section) int {
	if len(sections) == 0 {
		return -1
	}
	for _, hint := range primaryHints {
		for i, s := range sections {
			if strings.Contains(strings.ToLower(s.Type), hint) {
				return i
			}
		}
	}
	best := 0
	for i, s := range sections {
		if s.MaxImportance() > sections[best].MaxImportance() {
			best = i
		}
	}
	return best
}

// Supporting returns the first limit sections other than primary, in order.
// The cap bounds generation cost; it says nothing about quality.
func Supporting(sections []Section, primary, limit int) []Section {
	out := make([]Section, 0, min(limit, len(sections)))
	for i, s := range sections {
		if len(out) >= limit {
			break
		}
		if i == primary {
			continue
		}
		out = append(out, s)
	}
	return out
}
