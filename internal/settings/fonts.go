package settings

import "strings"

// DefaultFont is used when no family matches the lookup table.
const DefaultFont = "assistant_n4"

// fontTable maps case-insensitive family substrings to font picker
// identifiers. First match wins, so longer names come before their prefixes.
var fontTable = []struct {
	match string
	id    string
}{
	{"playfair", "playfair_display_n4"},
	{"open sans", "open_sans_n4"},
	{"merriweather", "merriweather_n4"},
	{"montserrat", "montserrat_n4"},
	{"poppins", "poppins_n4"},
	{"roboto", "roboto_n4"},
	{"inter", "inter_n4"},
	{"lato", "lato_n4"},
	{"work sans", "work_sans_n4"},
	{"dm sans", "dm_sans_n4"},
	{"lora", "lora_n4"},
	{"helvetica", "helvetica_n4"},
	{"arial", "arial_n4"},
	{"georgia", "georgia_n4"},
	{"assistant", "assistant_n4"},
}

// MatchFont returns the font picker identifier closest to family.
func MatchFont(family string) string {
	f := strings.ToLower(family)
	for _, entry := range fontTable {
		if strings.Contains(f, entry.match) {
			return entry.id
		}
	}
	return DefaultFont
}
