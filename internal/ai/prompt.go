package ai

import "strings"

// Platform describes the target theme format once so every stage prompt
// agrees on it.
const Platform = `The target is an Online Store 2.0 storefront theme written in Liquid.
A theme has these top-level directories: layout/, sections/, templates/, snippets/, assets/, config/, locales/.
layout/theme.liquid is the root document and must output {{ content_for_header }} and {{ content_for_layout }}.
Sections are .liquid files that end with one {% schema %} ... {% endschema %} JSON block.
Templates are JSON files: {"sections": {"<id>": {"type": "<section-file-name>", "settings": {}}}, "order": ["<id>"]}.`

// JSONOnly is appended to every prompt that expects structured output.
const JSONOnly = `Respond ONLY with the JSON, no explanation or markdown.`

// LiquidOnly is appended to every prompt that expects a Liquid or CSS source file.
const LiquidOnly = `Respond ONLY with the file contents, no explanation or markdown.`

// Truncate bounds s to at most n runes. Used to keep large page payloads
// inside the model context.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Join builds a prompt out of non-empty blocks separated by blank lines.
func Join(blocks ...string) string {
	var kept []string
	for _, b := range blocks {
		if strings.TrimSpace(b) != "" {
			kept = append(kept, strings.TrimSpace(b))
		}
	}
	return strings.Join(kept, "\n\n")
}
