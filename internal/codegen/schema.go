package codegen

import (
	"fmt"

	"github.com/v0xg/themeforge/internal/blueprint"
)

// schemaNameLimit is the longest section name the theme editor accepts.
const schemaNameLimit = 25

// settingTypes maps blueprint input kinds to schema setting types.
var settingTypes = map[blueprint.InputKind]string{
	blueprint.KindText:             "text",
	blueprint.KindImage:            "image_picker",
	blueprint.KindURL:              "url",
	blueprint.KindProductReference: "product",
	blueprint.KindColor:            "color",
	blueprint.KindNumber:           "range",
}

// SchemaStub derives a section schema from the declared inputs.
func SchemaStub(name string, s blueprint.Section) map[string]any {
	label := title(name)
	if len(label) > schemaNameLimit {
		label = label[:schemaNameLimit]
	}

	settings := make([]any, 0, len(s.Inputs))
	seen := map[string]bool{}
	for i, in := range s.Inputs {
		id := settingID(in, i)
		for seen[id] {
			id += "_"
		}
		seen[id] = true
		settings = append(settings, setting(id, in))
	}

	return map[string]any{
		"name":     label,
		"tag":      "section",
		"settings": settings,
		"presets":  []any{map[string]any{"name": label}},
	}
}

func settingID(in blueprint.Input, i int) string {
	id := in.ID
	if id == "" {
		id = in.Purpose
	}
	id = slug(id)
	if id == "section" {
		return fmt.Sprintf("input_%d", i+1)
	}
	out := []byte(id)
	for j := range out {
		if out[j] == '-' {
			out[j] = '_'
		}
	}
	return string(out)
}

func setting(id string, in blueprint.Input) map[string]any {
	typ, ok := settingTypes[in.Kind]
	if !ok {
		typ = "text"
	}
	label := in.Purpose
	if label == "" {
		label = title(id)
	}
	out := map[string]any{"type": typ, "id": id, "label": label}

	switch typ {
	case "range":
		out["min"] = 0
		out["max"] = 100
		out["step"] = 1
		out["default"] = rangeDefault(in.Default)
	case "text", "color", "url":
		if s, ok := in.Default.(string); ok && s != "" {
			out["default"] = s
		}
	}
	return out
}

func rangeDefault(v any) int {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case int:
		n = float64(t)
	default:
		return 0
	}
	return int(min(max(n, 0), 100))
}
