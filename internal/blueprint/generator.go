package blueprint

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/v0xg/themeforge/internal/ai"
	"github.com/v0xg/themeforge/internal/capture"
	"github.com/v0xg/themeforge/internal/logging"
)

// Stage is the stage name used in errors and logs.
const Stage = "blueprint"

// DefaultHTMLLimit bounds the HTML sent to the model.
const DefaultHTMLLimit = 5000

// Generator asks a model for the page blueprint and validates its shape.
type Generator struct {
	Provider    ai.Provider
	Model       string
	Temperature float64
	HTMLLimit   int
	Log         *logging.Logger
}

var validate = validator.New()

// Generate returns the ordered section list. Elements without a type or
// purpose are dropped; an empty list is valid.
func (g *Generator) Generate(ctx context.Context, html string, dom []capture.DOMSection) ([]Section, error) {
	limit := g.HTMLLimit
	if limit <= 0 {
		limit = DefaultHTMLLimit
	}

	prompt := ai.Join(
		analysisPrompt,
		"Section-like elements (tag, selector, box, text):\n"+listing(dom),
		"HTML (truncated):\n"+ai.Truncate(html, limit),
		ai.JSONOnly,
	)

	var raw []json.RawMessage
	err := ai.GenerateJSON(ctx, g.Provider, Stage, ai.Request{
		Model:       g.Model,
		Prompt:      prompt,
		Temperature: g.Temperature,
	}, &raw)
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(raw))
	for i, item := range raw {
		s, err := parseSection(item)
		if err != nil {
			g.Log.Debug("dropping blueprint entry", "index", i, "reason", err.Error())
			continue
		}
		sections = append(sections, s)
	}
	return sections, nil
}

// parseSection decodes and validates one array element.
func parseSection(data json.RawMessage) (Section, error) {
	var s Section
	if err := json.Unmarshal(data, &s); err != nil {
		return Section{}, err
	}
	s.Type = strings.TrimSpace(s.Type)
	s.Purpose = strings.TrimSpace(s.Purpose)
	if err := validate.Struct(s); err != nil {
		return Section{}, err
	}

	inputs := s.Inputs[:0]
	for _, in := range s.Inputs {
		in.Kind = InputKind(strings.ToLower(strings.TrimSpace(string(in.Kind))))
		if validate.Struct(in) != nil {
			continue
		}
		inputs = append(inputs, in)
	}
	s.Inputs = inputs

	for i := range s.Hierarchy {
		s.Hierarchy[i].Importance = clamp(s.Hierarchy[i].Importance, 1, 10)
	}
	return s, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func listing(dom []capture.DOMSection) string {
	if len(dom) == 0 {
		return "(none detected)"
	}
	var sb strings.Builder
	for _, d := range dom {
		fmt.Fprintf(&sb, "- <%s> %s at (%.0f,%.0f) %.0fx%.0f", d.Tag, d.Selector, d.Box.X, d.Box.Y, d.Box.Width, d.Box.Height)
		if d.Text != "" {
			fmt.Fprintf(&sb, " %q", ai.Truncate(d.Text, 80))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
