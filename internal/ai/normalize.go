package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

const fence = "```"

// StripFences removes Markdown code-fence markers around a model payload.
//
// Grammar, applied after trimming surrounding whitespace (ws is spaces and
// tabs):
//
//	payload := [ "```" [ws] [lang] [ws] [ "\n" ] ] body [ "```" ]
//	lang    := [A-Za-z0-9_+.-]+
//
// A lang token directly followed by body text on the same line ("```Hello```")
// is kept as body. Either fence may be missing; text without fences is
// returned trimmed. Every stage runs model output through this function
// before storing or parsing it.
func StripFences(s string) string {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, fence) {
		t = strings.TrimLeft(t[len(fence):], " \t")
		n := 0
		for n < len(t) && isLangByte(t[n]) {
			n++
		}
		rest := strings.TrimLeft(t[n:], " \t")
		switch {
		case rest == "", len(rest) < len(t)-n:
			t = rest
		case rest[0] == '\n' || rest[0] == '\r':
			t = rest
		case rest[0] == '{' || rest[0] == '[':
			// ```json{"a":1}``` on one line
			t = rest
		}
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, fence)
	return strings.TrimSpace(t)
}

func isLangByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '+' || b == '.' || b == '-':
		return true
	}
	return false
}

// DecodeJSON strips fences from payload and unmarshals it into v. A failure
// is reported as a *ParseError for stage.
func DecodeJSON(stage, payload string, v any) error {
	body := StripFences(payload)
	if body == "" {
		return newParseError(stage, payload, errors.New("empty payload"))
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return newParseError(stage, payload, err)
	}
	return nil
}

// GenerateJSON performs one call and decodes the fenced-or-bare JSON answer.
func GenerateJSON(ctx context.Context, p Provider, stage string, req Request, v any) error {
	text, err := p.Generate(ctx, req)
	if err != nil {
		return err
	}
	return DecodeJSON(stage, text, v)
}

// GenerateText performs one call and returns the fence-stripped answer. An
// answer that is empty after stripping is a malformed output.
func GenerateText(ctx context.Context, p Provider, stage string, req Request) (string, error) {
	text, err := p.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	body := StripFences(text)
	if body == "" {
		return "", newParseError(stage, text, errors.New("empty payload"))
	}
	return body, nil
}
