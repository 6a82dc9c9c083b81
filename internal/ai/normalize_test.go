package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n[1,2]\n```", `[1,2]`},
		{"liquid fence", "```liquid\n<div>{{ x }}</div>\n```", `<div>{{ x }}</div>`},
		{"leading only", "```json\n{\"a\":1}", `{"a":1}`},
		{"trailing only", "{\"a\":1}\n```", `{"a":1}`},
		{"one line", "```json{\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "\n\n  ```css\nbody{}\n```  \n", `body{}`},
		{"fence only", "```", ``},
		{"tab after tag", "```json\t{\"a\":1}\n```", `{"a":1}`},
		{"space before tag", "``` json\n{\"a\":1}\n```", `{"a":1}`},
		{"spaces around tag", "```  liquid  \n<p>x</p>\n```", `<p>x</p>`},
		{"word body on one line", "```Hello```", `Hello`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}

func TestDecodeJSONReportsStageAndPrefix(t *testing.T) {
	payload := "```json\n{not valid json" + strings.Repeat("x", 500)

	var v map[string]any
	err := DecodeJSON("blueprint", payload, &v)
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "blueprint", perr.Stage)
	assert.Len(t, []rune(perr.Prefix), PrefixLen)
	assert.True(t, strings.HasPrefix(perr.Prefix, "```json"))
	assert.Contains(t, err.Error(), "blueprint")
}

func TestDecodeJSONEmpty(t *testing.T) {
	var v []any
	err := DecodeJSON("tokens", "```json\n```", &v)
	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

type staticProvider struct {
	text string
	err  error
}

func (s staticProvider) Name() string { return "static" }

func (s staticProvider) Generate(context.Context, Request) (string, error) {
	return s.text, s.err
}

func TestGenerateJSONPropagatesCallError(t *testing.T) {
	callErr := &CallError{Provider: "static", Err: errors.New("quota")}
	var v map[string]any
	err := GenerateJSON(context.Background(), staticProvider{err: callErr}, "tokens", Request{}, &v)
	assert.ErrorIs(t, err, callErr)
}

func TestGenerateText(t *testing.T) {
	text, err := GenerateText(context.Background(), staticProvider{text: "```liquid\n{% if a %}x{% endif %}\n```"}, "header", Request{})
	require.NoError(t, err)
	assert.Equal(t, "{% if a %}x{% endif %}", text)

	_, err = GenerateText(context.Background(), staticProvider{text: "```\n```"}, "header", Request{})
	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "ab", Truncate("ab", 3))
	assert.Equal(t, "héé", Truncate("hééllo", 3))
}
