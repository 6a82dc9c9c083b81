package theme

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var schemaBlock = regexp.MustCompile(`(?s)\{%-?\s*schema\s*-?%\}(.*?)\{%-?\s*endschema\s*-?%\}`)

// SplitSchema separates a section source into its template body and the raw
// JSON of its schema block. The schema is empty when the source has none.
func SplitSchema(src string) (body, schema string) {
	loc := schemaBlock.FindStringSubmatchIndex(src)
	if loc == nil {
		return src, ""
	}
	body = src[:loc[0]] + src[loc[1]:]
	schema = strings.TrimSpace(src[loc[2]:loc[3]])
	return strings.TrimRight(body, " \t\r\n") + "\n", schema
}

// StripSchema returns the template body of a section source.
func StripSchema(src string) string {
	body, _ := SplitSchema(src)
	return body
}

// WithSchema replaces any schema block in src with the JSON encoding of
// schema.
func WithSchema(src string, schema any) (string, error) {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}
	return StripSchema(src) + "\n{% schema %}\n" + string(data) + "\n{% endschema %}\n", nil
}

// TagPair is an open/close block construct of the templating language.
type TagPair struct {
	Name  string
	open  *regexp.Regexp
	close *regexp.Regexp
}

func pair(name string) TagPair {
	return TagPair{
		Name:  name,
		open:  regexp.MustCompile(`\{%-?\s*` + name + `\b`),
		close: regexp.MustCompile(`\{%-?\s*end` + name + `\s*-?%\}`),
	}
}

// TagPairs are the block constructs whose open and close counts must match.
var TagPairs = []TagPair{
	pair("if"),
	pair("for"),
	pair("unless"),
	pair("case"),
	pair("capture"),
	pair("form"),
	pair("schema"),
	pair("paginate"),
}

// Imbalance is a construct whose open and close counts differ in one file.
type Imbalance struct {
	File  string
	Tag   string
	Open  int
	Close int
}

func (i Imbalance) Error() string {
	return fmt.Sprintf("%s: unbalanced %s tags (%d vs %d)", i.File, i.Tag, i.Open, i.Close)
}

// TagBalance counts every tag pair in src. It does not check nesting.
func TagBalance(file, src string) []Imbalance {
	src = stripRaw(src)
	var out []Imbalance
	for _, p := range TagPairs {
		open := len(p.open.FindAllStringIndex(src, -1))
		closed := len(p.close.FindAllStringIndex(src, -1))
		if open != closed {
			out = append(out, Imbalance{File: file, Tag: p.Name, Open: open, Close: closed})
		}
	}
	return out
}

var (
	rawBlock     = regexp.MustCompile(`(?s)\{%-?\s*raw\s*-?%\}.*?\{%-?\s*endraw\s*-?%\}`)
	commentBlock = regexp.MustCompile(`(?s)\{%-?\s*comment\s*-?%\}.*?\{%-?\s*endcomment\s*-?%\}`)
)

func stripRaw(src string) string {
	src = rawBlock.ReplaceAllString(src, "")
	return commentBlock.ReplaceAllString(src, "")
}

// StructureBalance runs TagBalance over every layout and section source,
// in path order.
func StructureBalance(s *Structure) []Imbalance {
	var out []Imbalance
	for _, b := range []Bucket{Layout, Sections} {
		for _, name := range s.Names(b) {
			src, ok := s.Get(b, name)
			text, isText := src.(string)
			if !ok || !isText {
				continue
			}
			out = append(out, TagBalance(string(b)+"/"+name, text)...)
		}
	}
	return out
}

// Missing lists the required files a structure lacks, one message per
// requirement.
func Missing(s *Structure) []string {
	var out []string
	if !s.Has(Layout, RootLayout) {
		out = append(out, "layout/"+RootLayout+" is missing")
	}
	if !s.Has(Config, SettingsSchema) {
		out = append(out, "config/"+SettingsSchema+" is missing")
	}
	if len(s.Bucket(Locales)) == 0 {
		out = append(out, "locales/ has no locale file")
	}
	if len(s.Bucket(Sections)) == 0 {
		out = append(out, "sections/ is empty")
	}
	if len(s.Bucket(Templates)) == 0 {
		out = append(out, "templates/ is empty")
	}
	return out
}
