package tokens

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultColor is used for any value that is not a recognizable color.
const DefaultColor = "#000000"

var (
	hexPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	rgbPattern = regexp.MustCompile(`^rgba?\((.*)\)$`)
	numPattern = regexp.MustCompile(`-?\d*\.?\d+`)
)

// SanitizeColor normalizes a color value to #RRGGBB upper case.
// 3- and 6-digit hex values are expanded and upper-cased; rgb()/rgba() values
// use their first three components rounded and clamped to 0-255. Anything
// else yields DefaultColor.
func SanitizeColor(value string) string {
	v := strings.TrimSpace(value)

	if hexPattern.MatchString(v) {
		hex := strings.ToUpper(v[1:])
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		return "#" + hex
	}

	if m := rgbPattern.FindStringSubmatch(strings.ToLower(v)); m != nil {
		nums := numPattern.FindAllString(m[1], -1)
		if len(nums) < 3 {
			return DefaultColor
		}
		var out [3]int
		for i := 0; i < 3; i++ {
			f, err := strconv.ParseFloat(nums[i], 64)
			if err != nil {
				return DefaultColor
			}
			out[i] = clampByte(f)
		}
		return fmt.Sprintf("#%02X%02X%02X", out[0], out[1], out[2])
	}

	return DefaultColor
}

func clampByte(f float64) int {
	n := int(math.Round(f))
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// DedupePalette normalizes every entry and drops repeats, keeping first
// occurrence order.
func DedupePalette(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		c := SanitizeColor(v)
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// RGB splits a sanitized color into its components.
func RGB(hex string) (r, g, b uint8) {
	c := SanitizeColor(hex)
	n, _ := strconv.ParseUint(c[1:], 16, 32)
	return uint8(n >> 16), uint8(n >> 8), uint8(n)
}
