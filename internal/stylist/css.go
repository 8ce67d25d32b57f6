package stylist

import (
	"math"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// declaration is one property: value pair from a style attribute.
type declaration struct {
	property string
	value    string
}

// parseDeclarations reads an inline style attribute. Property names are
// lowercased and !important is dropped.
func parseDeclarations(style string) []declaration {
	p := css.NewParser(parse.NewInputString(style), true)

	var decls []declaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return decls
		case css.DeclarationGrammar:
			var b strings.Builder
			for _, v := range p.Values() {
				b.Write(v.Data)
			}
			value := strings.TrimSpace(b.String())
			value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
			decls = append(decls, declaration{
				property: strings.ToLower(string(data)),
				value:    value,
			})
		}
	}
}

var namedColors = map[string]string{
	"black":   "000000",
	"white":   "FFFFFF",
	"red":     "FF0000",
	"green":   "008000",
	"blue":    "0000FF",
	"yellow":  "FFFF00",
	"orange":  "FFA500",
	"purple":  "800080",
	"gray":    "808080",
	"grey":    "808080",
	"silver":  "C0C0C0",
	"maroon":  "800000",
	"navy":    "000080",
	"teal":    "008080",
	"olive":   "808000",
	"lime":    "00FF00",
	"aqua":    "00FFFF",
	"fuchsia": "FF00FF",
}

// parseColor converts #rgb, #rrggbb, rgb(r, g, b) and basic color names to
// RRGGBB. ok is false for anything else.
func parseColor(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))

	if hex, ok := namedColors[v]; ok {
		return hex, true
	}

	if strings.HasPrefix(v, "#") {
		h := v[1:]
		if len(h) == 3 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		}
		if len(h) != 6 {
			return "", false
		}
		if _, err := strconv.ParseUint(h, 16, 32); err != nil {
			return "", false
		}
		return strings.ToUpper(h), true
	}

	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		parts := strings.Split(v[len("rgb("):len(v)-1], ",")
		if len(parts) != 3 {
			return "", false
		}
		var out strings.Builder
		for _, part := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 0 || n > 255 {
				return "", false
			}
			out.WriteString(strings.ToUpper(strconv.FormatInt(int64(n)|0x100, 16)[1:]))
		}
		return out.String(), true
	}

	return "", false
}

// Points per unit for the absolute CSS lengths we accept.
var pointsPerUnit = map[string]float64{
	"pt": 1,
	"px": 0.75,
	"in": 72,
	"cm": 72 / 2.54,
	"mm": 72 / 25.4,
	"pc": 12,
	"em": 12, // relative to a 12pt body
}

// parseLength converts a CSS length to points.
func parseLength(v string) (float64, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	for unit, factor := range pointsPerUnit {
		if !strings.HasSuffix(v, unit) {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(v, unit)), 64)
		if err != nil || n < 0 {
			return 0, false
		}
		return n * factor, true
	}
	return 0, false
}

// halfPoints converts points to the w:sz unit.
func halfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}

// twips converts points to the w:ind unit.
func twips(pt float64) int {
	return int(math.Round(pt * 20))
}

// firstFontFamily returns the first family of a font-family list, unquoted.
func firstFontFamily(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.Trim(strings.TrimSpace(first), `'"`)
}

// isBoldWeight reports whether a font-weight value means bold.
func isBoldWeight(v string) bool {
	switch strings.ToLower(v) {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(v)
	return err == nil && n >= 600
}

var alignments = map[string]string{
	"left":    "left",
	"start":   "left",
	"right":   "right",
	"end":     "right",
	"center":  "center",
	"justify": "both",
}
