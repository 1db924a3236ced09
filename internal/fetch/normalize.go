// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package fetch

import (
	"regexp"
	"strings"

	"github.com/kosovotools/kasfetch/internal/pxweb"
)

var (
	digitsOnly   = regexp.MustCompile(`^[0-9]+$`)
	nonAlphaNums = regexp.MustCompile(`[^0-9a-zA-Z]+`)
)

// NormalizePeriod turns the month codes PxWeb tables use ('2025M8', '202508')
// into the canonical 'YYYY-MM' form. Codes already in that form pass through,
// anything unrecognized is returned unchanged.
func NormalizePeriod(code string) string {
	if digitsOnly.MatchString(code) && len(code) == 6 {
		return code[:4] + "-" + code[4:6]
	}

	if year, month, found := strings.Cut(code, "M"); found {
		if len(month) == 1 {
			month = "0" + month
		}
		return year + "-" + month
	}

	if len(code) == 7 && code[4] == '-' {
		return code
	}

	return code
}

// slugifyLabel lowercases a display label and collapses every non-alphanumeric
// run into a single underscore, suitable as a JSON field name.
func slugifyLabel(text string) string {
	slug := nonAlphaNums.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return "value"
	}

	return slug
}

// normalizeFuelField maps a fuel balance measure label onto one of the
// documented field names, falling back to a slug of the label.
func normalizeFuelField(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "ready") && strings.Contains(l, "market"):
		return "ready_for_market"
	case strings.Contains(l, "production"):
		return "production"
	case strings.Contains(l, "import"):
		return "import"
	case strings.Contains(l, "export"):
		return "export"
	case strings.Contains(l, "stock"):
		return "stock"
	default:
		return slugifyLabel(label)
	}
}

// normalizeTourismMetric collapses the tourism variable labels onto the two
// documented metrics.
func normalizeTourismMetric(label string) string {
	if strings.Contains(strings.ToLower(label), "night") {
		return "nights"
	}

	return "visitors"
}

// normalizeGroupLabel maps the visitor group labels onto the canonical
// total/local/external keys across language variants.
func normalizeGroupLabel(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.HasPrefix(l, "tot"):
		return "total"
	case strings.HasPrefix(l, "loc"):
		return "local"
	case strings.HasPrefix(l, "ext"):
		return "external"
	default:
		return slugifyLabel(label)
	}
}

// timeDimensionCode locates the time dimension of a table: the flagged one
// when present, otherwise any dimension mentioning both year and month, with
// the Albanian code as a last resort.
func timeDimensionCode(meta *pxweb.Meta) string {
	code := meta.FindVariableCode(func(text, _ string, v pxweb.Variable) bool {
		lower := strings.ToLower(text)
		return v.Time || (strings.Contains(lower, "year") && strings.Contains(lower, "month"))
	})
	if code == "" {
		code = "Viti/muaji"
	}

	return code
}

// lastN returns the trailing n elements of codes; n <= 0 keeps everything.
func lastN(codes []string, n int) []string {
	if n <= 0 || n >= len(codes) {
		return codes
	}

	return codes[len(codes)-n:]
}
