// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kosovotools/kasfetch/internal/pxweb"
)

func TestNormalizePeriod(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input    string
		expected string
	}{
		"compact digits":       {input: "202308", expected: "2023-08"},
		"single digit month":   {input: "2025M8", expected: "2025-08"},
		"two digit month":      {input: "2025M12", expected: "2025-12"},
		"already normalized":   {input: "2025-08", expected: "2025-08"},
		"unrecognized code":    {input: "Q3-2025", expected: "Q3-2025"},
		"four digit year only": {input: "2025", expected: "2025"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, NormalizePeriod(test.input))
		})
	}
}

func TestSlugifyLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ready_for_market", slugifyLabel("Ready for market"))
	assert.Equal(t, "gross_production_gwh", slugifyLabel(" Gross production (GWh) "))
	assert.Equal(t, "value", slugifyLabel("***"))
	assert.Equal(t, "value", slugifyLabel(""))
}

func TestNormalizeFuelField(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Production":                     "production",
		"Import":                         "import",
		"Imports of gasoline":            "import",
		"Export":                         "export",
		"Stock at the end of the period": "stock",
		"Ready for market":               "ready_for_market",
		"Quantity ready for the market":  "ready_for_market",
		"Own consumption":                "own_consumption",
	}

	for label, expected := range tests {
		assert.Equal(t, expected, normalizeFuelField(label), "label %q", label)
	}
}

func TestNormalizeTourismMetric(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nights", normalizeTourismMetric("Number of nights"))
	assert.Equal(t, "nights", normalizeTourismMetric("Nights spent"))
	assert.Equal(t, "visitors", normalizeTourismMetric("Number of visitors"))
	assert.Equal(t, "visitors", normalizeTourismMetric("anything else"))
}

func TestNormalizeGroupLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "total", normalizeGroupLabel("Total"))
	assert.Equal(t, "local", normalizeGroupLabel("Local visitors"))
	assert.Equal(t, "external", normalizeGroupLabel("External visitors"))
	assert.Equal(t, "vendor", normalizeGroupLabel("Vendor"))
}

func TestTimeDimensionCode(t *testing.T) {
	t.Parallel()

	flagged := &pxweb.Meta{Variables: []pxweb.Variable{
		{Code: "Periudha", Text: "Periudha", Time: true},
	}}
	assert.Equal(t, "Periudha", timeDimensionCode(flagged))

	byText := &pxweb.Meta{Variables: []pxweb.Variable{
		{Code: "YM", Text: "Year/month"},
	}}
	assert.Equal(t, "YM", timeDimensionCode(byText))

	fallback := &pxweb.Meta{Variables: []pxweb.Variable{
		{Code: "Other", Text: "Something"},
	}}
	assert.Equal(t, "Viti/muaji", timeDimensionCode(fallback))
}

func TestLastN(t *testing.T) {
	t.Parallel()

	codes := []string{"a", "b", "c", "d"}
	assert.Equal(t, []string{"c", "d"}, lastN(codes, 2))
	assert.Equal(t, codes, lastN(codes, 0))
	assert.Equal(t, codes, lastN(codes, -5))
	assert.Equal(t, codes, lastN(codes, 10))
}
