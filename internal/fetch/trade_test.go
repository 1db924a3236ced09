// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosovotools/kasfetch/internal/catalog"
	"github.com/kosovotools/kasfetch/internal/pxweb"
	"github.com/kosovotools/kasfetch/internal/store/fake"
)

const tradeTablePath = "ASKdata/External trade/Monthly indicators/08_qarkullimi.px"

func tradeMeta() *pxweb.Meta {
	return &pxweb.Meta{
		Title: "External trade by months",
		Variables: []pxweb.Variable{
			monthsMeta("Viti/muaji", "Year/month", "2025M1", "2025M2", "2025M3"),
			{
				Code:       "Variabla",
				Text:       "Variables",
				Values:     []string{"1", "3"},
				ValueTexts: []string{"Exports (FOB)", "Imports (CIF)"},
			},
		},
	}
}

func TestTradeMonthly(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.metas[tradeTablePath] = tradeMeta()
	client.cubes[tradeTablePath] = &pxweb.Cube{
		ID:   []string{"Variabla", "Viti/muaji"},
		Size: []int{1, 3},
		Dimension: map[string]pxweb.Dimension{
			"Variabla":   {Category: pxweb.Category{Index: map[string]int{"3": 0}}},
			"Viti/muaji": {Category: pxweb.Category{Index: map[string]int{"2025M1": 0, "2025M2": 1, "2025M3": 2}}},
		},
		Value: []any{float64(100), "..", float64(300.5)},
	}

	store := fake.NewFakeStore(t)
	fetcher := New(client, catalog.Default(), store, Options{})

	info, err := fetcher.TradeMonthly(t.Context())
	require.NoError(t, err)

	assert.Equal(t, "08_qarkullimi.px", info.Table)
	assert.Equal(t, "thousand euro (CIF)", info.Unit)
	assert.Equal(t, 3, info.Periods)

	records, ok := store.Datasets[datasetTradeMonthly].([]TradeRecord)
	require.True(t, ok)
	require.Len(t, records, 3)

	assert.Equal(t, "2025-01", records[0].Period)
	require.NotNil(t, records[0].ImportsThEUR)
	assert.InDelta(t, 100, *records[0].ImportsThEUR, 0.0001)

	assert.Equal(t, "2025-02", records[1].Period)
	assert.Nil(t, records[1].ImportsThEUR)

	assert.Equal(t, "2025-03", records[2].Period)
	require.NotNil(t, records[2].ImportsThEUR)
	assert.InDelta(t, 300.5, *records[2].ImportsThEUR, 0.0001)

	// the imports indicator was selected by its CIF label
	query := client.lastQueries[tradeTablePath]
	require.Len(t, query, 2)
	assert.Equal(t, []string{"3"}, query[0].Selection.Values)
	assert.Equal(t, []string{"2025M1", "2025M2", "2025M3"}, query[1].Selection.Values)
}

func TestTradeMonthlyBareValueArray(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.metas[tradeTablePath] = tradeMeta()
	client.cubes[tradeTablePath] = &pxweb.Cube{
		Value: []any{float64(1), float64(2)},
	}

	store := fake.NewFakeStore(t)
	fetcher := New(client, catalog.Default(), store, Options{Months: 3})

	_, err := fetcher.TradeMonthly(t.Context())
	require.NoError(t, err)

	records, ok := store.Datasets[datasetTradeMonthly].([]TradeRecord)
	require.True(t, ok)
	require.Len(t, records, 3)
	// values align positionally; the missing third cell stays null
	require.NotNil(t, records[0].ImportsThEUR)
	assert.InDelta(t, 1, *records[0].ImportsThEUR, 0.0001)
	assert.Nil(t, records[2].ImportsThEUR)
}

func TestTradeMonthlyClassicRows(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.metas[tradeTablePath] = tradeMeta()
	client.cubes[tradeTablePath] = classicCubeFor(
		"Viti/muaji", "Variabla",
		[]string{"2025M2", "2025M3"}, []string{"3"},
		map[string]any{
			"2025M2|3": "1,500",
			"2025M3|3": float64(1600),
		},
	)

	store := fake.NewFakeStore(t)
	fetcher := New(client, catalog.Default(), store, Options{Months: 2})

	info, err := fetcher.TradeMonthly(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, info.Periods)

	records, ok := store.Datasets[datasetTradeMonthly].([]TradeRecord)
	require.True(t, ok)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].ImportsThEUR)
	assert.InDelta(t, 1500, *records[0].ImportsThEUR, 0.0001)
}

func TestTradeImportsCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		pairs    []pxweb.ValuePair
		expected string
	}{
		"cif label wins": {
			pairs: []pxweb.ValuePair{
				{Code: "1", Text: "Imports of services"},
				{Code: "3", Text: "Imports (CIF)"},
			},
			expected: "3",
		},
		"any import as fallback": {
			pairs: []pxweb.ValuePair{
				{Code: "1", Text: "Exports (FOB)"},
				{Code: "2", Text: "Import"},
			},
			expected: "2",
		},
		"typical code as last resort": {
			pairs:    []pxweb.ValuePair{{Code: "1", Text: "Exports (FOB)"}},
			expected: "3",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, tradeImportsCode(test.pairs))
		})
	}
}
