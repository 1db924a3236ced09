// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package fetch

import (
	"context"
	"strings"

	"github.com/kosovotools/kasfetch/internal/catalog"
	"github.com/kosovotools/kasfetch/internal/pxweb"
)

// TradeRecord is one period of the monthly goods imports series, in thousand
// euro (CIF). A nil value marks a period the agency has not published.
type TradeRecord struct {
	Period       string   `json:"period"`
	ImportsThEUR *float64 `json:"imports_th_eur"`
}

// TradeMonthly fetches the monthly goods imports series and stores it as the
// kas_imports_monthly dataset.
func (f *Fetcher) TradeMonthly(ctx context.Context) (*SourceInfo, error) {
	parts, err := f.tablePath(catalog.TradeMonthly)
	if err != nil {
		return nil, err
	}

	meta, err := f.client.GetMeta(ctx, parts, f.options.Lang)
	if err != nil {
		return nil, err
	}

	dimTime := timeDimensionCode(meta)
	dimVar := meta.FindVariableCode(func(text, code string, _ pxweb.Variable) bool {
		lowerCode := strings.ToLower(code)
		return strings.Contains(strings.ToLower(text), "variable") ||
			lowerCode == "variabla" || lowerCode == "variables"
	})
	if dimVar == "" {
		dimVar = "Variabla"
	}

	importsCode := tradeImportsCode(meta.ValuePairs(dimVar))

	pick := lastN(meta.TimeCodes(dimTime), f.options.Months)

	cube, err := f.client.PostData(ctx, parts, []pxweb.QueryItem{
		pxweb.ItemSelection(dimVar, importsCode),
		pxweb.ItemSelection(dimTime, pick...),
	}, f.options.Lang)
	if err != nil {
		return nil, err
	}

	records := make([]TradeRecord, 0, len(pick))
	switch {
	case cube.IsJSONStat():
		for _, code := range pick {
			value, err := cube.At(pxweb.Coordinates{dimTime: code, dimVar: importsCode})
			if err != nil {
				return nil, err
			}
			records = append(records, TradeRecord{Period: NormalizePeriod(code), ImportsThEUR: value})
		}
	case len(cube.Value) > 0:
		// bare value array: one cell per requested period, in query order
		for i, code := range pick {
			var value *float64
			if i < len(cube.Value) {
				value = pxweb.CoerceNumber(cube.Value[i])
			}
			records = append(records, TradeRecord{Period: NormalizePeriod(code), ImportsThEUR: value})
		}
	default:
		reader, err := newCubeReader(cube, []string{dimTime, dimVar})
		if err != nil {
			return nil, err
		}
		for _, code := range pick {
			value, err := reader.value(map[string]string{dimTime: code, dimVar: importsCode})
			if err != nil {
				return nil, err
			}
			records = append(records, TradeRecord{Period: NormalizePeriod(code), ImportsThEUR: value})
		}
	}

	if err := f.store.WriteDataset(ctx, datasetTradeMonthly, records); err != nil {
		return nil, err
	}

	return &SourceInfo{
		Table:   f.catalog.Table(catalog.TradeMonthly),
		Path:    f.catalog.PathString(catalog.TradeMonthly),
		Unit:    "thousand euro (CIF)",
		Periods: len(records),
	}, nil
}

// tradeImportsCode picks the value code of the imports indicator: the
// 'Imports (CIF)' label when present, any import otherwise, and the typical
// code as a last resort.
func tradeImportsCode(pairs []pxweb.ValuePair) string {
	for _, pair := range pairs {
		lower := strings.ToLower(pair.Text)
		if strings.Contains(lower, "imports") && strings.Contains(lower, "cif") {
			return pair.Code
		}
	}

	for _, pair := range pairs {
		if strings.Contains(strings.ToLower(pair.Text), "import") {
			return pair.Code
		}
	}

	return "3"
}
