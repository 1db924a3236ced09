// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/kosovotools/kasfetch/internal/catalog"
	"github.com/kosovotools/kasfetch/internal/pxweb"
)

// EnergyRecord is one period of the monthly electricity series, in GWh.
type EnergyRecord struct {
	Period        string   `json:"period"`
	ImportGWh     *float64 `json:"import_gwh"`
	ProductionGWh *float64 `json:"production_gwh"`
}

// EnergyMonthly fetches the monthly electricity import and gross production
// series and stores it as the kas_energy_electricity_monthly dataset.
func (f *Fetcher) EnergyMonthly(ctx context.Context) (*SourceInfo, error) {
	parts, err := f.tablePath(catalog.EnergyMonthly)
	if err != nil {
		return nil, err
	}

	meta, err := f.client.GetMeta(ctx, parts, f.options.Lang)
	if err != nil {
		return nil, err
	}

	dimTime := timeDimensionCode(meta)
	dimIndicator := meta.FindVariableCode(func(text, code string, _ pxweb.Variable) bool {
		lower := strings.ToLower(text)
		return strings.Contains(lower, "mwh") || strings.Contains(lower, "indicator") ||
			strings.ToLower(code) == "mwh"
	})
	if dimIndicator == "" {
		dimIndicator = "MWH"
	}

	importCode, productionCode := energyIndicatorCodes(meta.ValuePairs(dimIndicator))
	if importCode == "" || productionCode == "" {
		return nil, fmt.Errorf("%w: 'Import' and 'Gross Production from Power Plants' in indicator list", ErrMissingIndicator)
	}

	pick := lastN(meta.TimeCodes(dimTime), f.options.Months)

	cube, err := f.client.PostData(ctx, parts, []pxweb.QueryItem{
		pxweb.ItemSelection(dimIndicator, importCode, productionCode),
		pxweb.ItemSelection(dimTime, pick...),
	}, f.options.Lang)
	if err != nil {
		return nil, err
	}

	reader, err := newCubeReader(cube, []string{dimIndicator, dimTime})
	if err != nil {
		return nil, err
	}

	records := make([]EnergyRecord, 0, len(pick))
	for _, code := range pick {
		importValue, err := reader.value(map[string]string{dimTime: code, dimIndicator: importCode})
		if err != nil {
			return nil, err
		}
		productionValue, err := reader.value(map[string]string{dimTime: code, dimIndicator: productionCode})
		if err != nil {
			return nil, err
		}

		records = append(records, EnergyRecord{
			Period:        NormalizePeriod(code),
			ImportGWh:     importValue,
			ProductionGWh: productionValue,
		})
	}

	if err := f.store.WriteDataset(ctx, datasetEnergyMonthly, records); err != nil {
		return nil, err
	}

	return &SourceInfo{
		Table:   f.catalog.Table(catalog.EnergyMonthly),
		Path:    f.catalog.PathString(catalog.EnergyMonthly),
		Unit:    "GWh",
		Periods: len(records),
	}, nil
}

// energyIndicatorCodes picks the import and gross production value codes by
// their English labels, with a looser match when the exact production label
// is not found.
func energyIndicatorCodes(pairs []pxweb.ValuePair) (importCode, productionCode string) {
	for _, pair := range pairs {
		lower := strings.ToLower(pair.Text)
		if importCode == "" && strings.Contains(lower, "import") {
			importCode = pair.Code
		}
		if productionCode == "" &&
			(strings.Contains(lower, "gross production from power plants") || strings.HasPrefix(lower, "gross production")) {
			productionCode = pair.Code
		}
	}

	if productionCode == "" {
		for _, pair := range pairs {
			lower := strings.ToLower(pair.Text)
			if strings.Contains(lower, "gross") && strings.Contains(lower, "production") {
				productionCode = pair.Code
				break
			}
		}
	}

	return importCode, productionCode
}
