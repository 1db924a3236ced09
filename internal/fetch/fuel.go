// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package fetch

import (
	"context"
	"fmt"

	"github.com/kosovotools/kasfetch/internal/catalog"
	"github.com/kosovotools/kasfetch/internal/pxweb"
)

// fuelSpec couples a fuel name with the table that carries its balance.
type fuelSpec struct {
	pathKey string
	label   string
}

// fuelOrder fixes the processing order of the fuel balances.
var fuelOrder = []string{"gasoline", "diesel", "lng", "jet"}

var fuelSpecs = map[string]fuelSpec{
	"gasoline": {pathKey: catalog.FuelGasoline, label: "Gasoline"},
	"diesel":   {pathKey: catalog.FuelDiesel, label: "Diesel"},
	"lng":      {pathKey: catalog.FuelLNG, label: "LNG"},
	"jet":      {pathKey: catalog.FuelJet, label: "Jet / kerosene"},
}

// FuelNames lists the supported fuel balances in processing order.
func FuelNames() []string {
	names := make([]string, len(fuelOrder))
	copy(names, fuelOrder)
	return names
}

// FuelRecord is one period of a fuel balance. Beyond the period it carries
// one field per measure the table exposes, normalized to the documented
// names (production, import, export, stock, ready_for_market).
type FuelRecord map[string]any

// FuelBalance fetches the balance table of the named fuel and stores it as
// the kas_energy_<name>_monthly dataset.
func (f *Fetcher) FuelBalance(ctx context.Context, name string) (*SourceInfo, error) {
	spec, ok := fuelSpecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown fuel %q", catalog.ErrUnknownTable, name)
	}

	parts, err := f.tablePath(spec.pathKey)
	if err != nil {
		return nil, err
	}

	meta, err := f.client.GetMeta(ctx, parts, f.options.Lang)
	if err != nil {
		return nil, err
	}

	dimTime := timeDimensionCode(meta)

	// the measure dimension is whatever is not time
	measureDim := ""
	for _, variable := range meta.Variables {
		if variable.Code != dimTime {
			measureDim = variable.Code
			break
		}
	}
	if measureDim == "" {
		return nil, fmt.Errorf("%w: %s: measure dimension", ErrMissingDimension, spec.label)
	}

	measurePairs := meta.ValuePairs(measureDim)
	measureCodes := make([]string, 0, len(measurePairs))
	fieldNames := make(map[string]string, len(measurePairs))
	metrics := make([]Metric, 0, len(measurePairs))
	for _, pair := range measurePairs {
		field := normalizeFuelField(pair.Text)
		measureCodes = append(measureCodes, pair.Code)
		fieldNames[pair.Code] = field
		metrics = append(metrics, Metric{Field: field, Label: pair.Text})
	}

	pick := lastN(meta.TimeCodes(dimTime), f.options.Months)

	cube, err := f.client.PostData(ctx, parts, []pxweb.QueryItem{
		pxweb.ItemSelection(measureDim, measureCodes...),
		pxweb.ItemSelection(dimTime, pick...),
	}, f.options.Lang)
	if err != nil {
		return nil, err
	}

	reader, err := newCubeReader(cube, []string{measureDim, dimTime})
	if err != nil {
		return nil, err
	}

	records := make([]FuelRecord, 0, len(pick))
	for _, code := range pick {
		record := FuelRecord{"period": NormalizePeriod(code)}
		for _, measureCode := range measureCodes {
			value, err := reader.value(map[string]string{measureDim: measureCode, dimTime: code})
			if err != nil {
				return nil, err
			}
			record[fieldNames[measureCode]] = value
		}
		records = append(records, record)
	}

	datasetName := fmt.Sprintf("kas_energy_%s_monthly", name)
	if err := f.store.WriteDataset(ctx, datasetName, records); err != nil {
		return nil, err
	}

	return &SourceInfo{
		Table:   f.catalog.Table(spec.pathKey),
		Path:    f.catalog.PathString(spec.pathKey),
		Label:   spec.label,
		Periods: len(records),
		Metrics: metrics,
	}, nil
}
