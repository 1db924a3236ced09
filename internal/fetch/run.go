// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package fetch

import (
	"context"

	"github.com/kosovotools/kasfetch/internal/logger"
)

// Run performs one batch fetch of every dataset and finishes by writing the
// kas_sources manifest. The trade and energy series are the backbone of the
// run and abort it on failure; fuel, tourism, and partner fetches are
// individually guarded so one broken table does not lose the rest. A nil
// partners slice skips the imports-by-partner table entirely.
func (f *Fetcher) Run(ctx context.Context, partners []string) error {
	log := logger.FromContext(ctx).WithName(logName)

	manifest := newManifest(f.client.Bases())

	tradeInfo, err := f.TradeMonthly(ctx)
	if err != nil {
		return err
	}
	manifest.Sources.TradeMonthly = tradeInfo

	energyInfo, err := f.EnergyMonthly(ctx)
	if err != nil {
		return err
	}
	manifest.Sources.EnergyMonthly = energyInfo

	fuelInfos := make(map[string]*SourceInfo)
	for _, name := range fuelOrder {
		info, err := f.FuelBalance(ctx, name)
		if err != nil {
			log.Error("fuel download failed", "fuel", name, "error", err)
			continue
		}
		fuelInfos[name] = info
	}
	if len(fuelInfos) > 0 {
		manifest.Sources.FuelMonthly = fuelInfos
	}

	tourismInfos := make(map[string]*SourceInfo)
	if info, err := f.TourismRegion(ctx); err != nil {
		log.Error("tourism region download failed", "error", err)
	} else {
		tourismInfos["region"] = info
	}
	if info, err := f.TourismCountry(ctx); err != nil {
		log.Error("tourism country download failed", "error", err)
	} else {
		tourismInfos["country"] = info
	}
	if len(tourismInfos) > 0 {
		manifest.Sources.TourismMonthly = tourismInfos
	}

	if partners != nil {
		if info, err := f.ImportsByPartner(ctx, partners); err != nil {
			log.Error("partner download failed", "error", err)
		} else {
			manifest.Sources.ImportsByPartner = info
		}
	}

	return f.store.WriteDataset(ctx, datasetManifest, manifest)
}
