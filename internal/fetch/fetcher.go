// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package fetch

import (
	"context"
	"fmt"

	"github.com/kosovotools/kasfetch/internal/catalog"
	"github.com/kosovotools/kasfetch/internal/pxweb"
	"github.com/kosovotools/kasfetch/internal/store"
)

const logName = "kasfetch:fetch"

// Dataset names written to the store; the dir store adds the .json extension.
const (
	datasetTradeMonthly   = "kas_imports_monthly"
	datasetEnergyMonthly  = "kas_energy_electricity_monthly"
	datasetTourismRegion  = "kas_tourism_region_monthly"
	datasetTourismCountry = "kas_tourism_country_monthly"
	datasetPartners       = "kas_imports_by_partner"
	datasetManifest       = "kas_sources"
)

// Client is the part of the PxWeb client the fetchers need.
type Client interface {
	Bases() []string
	GetMeta(ctx context.Context, parts []string, lang string) (*pxweb.Meta, error)
	PostData(ctx context.Context, parts []string, query []pxweb.QueryItem, lang string) (*pxweb.Cube, error)
}

// Options tunes a fetch run.
type Options struct {
	// Lang is the PxWeb language code used for metadata and queries.
	Lang string
	// Months limits every series to the trailing N periods; 0 keeps everything.
	Months int
}

// Fetcher runs the per-table fetch-and-flatten pipelines against one PxWeb
// instance and persists the resulting datasets.
type Fetcher struct {
	client  Client
	catalog *catalog.Catalog
	store   store.Store
	options Options
}

// New assembles a fetcher from its collaborators.
func New(client Client, catalog *catalog.Catalog, store store.Store, options Options) *Fetcher {
	if options.Lang == "" {
		options.Lang = "en"
	}

	return &Fetcher{
		client:  client,
		catalog: catalog,
		store:   store,
		options: options,
	}
}

// tablePath resolves the folder path of a catalog key.
func (f *Fetcher) tablePath(key string) ([]string, error) {
	return f.catalog.Path(key)
}

// cubeReader resolves cell values uniformly across the two cube shapes.
type cubeReader struct {
	cube  *pxweb.Cube
	table *pxweb.Table
}

// newCubeReader prepares a reader over cube. For classic rows responses the
// lookup falls back to dimOrder when the columns metadata is missing.
func newCubeReader(cube *pxweb.Cube, dimOrder []string) (*cubeReader, error) {
	if cube.IsJSONStat() {
		return &cubeReader{cube: cube}, nil
	}

	table, ok := cube.Table(dimOrder)
	if !ok {
		return nil, fmt.Errorf("%w: response carries neither a JSON-stat cube nor data rows", pxweb.ErrUnexpectedFormat)
	}

	return &cubeReader{table: table}, nil
}

// value returns the cell addressed by the given dimension assignments.
func (r *cubeReader) value(coords map[string]string) (*float64, error) {
	if r.cube != nil {
		return r.cube.At(coords)
	}

	return r.table.Value(coords), nil
}
