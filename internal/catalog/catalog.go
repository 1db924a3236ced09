// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

// Package catalog maps dataset keys to the PxWeb folder paths of the tables
// that back them. The built-in catalog targets the ASKdata instance; single
// entries can be overridden from a YAML file when the agency moves a table.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Dataset keys of the built-in catalog.
const (
	TradeMonthly     = "trade_monthly"
	EnergyMonthly    = "energy_monthly"
	ImportsByPartner = "imports_by_partner"
	FuelGasoline     = "fuel_gasoline"
	FuelDiesel       = "fuel_diesel"
	FuelLNG          = "fuel_lng"
	FuelJet          = "fuel_jet"
	TourismRegion    = "tourism_region"
	TourismCountry   = "tourism_country"
)

var (
	// ErrParsing reports failures that occur while decoding catalog files.
	ErrParsing = errors.New("error parsing")

	// ErrUnknownTable reports a lookup for a key outside the catalog.
	ErrUnknownTable = errors.New("unknown table")
)

// Catalog holds the folder path segments of every known table.
type Catalog struct {
	tables map[string][]string
}

// Default returns the catalog of the ASKdata tables this tool consumes.
func Default() *Catalog {
	return &Catalog{
		tables: map[string][]string{
			TradeMonthly:     {"ASKdata", "External trade", "Monthly indicators", "08_qarkullimi.px"},
			EnergyMonthly:    {"ASKdata", "Energy", "Monthly indicators", "tab01.px"},
			ImportsByPartner: {"ASKdata", "External trade", "Monthly indicators", "07_imp_country.px"},
			FuelGasoline:     {"ASKdata", "Energy", "Monthly indicators", "tab03.px"},
			FuelDiesel:       {"ASKdata", "Energy", "Monthly indicators", "tab04.px"},
			FuelLNG:          {"ASKdata", "Energy", "Monthly indicators", "tab05.px"},
			FuelJet:          {"ASKdata", "Energy", "Monthly indicators", "tab06.px"},
			TourismRegion:    {"ASKdata", "Tourism and hotels", "Treguesit mujorë", "tab01.px"},
			TourismCountry:   {"ASKdata", "Tourism and hotels", "Treguesit mujorë", "tab02.px"},
		},
	}
}

// Path returns a copy of the folder path segments for the given dataset key.
func (c *Catalog) Path(key string) ([]string, error) {
	parts, ok := c.tables[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, key)
	}

	copied := make([]string, len(parts))
	copy(copied, parts)
	return copied, nil
}

// Table returns the table file name (the last path segment) for the given key.
func (c *Catalog) Table(key string) string {
	parts, ok := c.tables[key]
	if !ok || len(parts) == 0 {
		return ""
	}

	return parts[len(parts)-1]
}

// PathString returns the full folder path joined with slashes, as reported in
// the manifest.
func (c *Catalog) PathString(key string) string {
	parts, ok := c.tables[key]
	if !ok {
		return ""
	}

	joined := ""
	for i, part := range parts {
		if i > 0 {
			joined += "/"
		}
		joined += part
	}
	return joined
}

// LoadOverrides merges the catalog entries found in the YAML file at path.
// The document is a map of dataset key to folder path segments; keys outside
// the built-in catalog are rejected so typos do not silently add tables.
func (c *Catalog) LoadOverrides(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)

	overrides := make(map[string][]string)
	if err := decoder.Decode(&overrides); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}

	for key, parts := range overrides {
		if _, ok := c.tables[key]; !ok {
			return fmt.Errorf("%w %q: %w: %s", ErrParsing, path, ErrUnknownTable, key)
		}
		if len(parts) == 0 {
			return fmt.Errorf("%w %q: empty path for table %s", ErrParsing, path, key)
		}

		c.tables[key] = parts
	}

	return nil
}
