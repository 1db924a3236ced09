// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kosovotools/kasfetch/internal/catalog"
	"github.com/kosovotools/kasfetch/internal/fetch"
	"github.com/kosovotools/kasfetch/internal/pxweb"
)

// allTablesName selects every known table in one inspect run.
const allTablesName = "all"

// availableTables holds the list of inspectable tables and their description
// for command completion and help messages.
var availableTables = map[string]string{
	"trade":           "monthly external trade, imports in thousand euro (CIF)",
	"energy":          "monthly electricity balance",
	"partner":         "monthly imports by partner country",
	"gasoline":        "monthly gasoline balance",
	"diesel":          "monthly diesel balance",
	"lng":             "monthly LNG balance",
	"jet":             "monthly jet and kerosene balance",
	"tourism_region":  "monthly visitors and nights by region",
	"tourism_country": "monthly visitors and nights by country of origin",
}

// inspectOrder is the table order used when inspecting all tables.
var inspectOrder = []string{
	"trade",
	"energy",
	"partner",
	"gasoline",
	"diesel",
	"lng",
	"jet",
	"tourism_region",
	"tourism_country",
}

// inspectTarget couples a catalog key with the tag used to name the dump files.
type inspectTarget struct {
	key string
	tag string
}

var inspectTargets = map[string]inspectTarget{
	"trade":           {key: catalog.TradeMonthly, tag: "trade_monthly"},
	"energy":          {key: catalog.EnergyMonthly, tag: "energy_monthly"},
	"partner":         {key: catalog.ImportsByPartner, tag: "imports_by_partner"},
	"gasoline":        {key: catalog.FuelGasoline, tag: "gasoline"},
	"diesel":          {key: catalog.FuelDiesel, tag: "diesel"},
	"lng":             {key: catalog.FuelLNG, tag: "lng"},
	"jet":             {key: catalog.FuelJet, tag: "jet"},
	"tourism_region":  {key: catalog.TourismRegion, tag: "tourism_region"},
	"tourism_country": {key: catalog.TourismCountry, tag: "tourism_country"},
}

// inspectTable dumps the raw metadata, the request body, and the raw data cube
// of one table into the debug directory and prints a summary of its dimensions.
func (o *inspectOptions) inspectTable(ctx context.Context, client *pxweb.Client, tables *catalog.Catalog, name string) error {
	target := inspectTargets[name]
	parts, err := tables.Path(target.key)
	if err != nil {
		return err
	}

	fmt.Fprintf(o.writer, "\n== %s ==\n", target.tag)

	rawMeta, err := client.GetMetaRaw(ctx, parts, o.lang)
	if err != nil {
		return err
	}
	if err := o.dumpJSON(target.tag+"_meta.json", rawMeta); err != nil {
		return err
	}

	meta := new(pxweb.Meta)
	if err := json.Unmarshal(rawMeta, meta); err != nil {
		return fmt.Errorf("%w: %s", pxweb.ErrUnexpectedFormat, err.Error())
	}

	timeDim := timeDimension(meta)
	fmt.Fprintf(o.writer, "time dim: %s\n", timeDim)
	o.printDimensions(meta, timeDim)

	query, err := o.tableQuery(meta, timeDim, name)
	if err != nil {
		return err
	}

	allMonths := meta.TimeCodes(timeDim)
	pick := lastN(allMonths, o.months)
	fmt.Fprintf(o.writer, "total months in table: %d; picking %d\n", len(allMonths), len(pick))
	query = append(query, pxweb.ItemSelection(timeDim, pick...))

	body := pxweb.DataRequest{Query: query, Response: pxweb.ResponseFormat{Format: "JSON"}}
	if err := o.dumpJSON(target.tag+"_body.json", body); err != nil {
		return err
	}

	rawCube, err := client.PostDataRaw(ctx, parts, query, o.lang)
	if err != nil {
		return err
	}
	if err := o.dumpJSON(target.tag+"_raw.json", rawCube); err != nil {
		return err
	}

	cube := new(pxweb.Cube)
	if err := json.Unmarshal(rawCube, cube); err == nil {
		switch {
		case len(cube.Value) > 0:
			fmt.Fprintf(o.writer, "total raw values: %d\n", len(cube.Value))
		default:
			fmt.Fprintf(o.writer, "total records: %d\n", len(cube.Data))
		}
	}

	return nil
}

// printDimensions lists every non-time dimension with a sample of its values.
func (o *inspectOptions) printDimensions(meta *pxweb.Meta, timeDim string) {
	for _, v := range meta.Variables {
		if v.Code == timeDim {
			continue
		}

		pairs := meta.ValuePairs(v.Code)
		fmt.Fprintf(o.writer, "  %s: %d values\n", v.Code, len(pairs))
		for _, pair := range pairs[:min(5, len(pairs))] {
			fmt.Fprintf(o.writer, "    %s: %s\n", pair.Code, pair.Text)
		}
		if len(pairs) > 5 {
			fmt.Fprintln(o.writer, "    ...")
		}
	}
}

// tableQuery selects the value codes of every non-time dimension. The partner
// table is narrowed to the partners flag (or a 5 code preview) so the dump
// stays readable, and its unit dimension is pinned to thousand euro.
func (o *inspectOptions) tableQuery(meta *pxweb.Meta, timeDim, name string) ([]pxweb.QueryItem, error) {
	if name == "partner" {
		return o.partnerQuery(meta)
	}

	var query []pxweb.QueryItem
	for _, v := range meta.Variables {
		if v.Code == timeDim {
			continue
		}

		codes := make([]string, 0, len(v.Values))
		for _, pair := range meta.ValuePairs(v.Code) {
			codes = append(codes, pair.Code)
		}
		query = append(query, pxweb.ItemSelection(v.Code, codes...))
	}

	return query, nil
}

func (o *inspectOptions) partnerQuery(meta *pxweb.Meta) ([]pxweb.QueryItem, error) {
	partnerDim := meta.FindVariableCode(func(text, code string, _ pxweb.Variable) bool {
		return strings.Contains(strings.ToLower(text), "partner") || strings.Contains(strings.ToLower(code), "partnerc")
	})
	if partnerDim == "" {
		partnerDim = "PartnerC"
	}

	pairs := meta.ValuePairs(partnerDim)
	var codes []string
	switch {
	case o.partners == nil:
		for _, pair := range pairs[:min(5, len(pairs))] {
			codes = append(codes, pair.Code)
		}
		fmt.Fprintln(o.writer, "no partners supplied; using the first 5 codes for preview")
	case len(o.partners) == 1 && strings.EqualFold(o.partners[0], fetch.AllPartners):
		for _, pair := range pairs {
			codes = append(codes, pair.Code)
		}
	default:
		wanted := make(map[string]bool, len(o.partners))
		for _, partner := range o.partners {
			wanted[strings.ToUpper(strings.TrimSpace(partner))] = true
		}
		for _, pair := range pairs {
			if wanted[strings.ToUpper(pair.Code)] || wanted[strings.ToUpper(pair.Text)] {
				codes = append(codes, pair.Code)
			}
		}
		if len(codes) == 0 {
			samples := make([]string, 0, min(5, len(pairs)))
			for _, pair := range pairs[:min(5, len(pairs))] {
				samples = append(samples, pair.Code)
			}
			return nil, fmt.Errorf("%w, example codes: %s", errNoPartnerMatch, strings.Join(samples, ", "))
		}
	}
	fmt.Fprintf(o.writer, "total partner codes selected: %d\n", len(codes))

	query := []pxweb.QueryItem{pxweb.ItemSelection(partnerDim, codes...)}

	unitDim := meta.FindVariableCode(func(text, _ string, _ pxweb.Variable) bool {
		return strings.Contains(strings.ToLower(text), "unit")
	})
	if unitDim != "" {
		for _, pair := range meta.ValuePairs(unitDim) {
			if strings.Contains(pair.Text, "000") || strings.Contains(strings.ToLower(pair.Text), "thousand") {
				query = append(query, pxweb.ItemSelection(unitDim, pair.Code))
				fmt.Fprintf(o.writer, "fixed unit code: %s\n", pair.Code)
				break
			}
		}
	}

	return query, nil
}

// dumpJSON writes one payload into the debug directory, creating it on first use.
func (o *inspectOptions) dumpJSON(name string, payload any) error {
	if err := os.MkdirAll(o.out, 0o755); err != nil {
		return err
	}

	path := filepath.Join(o.out, name)
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	fmt.Fprintf(o.writer, "wrote %s\n", path)
	return nil
}

// timeDimension finds the time dimension of a table, either via the time flag
// or a year/month display text.
func timeDimension(meta *pxweb.Meta) string {
	code := meta.FindVariableCode(func(text, _ string, v pxweb.Variable) bool {
		low := strings.ToLower(text)
		return v.Time || (strings.Contains(low, "year") && strings.Contains(low, "month"))
	})
	if code == "" {
		return "Viti/muaji"
	}

	return code
}

// lastN returns the trailing n codes, or everything when n is 0 or exceeds the list.
func lastN(codes []string, n int) []string {
	if n <= 0 || n >= len(codes) {
		return codes
	}

	return codes[len(codes)-n:]
}
