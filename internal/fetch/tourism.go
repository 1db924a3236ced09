// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package fetch

import (
	"context"
	"strings"

	"github.com/kosovotools/kasfetch/internal/catalog"
	"github.com/kosovotools/kasfetch/internal/pxweb"
)

// TourismRegionRecord is one (period, region, visitor group) cell of the
// tourism occupancy table.
type TourismRegionRecord struct {
	Period            string   `json:"period"`
	Region            string   `json:"region"`
	VisitorGroup      string   `json:"visitor_group"`
	VisitorGroupLabel string   `json:"visitor_group_label"`
	Visitors          *float64 `json:"visitors"`
	Nights            *float64 `json:"nights"`
}

// TourismCountryRecord is one (period, country of origin) cell of the
// tourism occupancy table.
type TourismCountryRecord struct {
	Period   string   `json:"period"`
	Country  string   `json:"country"`
	Visitors *float64 `json:"visitors"`
	Nights   *float64 `json:"nights"`
}

// TourismRegion fetches visitors and nights by region and visitor group and
// stores them as the kas_tourism_region_monthly dataset.
func (f *Fetcher) TourismRegion(ctx context.Context) (*SourceInfo, error) {
	parts, err := f.tablePath(catalog.TourismRegion)
	if err != nil {
		return nil, err
	}

	meta, err := f.client.GetMeta(ctx, parts, f.options.Lang)
	if err != nil {
		return nil, err
	}

	dimTime := timeDimensionCode(meta)
	dimRegion := meta.FindVariableCode(func(text, _ string, _ pxweb.Variable) bool {
		lower := strings.ToLower(text)
		return strings.Contains(lower, "region") || strings.Contains(lower, "rajon")
	})
	if dimRegion == "" {
		dimRegion = "Rajonet"
	}
	dimOrigin := meta.FindVariableCode(func(text, _ string, _ pxweb.Variable) bool {
		lower := strings.ToLower(text)
		return strings.Contains(lower, "local") || strings.Contains(lower, "jasht")
	})
	if dimOrigin == "" {
		dimOrigin = "Vendor/jashtem"
	}
	dimVar := tourismVariableCode(meta)

	regionPairs := meta.ValuePairs(dimRegion)
	originPairs := meta.ValuePairs(dimOrigin)
	metricCodes := tourismMetricCodes(meta.ValuePairs(dimVar))

	pick := lastN(meta.TimeCodes(dimTime), f.options.Months)

	cube, err := f.client.PostData(ctx, parts, []pxweb.QueryItem{
		pxweb.ItemSelection(dimRegion, pairCodes(regionPairs)...),
		pxweb.ItemSelection(dimOrigin, pairCodes(originPairs)...),
		pxweb.ItemSelection(dimVar, metricValues(metricCodes)...),
		pxweb.ItemSelection(dimTime, pick...),
	}, f.options.Lang)
	if err != nil {
		return nil, err
	}

	reader, err := newCubeReader(cube, []string{dimTime, dimRegion, dimOrigin, dimVar})
	if err != nil {
		return nil, err
	}

	records := make([]TourismRegionRecord, 0, len(pick)*len(regionPairs)*len(originPairs))
	for _, timeCode := range pick {
		period := NormalizePeriod(timeCode)
		for _, region := range regionPairs {
			for _, origin := range originPairs {
				record := TourismRegionRecord{
					Period:            period,
					Region:            region.Text,
					VisitorGroup:      normalizeGroupLabel(origin.Text),
					VisitorGroupLabel: origin.Text,
				}

				for metric, metricCode := range metricCodes {
					value, err := reader.value(map[string]string{
						dimTime:   timeCode,
						dimRegion: region.Code,
						dimOrigin: origin.Code,
						dimVar:    metricCode,
					})
					if err != nil {
						return nil, err
					}

					switch metric {
					case "visitors":
						record.Visitors = value
					case "nights":
						record.Nights = value
					}
				}

				records = append(records, record)
			}
		}
	}

	if err := f.store.WriteDataset(ctx, datasetTourismRegion, records); err != nil {
		return nil, err
	}

	visitorGroups := make([]string, 0, len(originPairs))
	for _, origin := range originPairs {
		visitorGroups = append(visitorGroups, normalizeGroupLabel(origin.Text))
	}

	return &SourceInfo{
		Table:         f.catalog.Table(catalog.TourismRegion),
		Path:          f.catalog.PathString(catalog.TourismRegion),
		Periods:       len(pick),
		Regions:       len(regionPairs),
		VisitorGroups: visitorGroups,
		Metrics:       metricList(metricCodes),
	}, nil
}

// TourismCountry fetches visitors and nights by country of origin and stores
// them as the kas_tourism_country_monthly dataset.
func (f *Fetcher) TourismCountry(ctx context.Context) (*SourceInfo, error) {
	parts, err := f.tablePath(catalog.TourismCountry)
	if err != nil {
		return nil, err
	}

	meta, err := f.client.GetMeta(ctx, parts, f.options.Lang)
	if err != nil {
		return nil, err
	}

	dimTime := timeDimensionCode(meta)
	dimVar := tourismVariableCode(meta)
	dimCountry := meta.FindVariableCode(func(text, _ string, _ pxweb.Variable) bool {
		lower := strings.ToLower(text)
		return strings.Contains(lower, "country") || strings.Contains(lower, "shtetet")
	})
	if dimCountry == "" {
		dimCountry = "Shtetet"
	}

	metricCodes := tourismMetricCodes(meta.ValuePairs(dimVar))
	countryPairs := meta.ValuePairs(dimCountry)

	pick := lastN(meta.TimeCodes(dimTime), f.options.Months)

	cube, err := f.client.PostData(ctx, parts, []pxweb.QueryItem{
		pxweb.ItemSelection(dimVar, metricValues(metricCodes)...),
		pxweb.ItemSelection(dimCountry, pairCodes(countryPairs)...),
		pxweb.ItemSelection(dimTime, pick...),
	}, f.options.Lang)
	if err != nil {
		return nil, err
	}

	reader, err := newCubeReader(cube, []string{dimTime, dimVar, dimCountry})
	if err != nil {
		return nil, err
	}

	records := make([]TourismCountryRecord, 0, len(pick)*len(countryPairs))
	for _, timeCode := range pick {
		period := NormalizePeriod(timeCode)
		for _, country := range countryPairs {
			record := TourismCountryRecord{
				Period:  period,
				Country: country.Text,
			}

			for metric, metricCode := range metricCodes {
				value, err := reader.value(map[string]string{
					dimTime:    timeCode,
					dimVar:     metricCode,
					dimCountry: country.Code,
				})
				if err != nil {
					return nil, err
				}

				switch metric {
				case "visitors":
					record.Visitors = value
				case "nights":
					record.Nights = value
				}
			}

			records = append(records, record)
		}
	}

	if err := f.store.WriteDataset(ctx, datasetTourismCountry, records); err != nil {
		return nil, err
	}

	return &SourceInfo{
		Table:     f.catalog.Table(catalog.TourismCountry),
		Path:      f.catalog.PathString(catalog.TourismCountry),
		Periods:   len(pick),
		Countries: len(countryPairs),
		Metrics:   metricList(metricCodes),
	}, nil
}

// tourismVariableCode locates the metric dimension of the tourism tables.
func tourismVariableCode(meta *pxweb.Meta) string {
	code := meta.FindVariableCode(func(text, _ string, _ pxweb.Variable) bool {
		return strings.Contains(strings.ToLower(text), "variable")
	})
	if code == "" {
		code = "Variabla"
	}

	return code
}

// tourismMetricCodes maps the normalized metric names onto their value codes.
// Labels collapsing onto the same metric keep the last code, matching how the
// agency lists the variables.
func tourismMetricCodes(pairs []pxweb.ValuePair) map[string]string {
	codes := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		codes[normalizeTourismMetric(pair.Text)] = pair.Code
	}

	return codes
}

func pairCodes(pairs []pxweb.ValuePair) []string {
	codes := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		codes = append(codes, pair.Code)
	}

	return codes
}

func metricValues(codes map[string]string) []string {
	values := make([]string, 0, len(codes))
	for _, code := range codes {
		values = append(values, code)
	}

	return values
}

func metricList(codes map[string]string) []Metric {
	metrics := make([]Metric, 0, len(codes))
	for _, field := range []string{"visitors", "nights"} {
		if _, ok := codes[field]; ok {
			metrics = append(metrics, Metric{Field: field})
		}
	}

	return metrics
}
