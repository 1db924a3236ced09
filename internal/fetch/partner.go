// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package fetch

import (
	"context"
	"strings"

	"github.com/kosovotools/kasfetch/internal/catalog"
	"github.com/kosovotools/kasfetch/internal/logger"
	"github.com/kosovotools/kasfetch/internal/pxweb"
)

// AllPartners selects every partner country listed by the table.
const AllPartners = "ALL"

// PartnerRecord is one (period, partner country) cell of the imports by
// partner table, in thousand euro.
type PartnerRecord struct {
	Period       string   `json:"period"`
	Partner      string   `json:"partner"`
	ImportsThEUR *float64 `json:"imports_th_eur"`
}

// ImportsByPartner fetches monthly goods imports split by partner country and
// stores them as the kas_imports_by_partner dataset. Partners are matched by
// value code or label; the AllPartners marker selects everything. When no
// partner matches the dataset is skipped rather than failing the run.
func (f *Fetcher) ImportsByPartner(ctx context.Context, partners []string) (*SourceInfo, error) {
	log := logger.FromContext(ctx).WithName(logName)

	parts, err := f.tablePath(catalog.ImportsByPartner)
	if err != nil {
		return nil, err
	}

	meta, err := f.client.GetMeta(ctx, parts, f.options.Lang)
	if err != nil {
		return nil, err
	}

	dimTime := timeDimensionCode(meta)
	dimPartner := meta.FindVariableCode(func(text, code string, _ pxweb.Variable) bool {
		return strings.Contains(strings.ToLower(text), "partner") ||
			strings.Contains(strings.ToLower(code), "partnerc")
	})
	if dimPartner == "" {
		dimPartner = "PartnerC"
	}
	dimUnit := meta.FindVariableCode(func(text, _ string, _ pxweb.Variable) bool {
		return strings.Contains(strings.ToLower(text), "unit")
	})

	pick := lastN(meta.TimeCodes(dimTime), f.options.Months)

	partnerPairs := meta.ValuePairs(dimPartner)
	partnerCodes, labels := selectPartners(partnerPairs, partners)
	if len(partnerCodes) == 0 {
		log.Warn("no partner codes matched; skipping partner download")
		return &SourceInfo{Skipped: true}, nil
	}

	query := []pxweb.QueryItem{
		pxweb.ItemSelection(dimPartner, partnerCodes...),
		pxweb.ItemSelection(dimTime, pick...),
	}
	if dimUnit != "" {
		if thousand := thousandEuroCode(meta.ValuePairs(dimUnit)); thousand != "" {
			query = append(query, pxweb.ItemSelection(dimUnit, thousand))
		}
	}

	cube, err := f.client.PostData(ctx, parts, query, f.options.Lang)
	if err != nil {
		return nil, err
	}

	reader, err := newCubeReader(cube, []string{dimPartner, dimTime})
	if err != nil {
		return nil, err
	}

	records := make([]PartnerRecord, 0, len(partnerCodes)*len(pick))
	for _, partnerCode := range partnerCodes {
		name := labels[partnerCode]
		for _, timeCode := range pick {
			value, err := reader.value(map[string]string{dimTime: timeCode, dimPartner: partnerCode})
			if err != nil {
				return nil, err
			}

			records = append(records, PartnerRecord{
				Period:       NormalizePeriod(timeCode),
				Partner:      name,
				ImportsThEUR: value,
			})
		}
	}

	if err := f.store.WriteDataset(ctx, datasetPartners, records); err != nil {
		return nil, err
	}

	return &SourceInfo{
		Table:    f.catalog.Table(catalog.ImportsByPartner),
		Path:     f.catalog.PathString(catalog.ImportsByPartner),
		Unit:     "thousand euro",
		Partners: len(partnerCodes),
		Periods:  len(pick),
	}, nil
}

// selectPartners resolves the wanted partner list against the table values,
// matching case-insensitively on both codes and labels.
func selectPartners(pairs []pxweb.ValuePair, partners []string) ([]string, map[string]string) {
	labels := make(map[string]string, len(pairs))

	if len(partners) == 1 && strings.EqualFold(partners[0], AllPartners) {
		codes := make([]string, 0, len(pairs))
		for _, pair := range pairs {
			codes = append(codes, pair.Code)
			labels[pair.Code] = pair.Text
		}
		return codes, labels
	}

	wanted := make(map[string]struct{}, len(partners))
	for _, partner := range partners {
		wanted[strings.ToUpper(strings.TrimSpace(partner))] = struct{}{}
	}

	var codes []string
	for _, pair := range pairs {
		_, byCode := wanted[strings.ToUpper(pair.Code)]
		_, byLabel := wanted[strings.ToUpper(pair.Text)]
		if byCode || byLabel {
			codes = append(codes, pair.Code)
			labels[pair.Code] = pair.Text
		}
	}

	return codes, labels
}

// thousandEuroCode picks the unit value expressed in thousand euro, when the
// table carries a unit dimension.
func thousandEuroCode(pairs []pxweb.ValuePair) string {
	for _, pair := range pairs {
		if strings.Contains(pair.Text, "000") || strings.Contains(strings.ToLower(pair.Text), "thousand") {
			return pair.Code
		}
	}

	return ""
}
