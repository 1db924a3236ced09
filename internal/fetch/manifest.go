// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package fetch

import (
	"time"

	"github.com/google/uuid"
)

var timeSource = time.Now

// Metric documents one flattened field of a dataset and the table label it
// was derived from.
type Metric struct {
	Field string `json:"field"`
	Label string `json:"label,omitempty"`
}

// SourceInfo describes what one fetcher pulled: the table it hit and the
// extent of the resulting dataset.
type SourceInfo struct {
	Table         string   `json:"table,omitempty"`
	Path          string   `json:"path,omitempty"`
	Unit          string   `json:"unit,omitempty"`
	Label         string   `json:"label,omitempty"`
	Periods       int      `json:"periods,omitempty"`
	Partners      int      `json:"partners,omitempty"`
	Regions       int      `json:"regions,omitempty"`
	Countries     int      `json:"countries,omitempty"`
	VisitorGroups []string `json:"visitor_groups,omitempty"`
	Metrics       []Metric `json:"metrics,omitempty"`
	Skipped       bool     `json:"skipped,omitempty"`
}

// Sources groups the per-dataset infos under the keys documented for the
// manifest file.
type Sources struct {
	TradeMonthly     *SourceInfo            `json:"trade_monthly,omitempty"`
	EnergyMonthly    *SourceInfo            `json:"energy_monthly,omitempty"`
	FuelMonthly      map[string]*SourceInfo `json:"fuel_monthly,omitempty"`
	TourismMonthly   map[string]*SourceInfo `json:"tourism_monthly,omitempty"`
	ImportsByPartner *SourceInfo            `json:"imports_by_partner,omitempty"`
}

// Manifest is the kas_sources dataset describing one fetch run.
type Manifest struct {
	RunID       string   `json:"run_id"`
	GeneratedAt string   `json:"generated_at"`
	APIBases    []string `json:"api_bases_tried"`
	Sources     Sources  `json:"sources"`
	Notes       []string `json:"notes"`
}

// manifestNotes are carried verbatim into every manifest to document the
// units and scope of the fetched series.
var manifestNotes = []string{
	"Uses PxWeb API; handles GET-meta variables[] (e.g., 'Viti/muaji', 'Variabla')",
	"Trade values are in thousand euro; imports are CIF",
	"Energy quantities are electricity volumes; indicators include Import and Gross Production from Power Plants",
	"Fuel balances include production, import, export, stock, and ready-for-market categories",
	"Tourism figures include visitors and nights by region (split by local/external) and by country of origin",
}

// newManifest stamps a fresh manifest for the current run.
func newManifest(apiBases []string) *Manifest {
	return &Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: timeSource().UTC().Format(time.RFC3339),
		APIBases:    apiBases,
		Notes:       manifestNotes,
	}
}
