package ingest

import (
	"math/rand"
	"time"

	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// DemoSeed fixes the demo generator's randomness so demo runs are
// reproducible.
const DemoSeed = 42

// DemoOptions configures the demo batch generator.
type DemoOptions struct {
	// CenterLat and CenterLon place the batch center.
	CenterLat float64
	CenterLon float64

	// TowerCount is the number of legitimate observations to generate.
	TowerCount int

	// Seed drives the generator; DemoSeed by default.
	Seed int64
}

// DemoSites generates a deterministic batch of observations: TowerCount
// plausible carrier towers scattered around the center, plus a tight
// five-record cluster carrying the classic simulator signatures (missing
// identity, degenerate codes, very strong signal) a few hundred meters
// northeast of it.
func DemoSites(opts DemoOptions) []model.CellSite {
	if opts.TowerCount <= 0 {
		opts.TowerCount = 12
	}
	seed := opts.Seed
	if seed == 0 {
		seed = DemoSeed
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic demo data, not crypto

	now := time.Now().UTC().Format(time.RFC3339)
	carriers := []string{"AT&T", "Verizon", "T-Mobile"}
	mncByCarrier := map[string]int{"AT&T": 410, "T-Mobile": 260, "Verizon": 480}

	sites := make([]model.CellSite, 0, opts.TowerCount+5)

	for i := 0; i < opts.TowerCount; i++ {
		op := carriers[rng.Intn(len(carriers))]
		rsrp := uniform(rng, -120, -70)
		sites = append(sites, model.CellSite{
			Lat:       opts.CenterLat + uniform(rng, -0.01, 0.01),
			Lon:       opts.CenterLon + uniform(rng, -0.01, 0.01),
			Operator:  op,
			MCC:       model.IntPtr(310),
			MNC:       model.IntPtr(mncByCarrier[op]),
			TAC:       model.IntPtr(10 + rng.Intn(65526)),
			CID:       model.Int64Ptr(int64(100 + rng.Intn(499901))),
			PCI:       model.IntPtr(rng.Intn(504)),
			ARFCN:     model.IntPtr(500 + rng.Intn(501)),
			Band:      "B2",
			RSRP:      model.FloatPtr(rsrp),
			RSRQ:      model.FloatPtr(uniform(rng, -20, -3)),
			RSSI:      model.FloatPtr(rsrp + uniform(rng, 20, 40)),
			Timestamp: now,
			Reasons:   make([]model.Reason, 0),
		})
	}

	// Suspected simulator cluster: five anonymous cells inside a ~60m box.
	for i := 0; i < 5; i++ {
		tac := 1
		if i == 0 {
			tac = 0
		}
		cid := int64(2 + rng.Intn(9))
		if i < 2 {
			cid = 1
		}
		sites = append(sites, model.CellSite{
			Lat:       opts.CenterLat + uniform(rng, 0.0002, 0.0008),
			Lon:       opts.CenterLon + uniform(rng, 0.0002, 0.0008),
			TAC:       model.IntPtr(tac),
			CID:       model.Int64Ptr(cid),
			PCI:       model.IntPtr(rng.Intn(504)),
			ARFCN:     model.IntPtr(900),
			Band:      "B5",
			RSRP:      model.FloatPtr(uniform(rng, -60, -45)),
			RSRQ:      model.FloatPtr(uniform(rng, -8, -2)),
			RSSI:      model.FloatPtr(uniform(rng, -45, -30)),
			Timestamp: now,
			Reasons:   make([]model.Reason, 0),
		})
	}

	return sites
}

// uniform returns a random float64 in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
