package classify

import (
	"math"
	"sort"

	"github.com/JamesPriceZV/stingraycatcher/internal/geo"
	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// MsgDenseCluster is the reason attached to the strongest members of an
// implausibly dense grid bucket.
const MsgDenseCluster = "dense cluster with strong power"

// densityPass runs the cross-record heuristic: it buckets the batch on the
// coarse grid and, in any bucket holding ClusterMinSize or more
// observations, flags the ClusterFlagLimit strongest members by RSRP.
//
// A cluster of distinct reported cells packed into a 50-100m bucket is
// atypical of real deployment density and is consistent with one simulator
// being reported under multiple spoofed identities.
//
// Co-location is the grid-bucket equality predicate; geo.DistanceKM is the
// exact great-circle alternative when a radius-based predicate is needed.
//
// Determinism: bucket membership lists are built in batch order and ranked
// with a stable sort, so equal RSRP values (including multiple absent
// values, which rank as weakest) break ties on batch order. Map iteration
// order does not matter because buckets are disjoint and AddReason
// deduplicates.
func (c *Classifier) densityPass(sites []model.CellSite) {
	buckets := make(map[geo.BucketKey][]int)
	for i := range sites {
		key := geo.Bucket(sites[i].Lat, sites[i].Lon, c.options.GridScale)
		buckets[key] = append(buckets[key], i)
	}

	for key, members := range buckets {
		if len(members) < c.options.ClusterMinSize {
			continue
		}

		c.options.Logger.Debug("dense bucket",
			"bucket_x", key.X,
			"bucket_y", key.Y,
			"members", len(members),
		)

		ranked := make([]int, len(members))
		copy(ranked, members)
		sort.SliceStable(ranked, func(a, b int) bool {
			return rsrpOrWeakest(&sites[ranked[a]]) > rsrpOrWeakest(&sites[ranked[b]])
		})

		limit := c.options.ClusterFlagLimit
		if limit > len(ranked) {
			limit = len(ranked)
		}
		for _, idx := range ranked[:limit] {
			sites[idx].AddReason(model.ReasonDenseCluster, MsgDenseCluster)
		}
	}
}

// rsrpOrWeakest returns the observation's RSRP, with absent readings ranking
// below any real dBm value.
func rsrpOrWeakest(site *model.CellSite) float64 {
	if site.RSRP == nil {
		return math.Inf(-1)
	}
	return *site.RSRP
}
