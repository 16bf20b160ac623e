package geo

// DefaultGridScale is the coordinate multiplier for grid bucketing.
// Scaling degrees by 200 yields buckets of 1/200 degree per side, roughly
// 50-100 meters at mid latitudes, which matches the footprint of a single
// rogue transmitter being reported under several identities.
const DefaultGridScale = 200

// BucketKey identifies one grid cell. Two observations with equal keys are
// considered co-located for density analysis.
type BucketKey struct {
	// X is the truncated scaled latitude.
	X int

	// Y is the truncated scaled longitude.
	Y int
}

// Bucket computes the grid-cell key for a coordinate pair by scaling each
// coordinate and truncating toward zero. It is pure and never fails; a
// non-positive scale falls back to DefaultGridScale.
func Bucket(lat, lon float64, scale int) BucketKey {
	if scale <= 0 {
		scale = DefaultGridScale
	}
	// Go's float-to-int conversion truncates toward zero, matching the
	// bucketing behavior for negative coordinates (western longitudes,
	// southern latitudes).
	return BucketKey{
		X: int(lat * float64(scale)),
		Y: int(lon * float64(scale)),
	}
}
