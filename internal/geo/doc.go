// Package geo provides the spatial primitives used by the density heuristic:
// a coarse grid bucketer and a haversine great-circle distance.
//
// The bucketer is the default co-location predicate. It is deliberately an
// approximation: longitude degrees shrink toward the poles, so bucket width
// varies with latitude. Callers that need geodesic accuracy can use
// DistanceKM as an alternative clustering predicate.
package geo
