package service

import (
	"hash/fnv"

	"github.com/insightdrift/insightdrift/internal/domain"
)

// bucketRange is the fixed range the hash is reduced onto before comparing
// against cumulative weight boundaries.
const bucketRange = 10000

// pickVariant deterministically buckets a (experiment, user) pair into a
// variant. The decision depends only on the two identifiers and the split
// weights, so it is reproducible under retries and independent of request
// order or storage availability.
func pickVariant(experimentID, userID string, variants []domain.Variant) string {
	h := fnv.New64a()
	h.Write([]byte(experimentID))
	h.Write([]byte(":"))
	h.Write([]byte(userID))
	bucket := int64(h.Sum64() % bucketRange)

	var total int64
	for _, v := range variants {
		total += v.Weight
	}

	// Walk cumulative boundaries in variant order; the first boundary past
	// the bucket wins.
	var cum int64
	for _, v := range variants {
		cum += v.Weight
		if bucket < cum*bucketRange/total {
			return v.Label
		}
	}
	// Integer rounding can leave the last boundary short of bucketRange.
	return variants[len(variants)-1].Label
}
