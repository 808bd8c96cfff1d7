package godb

import "golang.org/x/exp/constraints"

// clamp restricts v to [lo, hi], used to keep estimated selectivities
// within [0, 1].
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IntHistogram is a fixed-width equal-range histogram over an integer
// column, used to estimate the selectivity of a comparison predicate without
// scanning the table (spec §4.7).
type IntHistogram struct {
	buckets []int64
	min     int32
	max     int32
	width   int64
	count   int64
}

// NewIntHistogram builds an empty histogram spanning [min, max], with
// width = max(1, ceil((max-min+1)/numBuckets)) (spec §4.7); the bucket array
// is sized to cover the full range at that width, which may round up by one
// bucket over numBuckets when the range doesn't divide evenly.
func NewIntHistogram(numBuckets int, min, max int32) *IntHistogram {
	if numBuckets < 1 {
		numBuckets = 1
	}
	rng := int64(max) - int64(min) + 1
	width := (rng + int64(numBuckets) - 1) / int64(numBuckets)
	if width < 1 {
		width = 1
	}
	n := int((rng + width - 1) / width)
	if n < 1 {
		n = 1
	}
	return &IntHistogram{
		buckets: make([]int64, n),
		min:     min,
		max:     max,
		width:   width,
	}
}

func (h *IntHistogram) bucketOf(v int32) int {
	if v < h.min {
		return -1
	}
	if v > h.max {
		return len(h.buckets)
	}
	idx := int(int64(v-h.min) / h.width)
	if idx >= len(h.buckets) {
		idx = len(h.buckets) - 1
	}
	return idx
}

// bucketBounds returns the inclusive integer range covered by bucket idx,
// clamped to h.max since the top bucket may be narrower than width when the
// range doesn't divide evenly.
func (h *IntHistogram) bucketBounds(idx int) (int32, int32) {
	lo := h.min + int32(int64(idx)*h.width)
	hi := lo + int32(h.width) - 1
	if hi > h.max {
		hi = h.max
	}
	return lo, hi
}

// AddValue records one occurrence of v.
func (h *IntHistogram) AddValue(v int32) {
	idx := h.bucketOf(v)
	if idx < 0 || idx >= len(h.buckets) {
		return
	}
	h.buckets[idx]++
	h.count++
}

// EstimateSelectivity returns the estimated fraction of rows satisfying
// `column op v`, given the distribution this histogram has accumulated
// (spec §4.7).
func (h *IntHistogram) EstimateSelectivity(op BoolOp, v int32) float64 {
	if h.count == 0 {
		return 0
	}
	var est float64
	switch op {
	case OpEq:
		est = h.estimateEq(v)
	case OpNeq:
		est = 1 - h.estimateEq(v)
	case OpGt:
		est = h.estimateGt(v)
	case OpGe:
		est = h.estimateEq(v) + h.estimateGt(v)
	case OpLt:
		est = 1 - h.estimateEq(v) - h.estimateGt(v)
	case OpLe:
		est = 1 - h.estimateGt(v)
	default:
		est = 1
	}
	return clamp(est, 0, 1)
}

func (h *IntHistogram) estimateEq(v int32) float64 {
	idx := h.bucketOf(v)
	if idx < 0 || idx >= len(h.buckets) {
		return 0
	}
	lo, hi := h.bucketBounds(idx)
	height := float64(h.buckets[idx])
	return (height / float64(hi-lo+1)) / float64(h.count)
}

func (h *IntHistogram) estimateGt(v int32) float64 {
	idx := h.bucketOf(v)
	if idx >= len(h.buckets) {
		return 0
	}
	if idx < 0 {
		return 1
	}
	bucketMin, bucketMax := h.bucketBounds(idx)
	var fraction float64
	if bucketMax > bucketMin {
		fraction = float64(bucketMax-v) / float64(bucketMax-bucketMin+1)
	}
	sum := fraction * float64(h.buckets[idx])
	for i := idx + 1; i < len(h.buckets); i++ {
		sum += float64(h.buckets[i])
	}
	return sum / float64(h.count)
}
