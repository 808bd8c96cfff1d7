package godb

import (
	boom "github.com/tylertreat/BoomFilters"
)

const defaultHistogramBuckets = 100

// TableStats is a per-table statistics collector: one IntHistogram per
// integer column, plus an approximate per-value occurrence count via a
// Count-Min Sketch, useful for catching skewed values an equal-width
// histogram smooths over (spec §SPEC_FULL-C supplemented feature; feeds
// selectivity estimation alongside IntHistogram, spec §4.7).
type TableStats struct {
	numTuples  int64
	histograms map[int]*IntHistogram
	freq       map[int]*boom.CountMinSketch
	colType    map[int]DBType
}

// NewTableStats scans file once (reading pages through the buffer pool on
// tid's behalf) to determine each integer column's [min, max] range, then
// scans again to populate histograms and per-value frequency sketches.
func NewTableStats(tid TransactionID, file *HeapFile) (*TableStats, error) {
	desc := file.Descriptor()
	mins := make(map[int]int32)
	maxs := make(map[int]int32)
	colType := make(map[int]DBType)
	for i, f := range desc.Fields {
		colType[i] = f.Ftype
	}

	it := file.Iterator(tid)
	if err := it.Open(); err != nil {
		return nil, err
	}
	count := int64(0)
	for {
		t, err := it.Next()
		if err != nil {
			return nil, err
		}
		if t == nil {
			break
		}
		count++
		for i, f := range t.Fields {
			if colType[i] != IntType {
				continue
			}
			v := f.(IntField).Value
			cur, ok := mins[i]
			if !ok || v < cur {
				mins[i] = v
			}
			cur, ok = maxs[i]
			if !ok || v > cur {
				maxs[i] = v
			}
		}
	}
	if err := it.Close(); err != nil {
		return nil, err
	}

	ts := &TableStats{
		numTuples:  count,
		histograms: make(map[int]*IntHistogram),
		freq:       make(map[int]*boom.CountMinSketch),
		colType:    colType,
	}
	for i, ftype := range colType {
		if ftype != IntType {
			continue
		}
		ts.histograms[i] = NewIntHistogram(defaultHistogramBuckets, mins[i], maxs[i])
		ts.freq[i] = boom.NewCountMinSketch(0.001, 0.99)
	}

	it2 := file.Iterator(tid)
	if err := it2.Open(); err != nil {
		return nil, err
	}
	for {
		t, err := it2.Next()
		if err != nil {
			return nil, err
		}
		if t == nil {
			break
		}
		for i, f := range t.Fields {
			if colType[i] != IntType {
				continue
			}
			v := f.(IntField).Value
			ts.histograms[i].AddValue(v)
			ts.freq[i].Add(int32ToBytes(v))
		}
	}
	if err := it2.Close(); err != nil {
		return nil, err
	}

	return ts, nil
}

func int32ToBytes(v int32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// NumTuples returns the row count observed when the stats were collected.
func (ts *TableStats) NumTuples() int64 { return ts.numTuples }

// EstimateSelectivity estimates the fraction of rows satisfying
// `column op v`, using the column's histogram (spec §4.7). Non-integer
// columns have no histogram and conservatively estimate 1 (no filtering).
func (ts *TableStats) EstimateSelectivity(fieldIndex int, op BoolOp, v int32) float64 {
	h, ok := ts.histograms[fieldIndex]
	if !ok {
		return 1
	}
	return h.EstimateSelectivity(op, v)
}

// EstimateFrequency returns the approximate number of occurrences of v in
// fieldIndex, or 0 if the column isn't tracked.
func (ts *TableStats) EstimateFrequency(fieldIndex int, v int32) uint64 {
	s, ok := ts.freq[fieldIndex]
	if !ok {
		return 0
	}
	return s.Count(int32ToBytes(v))
}
