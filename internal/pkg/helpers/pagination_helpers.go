package helpers

const (
	// DefaultBatchSize is the number of legacy rows fetched per query.
	DefaultBatchSize = 500
	// MaxBatchSize caps a single LIMIT to keep memory bounded.
	MaxBatchSize = 10000
)

// NormalizeBatchSize clamps size into [1, MaxBatchSize], falling back to the default.
func NormalizeBatchSize(size int) int {
	if size <= 0 {
		return DefaultBatchSize
	}
	if size > MaxBatchSize {
		return MaxBatchSize
	}
	return size
}

// BatchOffsets returns the OFFSET values needed to walk total rows in windows
// of size, starting at start: start, start+size, ... while offset < total.
func BatchOffsets(total, size, start int) []int {
	size = NormalizeBatchSize(size)
	if start < 0 {
		start = 0
	}
	var offsets []int
	for offset := start; offset < total; offset += size {
		offsets = append(offsets, offset)
	}
	return offsets
}

// BatchNumber returns the 1-based batch index for an offset.
func BatchNumber(offset, size int) int {
	size = NormalizeBatchSize(size)
	return offset/size + 1
}
