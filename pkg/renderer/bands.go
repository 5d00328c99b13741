package renderer

// Band is a contiguous range of image rows [Start, End)
type Band struct {
	Start int
	End   int
}

// Rows returns the number of rows in the band
func (b Band) Rows() int {
	return b.End - b.Start
}

// Bands splits height rows into contiguous bands of equal size, one per
// worker. The last band absorbs any remainder. workers is clamped to [1, height].
func Bands(height, workers int) []Band {
	if height <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > height {
		workers = height
	}

	size := height / workers
	bands := make([]Band, workers)
	for k := 0; k < workers; k++ {
		bands[k] = Band{Start: k * size, End: (k + 1) * size}
	}
	bands[workers-1].End = height
	return bands
}
