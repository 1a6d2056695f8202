package engine

import (
	"fmt"
	"math"

	"happiness/internal/models"
)

// Histogram buckets field into binCount equal-width bins over [min, max].
//
// Bins are half-open [lower, upper) except the last, which is closed, so a
// value on an inner boundary counts in the bin it opens and the maximum
// counts in the last bin. When every value is equal there is no width to
// divide: all bins collapse onto that value and the first holds every row.
func Histogram(v View, field Field, binCount int) ([]models.Bin, error) {
	if err := numericField("histogram", field); err != nil {
		return nil, err
	}
	if binCount <= 0 || binCount > MaxBins {
		return nil, &InvalidArgumentError{Param: "binCount", Value: binCount, Reason: fmt.Sprintf("must be between 1 and %d", MaxBins)}
	}
	if v.Len() == 0 {
		return nil, &EmptyViewError{Op: "histogram", Field: field}
	}

	values, _ := v.Column(field)
	lo, hi := values[0], values[0]
	for _, x := range values[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}

	bins := make([]models.Bin, binCount)
	if lo == hi {
		for i := range bins {
			bins[i] = models.Bin{Lower: lo, Upper: hi}
		}
		bins[0].Count = len(values)
		return bins, nil
	}

	width := (hi - lo) / float64(binCount)
	for i := range bins {
		bins[i].Lower = lo + float64(i)*width
		bins[i].Upper = lo + float64(i+1)*width
	}
	bins[binCount-1].Upper = hi

	for _, x := range values {
		bins[binIndex(bins, x, lo, width)].Count++
	}
	return bins, nil
}

// binIndex estimates the bucket arithmetically, then settles it against the
// reported bounds so rounding never contradicts them.
func binIndex(bins []models.Bin, x, lo, width float64) int {
	last := len(bins) - 1
	i := int(math.Floor((x - lo) / width))
	if i < 0 {
		i = 0
	}
	if i > last {
		i = last
	}
	for i > 0 && x < bins[i].Lower {
		i--
	}
	for i < last && x >= bins[i+1].Lower {
		i++
	}
	return i
}
