// Package rating derives a title's rating from its reviews.
//
// The rating is never stored: titles are read with a SUM/COUNT aggregate over
// their reviews and FromAggregate turns that into the mean on every read.
package rating

// Mean returns the arithmetic mean of scores, or nil when there are none.
func Mean(scores []int) *float64 {
	var sum int64
	for _, s := range scores {
		sum += int64(s)
	}
	return FromAggregate(sum, int64(len(scores)))
}

// FromAggregate returns sum/count, or nil when count is zero.
func FromAggregate(sum, count int64) *float64 {
	if count <= 0 {
		return nil
	}
	avg := float64(sum) / float64(count)
	return &avg
}
