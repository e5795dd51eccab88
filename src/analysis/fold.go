package analysis

// longest returns the index of the item with the greatest duration.
// Unknown durations compare as zero, ties keep the earlier item and an
// empty slice yields -1.
func longest[T any](items []T, duration func(T) Duration) int {
	if len(items) == 0 {
		return -1
	}

	best := 0
	bestMs := duration(items[0]).OrZero()
	for i := 1; i < len(items); i++ {
		if ms := duration(items[i]).OrZero(); ms > bestMs {
			best, bestMs = i, ms
		}
	}
	return best
}
