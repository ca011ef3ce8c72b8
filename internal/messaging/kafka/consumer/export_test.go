package consumer

import "time"

// SetFetchBackoff shortens the fetch retry delays for a test and returns a restore func.
func SetFetchBackoff(minDelay, maxDelay time.Duration) func() {
	prevMin, prevMax := fetchBackoffMin, fetchBackoffMax
	fetchBackoffMin, fetchBackoffMax = minDelay, maxDelay
	return func() { fetchBackoffMin, fetchBackoffMax = prevMin, prevMax }
}
