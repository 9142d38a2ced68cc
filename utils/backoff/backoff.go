package backoff

import (
	"time"
)

// Retry runs f up to attempts times, doubling the sleep between tries.
// It returns nil on the first success. The shouldRetry predicate can stop
// early for errors that will never recover; Retry then returns that error.
func Retry(attempts int, sleep time.Duration, f func() error, shouldRetry func(error) bool) error {
	if attempts < 1 {
		attempts = 1
	}
	if sleep <= 0 {
		sleep = time.Second
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if lastErr = f(); lastErr == nil {
			return nil
		}
		if !shouldRetry(lastErr) {
			return lastErr
		}
		if attempt != attempts-1 {
			time.Sleep(sleep)
			sleep *= 2
		}
	}
	return lastErr
}
