package utils

import "time"

// Retry runs fn up to maxAttempts times, sleeping delay doubled after each
// failure. It returns the last error when every attempt fails. Neither
// service calls this; it is a utility for callers with flaky dependencies.
func Retry(fn func() error, maxAttempts int, delay time.Duration) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt < maxAttempts-1 {
			time.Sleep(delay << attempt)
		}
	}
	return lastErr
}
