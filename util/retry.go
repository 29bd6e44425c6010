package util

import "time"

// Retry runs the given function up to attempts times, sleeping
// a fixed delay between failures, and returns the last error
// once all attempts are exhausted.
func Retry(attempts int, delay time.Duration, f func() error) (err error) {
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			time.Sleep(delay)
		}
		if err = f(); err == nil {
			return nil
		}
	}
	return err
}
