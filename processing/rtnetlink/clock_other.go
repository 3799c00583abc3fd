//go:build !linux

package rtnetlink

import "time"

var start = time.Now()

// MonotonicMillis returns the milliseconds elapsed since the process started
// as measured by the runtime's monotonic clock.
func MonotonicMillis() int64 {
	return time.Since(start).Milliseconds()
}
