//go:build linux

package rtnetlink

import "golang.org/x/sys/unix"

// MonotonicMillis reads CLOCK_MONOTONIC in milliseconds. It's not related to
// the wall clock, so stamps can only be compared with each other.
func MonotonicMillis() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0
	}
	return ts.Nano() / 1e6
}
