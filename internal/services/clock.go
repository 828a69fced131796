package services

import "time"

// processEpoch fixes the timestamp origin at process start.
var processEpoch = time.Now()

// nanotime returns nanoseconds since the process epoch. time.Since reads the
// monotonic clock, so successive calls are non-decreasing even across wall
// clock adjustments.
func nanotime() uint64 {
	return uint64(time.Since(processEpoch).Nanoseconds())
}
