//go:build arm64

package cycles

import "time"

// estimatedHz approximates the generic counter frequency used as a
// portable stand-in for CNTVCT_EL0 pending a native assembly stub.
const estimatedHz = 2_400_000_000

// Read returns a monotonically increasing tick count.
func Read() uint64 {
	return uint64(float64(time.Since(clockBase).Nanoseconds()) * (estimatedHz / 1e9))
}

// clockBase anchors Read to the monotonic clock reading taken at startup.
var clockBase = time.Now()
