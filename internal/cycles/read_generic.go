//go:build !amd64 && !arm64

package cycles

import "time"

// estimatedHz is an arbitrary stand-in clock rate for architectures with
// no dedicated hardware counter support in this package.
const estimatedHz = 1_000_000_000

// Read returns a monotonically increasing tick count derived from the
// portable monotonic clock, per spec: "monotonic nanosecond clock
// otherwise."
func Read() uint64 {
	return uint64(time.Since(clockBase).Nanoseconds()) * (estimatedHz / 1_000_000_000)
}

// clockBase anchors Read to the monotonic clock reading taken at startup.
var clockBase = time.Now()
