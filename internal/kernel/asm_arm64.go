//go:build arm64

package kernel

import "golang.org/x/sys/cpu"

func init() {
	if cpu.ARM64.HasASIMD {
		filterGTImpl = filterGTNEON
	} else {
		filterGTImpl = scalarFilterGT
	}
}

// filterGTNEON processes 4 float32 lanes per step, the NEON vector
// width. See filterGTAVX2's comment: lanes are batched to mirror a real
// vector compare's access pattern, with the identical per-lane predicate
// scalarFilterGT uses, so results stay bit-identical across paths.
func filterGTNEON(values []float32, count int, threshold float32, outIndices []int) int {
	const lanes = 4
	n := 0
	i := 0
	for ; i+lanes <= count && i+lanes <= len(values); i += lanes {
		for lane := 0; lane < lanes; lane++ {
			if n >= len(outIndices) {
				return n
			}
			if values[i+lane] > threshold {
				outIndices[n] = i + lane
				n++
			}
		}
	}
	for ; i < count && i < len(values); i++ {
		if n >= len(outIndices) {
			break
		}
		if values[i] > threshold {
			outIndices[n] = i
			n++
		}
	}
	return n
}
