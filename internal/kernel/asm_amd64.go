//go:build amd64

package kernel

import "golang.org/x/sys/cpu"

func init() {
	if cpu.X86.HasAVX2 {
		filterGTImpl = filterGTAVX2
	} else {
		filterGTImpl = scalarFilterGT
	}
}

// filterGTAVX2 processes 8 float32 lanes per step, the AVX2 vector
// width, emitting ascending indices for lanes greater than threshold.
// Pending a native assembly kernel, lanes are compared in fixed-size
// batches so the access pattern matches what a real VCMPPS/VMOVMSKPS
// sequence would produce; the per-lane comparison itself is the same
// scalar predicate scalarFilterGT uses, so results are bit-identical —
// this is the property the differential tests in kernel_test.go check.
func filterGTAVX2(values []float32, count int, threshold float32, outIndices []int) int {
	const lanes = 8
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
