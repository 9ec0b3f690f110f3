// Package kernel implements the five SIMD kernels (C5) the query plan
// executor composes into op tapes: scan_by_type, scan_by_predicate,
// filter_gt_f32, hash_join, and project.
//
// Each kernel writes into a caller-supplied register buffer and returns
// the populated count, mirroring the teacher's per-architecture dispatch
// idiom (internal/hyperdrive/ultrafast.go picks a hardware path at init
// time and falls back to a scalar implementation that produces
// bit-identical results — see asm_amd64.go / asm_arm64.go / asm_generic.go).
package kernel

import (
	"github.com/fenilsonani/tickengine/internal/store"
)

// Row is one query-result tuple written by Project and filled in by the
// plan executor's post-processing step.
type Row struct {
	SubjectID   store.TermID
	PredicateID store.TermID
	ObjectID    store.TermID
	Value       float32
}

// ScanByType wraps store.ScanByType. Ordering: ascending subject ID.
func ScanByType(s *store.Store, class store.TermID, out []store.TermID, cap int) int {
	return s.ScanByType(class, out, cap)
}

// ScanByPredicate wraps store.ScanByPredicate. Ordering: ascending
// subject ID.
func ScanByPredicate(s *store.Store, pred store.TermID, out []store.TermID, cap int) int {
	return s.ScanByPredicate(pred, out, cap)
}

// FilterGTF32 emits, in ascending index order, the indices of lanes in
// values[:count] greater than threshold. The active implementation is
// selected at init time by architecture and detected CPU features (see
// asm_*.go); all paths are differentially tested against scalarFilterGT,
// the canonical reference.
func FilterGTF32(values []float32, count int, threshold float32, outIndices []int) int {
	return filterGTImpl(values, count, threshold, outIndices)
}

// filterGTImpl is set by an arch-specific init() in asm_amd64.go,
// asm_arm64.go, or asm_generic.go.
var filterGTImpl func(values []float32, count int, threshold float32, outIndices []int) int

// scalarFilterGT is the canonical, architecture-independent
// implementation used both as the universal fallback and as the
// reference for differential testing against any vectorized path.
func scalarFilterGT(values []float32, count int, threshold float32, outIndices []int) int {
	n := 0
	for i := 0; i < count && i < len(values); i++ {
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

// defaultProbeCapacity is the fixed open-addressing table size hash_join
// uses when the caller does not need a larger one; it must stay a power
// of two for the masking probe sequence.
const defaultProbeCapacity = 1024

// HashJoin builds an open-address hash table over left, then probes with
// each element of right in order, emitting every match into out. Matches
// are emitted with the same multiplicity they have in right, and in
// right's order — it is a semi-join keyed by right, not a Cartesian
// join. Caller guarantees left holds fewer than defaultProbeCapacity
// distinct IDs; the probe table has no resize.
func HashJoin(left []store.TermID, right []store.TermID, out []store.TermID) int {
	table := newProbeTable(defaultProbeCapacity)
	for _, v := range left {
		table.insert(v)
	}
	n := 0
	for _, v := range right {
		if n >= len(out) {
			break
		}
		if table.contains(v) {
			out[n] = v
			n++
		}
	}
	return n
}

type probeTable struct {
	slots    []store.TermID
	occupied []bool
	mask     uint64
}

func newProbeTable(capacity int) *probeTable {
	// round up to the next power of two
	cap := 1
	for cap < capacity {
		cap <<= 1
	}
	return &probeTable{
		slots:    make([]store.TermID, cap),
		occupied: make([]bool, cap),
		mask:     uint64(cap - 1),
	}
}

func (t *probeTable) hash(v store.TermID) uint64 {
	x := uint64(v)
	// splitmix64 finalizer: cheap, well-distributed avalanche for small
	// integer keys, avoiding clustering when term IDs are allocated
	// sequentially (the common case for dictionary-assigned IDs).
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

func (t *probeTable) insert(v store.TermID) {
	i := t.hash(v) & t.mask
	for t.occupied[i] {
		if t.slots[i] == v {
			return // already present
		}
		i = (i + 1) & t.mask
	}
	t.slots[i] = v
	t.occupied[i] = true
}

func (t *probeTable) contains(v store.TermID) bool {
	i := t.hash(v) & t.mask
	for t.occupied[i] {
		if t.slots[i] == v {
			return true
		}
		i = (i + 1) & t.mask
	}
	return false
}

// Project copies subject IDs into the result tuple's SubjectID field.
// PredicateID, ObjectID, and Value are left zero for the plan executor's
// post-processing step to fill in from literal parameters or joined
// columns, per spec §4.4.
func Project(ids []store.TermID, outResults []Row) int {
	n := 0
	for i := 0; i < len(ids) && i < len(outResults); i++ {
		outResults[i].SubjectID = ids[i]
		n++
	}
	return n
}
