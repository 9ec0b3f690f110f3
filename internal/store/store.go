// Package store implements the triple store (C3): a bitmap-indexed,
// arena-backed (subject × predicate × object) membership index with
// O(1) ASK and ascending-order subject scans.
//
// Grounded on the SPO/POS/OSP bitmap-index shape used by real Go RDF
// triple stores (boutros/sopp indexes Predicate+Object -> Subject as a
// roaring bitmap), generalized here into the spec's fixed, dense,
// arena-backed bit-grid: per predicate, one object-major bitmap over
// (object, subject) pairs for O(1) ASK plus contiguous word scans when
// the object is fixed, and one derived subject-presence bitmap for
// scan_by_predicate, kept in lockstep on every insert.
package store

import (
	"encoding/binary"
	"errors"
	"math/bits"

	"github.com/fenilsonani/tickengine/internal/arena"
	"github.com/fenilsonani/tickengine/internal/dictionary"
)

// ErrInvalidArg is returned by AddTriple when any term ID falls outside
// the store's configured bounds.
var ErrInvalidArg = errors.New("store: term id out of range")

// TermID aliases the dictionary's term identifier type so callers don't
// need to import dictionary just to address the store.
type TermID = dictionary.TermID

type predicateBlock struct {
	grid arena.Ref // bit i = obj*maxSubjects + sub   (object-major: contiguous per fixed object)
	subj arena.Ref // bit i = sub                      (derived: "has any outgoing edge via this predicate")
}

// Store is the bitmap-indexed triple set for one engine instance.
type Store struct {
	a *arena.Arena

	maxSubjects   int
	maxPredicates int
	maxObjects    int

	typePredicate TermID // the predicate ID treated as rdf:type for ScanByType

	predicates []predicateBlock
	generation uint64 // bumped on every mutation; the property-count cache watches this
}

func roundUp64(bytes int) int {
	return (bytes + 63) &^ 63
}

func bitsToBytes(n int) int {
	return (n + 7) / 8
}

// New constructs a Store with fixed dimensions. All predicate bitmaps
// are allocated from a, cache-line aligned, at construction time —
// matching spec §4.3's "Predicate blocks are allocated from the arena
// at construction."
func New(a *arena.Arena, maxSubjects, maxPredicates, maxObjects int, typePredicate TermID) (*Store, error) {
	if maxSubjects <= 0 || maxPredicates <= 0 || maxObjects <= 0 {
		return nil, errors.New("store: dimensions must be positive")
	}
	s := &Store{
		a:             a,
		maxSubjects:   maxSubjects,
		maxPredicates: maxPredicates,
		maxObjects:    maxObjects,
		typePredicate: typePredicate,
		predicates:    make([]predicateBlock, maxPredicates),
	}

	gridBytes := roundUp64(bitsToBytes(maxSubjects * maxObjects))
	subjBytes := roundUp64(bitsToBytes(maxSubjects))

	for p := 0; p < maxPredicates; p++ {
		gridRef, err := a.Alloc(gridBytes, arena.DefaultAlign)
		if err != nil {
			return nil, err
		}
		subjRef, err := a.Alloc(subjBytes, arena.DefaultAlign)
		if err != nil {
			return nil, err
		}
		// The arena only zeroes on alloc when its own ZeroOnAlloc flag is
		// set, and Reset never zeroes at all — a store built on a reused
		// arena region could otherwise see another store's stale bits.
		zero(a.Bytes(gridRef))
		zero(a.Bytes(subjRef))
		s.predicates[p] = predicateBlock{grid: gridRef, subj: subjRef}
	}
	return s, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Generation returns the mutation counter. Callers (the property-count
// cache) compare successive reads to detect a dirty cache eagerly.
func (s *Store) Generation() uint64 { return s.generation }

// MaxSubjects returns the store's configured subject dimension.
func (s *Store) MaxSubjects() int { return s.maxSubjects }

// MaxPredicates returns the store's configured predicate dimension.
func (s *Store) MaxPredicates() int { return s.maxPredicates }

// MaxObjects returns the store's configured object dimension.
func (s *Store) MaxObjects() int { return s.maxObjects }

func (s *Store) inRange(sub, pred, obj TermID) bool {
	return int(sub) < s.maxSubjects && int(pred) < s.maxPredicates && int(obj) < s.maxObjects
}

// AddTriple inserts (sub, pred, obj). It is idempotent: inserting the
// same triple twice leaves the store bit-identical to one insertion.
// Out-of-range IDs fail with ErrInvalidArg and leave no state change.
func (s *Store) AddTriple(sub, pred, obj TermID) error {
	if !s.inRange(sub, pred, obj) {
		return ErrInvalidArg
	}
	block := &s.predicates[pred]

	gridBit := int(obj)*s.maxSubjects + int(sub)
	setBit(s.a.Bytes(block.grid), gridBit)
	setBit(s.a.Bytes(block.subj), int(sub))

	s.generation++
	return nil
}

// AskPattern is a bounded-time membership test. Any ID out of range
// returns false rather than an error, per spec §4.3's tie-break.
func (s *Store) AskPattern(sub, pred, obj TermID) bool {
	if !s.inRange(sub, pred, obj) {
		return false
	}
	block := &s.predicates[pred]
	gridBit := int(obj)*s.maxSubjects + int(sub)
	return testBit(s.a.Bytes(block.grid), gridBit)
}

// ScanByType enumerates subjects s such that (s, typePredicate, class)
// holds, in ascending order of s, stopping once cap subjects have been
// collected. Returns the number of subjects written into out.
func (s *Store) ScanByType(class TermID, out []TermID, cap int) int {
	if int(s.typePredicate) >= s.maxPredicates || int(class) >= s.maxObjects {
		return 0
	}
	block := &s.predicates[s.typePredicate]
	data := s.a.Bytes(block.grid)
	rowStart := int(class) * s.maxSubjects
	return scanBits(data, rowStart, s.maxSubjects, out, cap)
}

// ScanByPredicate enumerates subjects with any outgoing edge via pred
// (at least one object), in ascending order, stopping at cap.
func (s *Store) ScanByPredicate(pred TermID, out []TermID, cap int) int {
	if int(pred) >= s.maxPredicates {
		return 0
	}
	block := &s.predicates[pred]
	data := s.a.Bytes(block.subj)
	return scanBits(data, 0, s.maxSubjects, out, cap)
}

// scanBits walks n bits starting at bitOffset within data, word at a
// time, using TrailingZeros64 to skip zero words and jump directly to
// set bits — the "bit-scan intrinsic" scanning policy from spec §4.3.
func scanBits(data []byte, bitOffset, n int, out []TermID, capN int) int {
	count := 0
	// bitOffset need not be word-aligned (ScanByType's rowStart rarely is),
	// so the first partial word is handled with a shifted mask.
	pos := bitOffset
	end := bitOffset + n
	for pos < end && count < capN {
		wordIdx := pos / 64
		byteOff := wordIdx * 8
		if byteOff+8 > len(data) {
			break
		}
		word := binary.LittleEndian.Uint64(data[byteOff : byteOff+8])

		wordBitStart := wordIdx * 64
		// mask off bits before pos and at/after end, relative to this word
		lowShift := pos - wordBitStart
		if lowShift > 0 {
			word &^= (uint64(1) << uint(lowShift)) - 1
		}
		if wordBitStart+64 > end {
			highBits := wordBitStart + 64 - end
			word &^= ^uint64(0) << uint(64-highBits)
		}

		for word != 0 && count < capN {
			tz := bits.TrailingZeros64(word)
			bitIdx := wordBitStart + tz
			out[count] = TermID(bitIdx - bitOffset)
			count++
			word &= word - 1 // clear lowest set bit
		}
		pos = wordBitStart + 64
	}
	return count
}

func setBit(data []byte, bit int) {
	byteOff := (bit / 64) * 8
	word := binary.LittleEndian.Uint64(data[byteOff : byteOff+8])
	word |= uint64(1) << uint(bit%64)
	binary.LittleEndian.PutUint64(data[byteOff:byteOff+8], word)
}

func testBit(data []byte, bit int) bool {
	byteOff := (bit / 64) * 8
	word := binary.LittleEndian.Uint64(data[byteOff : byteOff+8])
	return word&(uint64(1)<<uint(bit%64)) != 0
}
