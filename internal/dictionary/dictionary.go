// Package dictionary implements the dense integer ID space for RDF terms
// (C4). It is populated offline by a generator outside this module's
// scope and consumed here as an immutable lookup table; the Builder type
// exists only so tests and the demo CLI can construct a Dictionary
// in-process without that offline step.
package dictionary

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

// TermID is a dense identifier shared by the subject, predicate, and
// object spaces (spec: "Three disjoint spaces coexist but share the
// integer range").
type TermID uint32

// NodeKind classifies a TermID by the range it falls in. Node-kind
// classification is resolved here as a contiguous-range split, per the
// spec's open question: "classify o by ID range (IRI/Blank/Literal)".
type NodeKind uint8

const (
	KindIRI NodeKind = iota
	KindBlank
	KindLiteral
	KindAny // used only in NODE_KIND(path, Any) constraint matching, never a real term's kind
)

func (k NodeKind) String() string {
	switch k {
	case KindIRI:
		return "IRI"
	case KindBlank:
		return "Blank"
	case KindLiteral:
		return "Literal"
	case KindAny:
		return "Any"
	default:
		return "Unknown"
	}
}

// DatatypeID identifies a literal's datatype (e.g. xsd:string,
// xsd:integer). The spec's open question — "a reimplementation must
// either reify datatype IDs in the dictionary or drop the constraint
// kind" — is resolved in favor of reifying them here.
type DatatypeID uint32

// ObjectRange is a per-predicate hint narrowing the object ID range a
// property-count scan needs to examine (spec §4.6: "restricts its object
// range using per-predicate hints from the ID dictionary").
type ObjectRange struct {
	Min, Max TermID // [Min, Max)
}

// Dictionary is the immutable, offline-populated term table consumed by
// an Engine at construction.
type Dictionary struct {
	Base string // common IRI prefix, stored once rather than per-term

	blankStart   TermID
	literalStart TermID
	numTerms     TermID

	names      map[TermID]string
	byName     map[uint64]TermID // xxhash(name) -> id, collisions resolved by names[] compare
	datatypes  map[TermID]DatatypeID
	predHints  map[TermID]ObjectRange
}

// Kind classifies id by its position in the IRI/Blank/Literal ranges.
func (d *Dictionary) Kind(id TermID) NodeKind {
	switch {
	case id < d.blankStart:
		return KindIRI
	case id < d.literalStart:
		return KindBlank
	default:
		return KindLiteral
	}
}

// Datatype returns the datatype of a literal term, and whether one was
// registered for it.
func (d *Dictionary) Datatype(id TermID) (DatatypeID, bool) {
	dt, ok := d.datatypes[id]
	return dt, ok
}

// Name returns the interned string for a term, if known.
func (d *Dictionary) Name(id TermID) (string, bool) {
	name, ok := d.names[id]
	return name, ok
}

// Lookup resolves a string to its TermID by hash, verifying the stored
// name to rule out a hash collision.
func (d *Dictionary) Lookup(name string) (TermID, bool) {
	h := xxhash.Sum64String(name)
	id, ok := d.byName[h]
	if !ok {
		return 0, false
	}
	if d.names[id] != name {
		return 0, false
	}
	return id, true
}

// PredicateHint returns the object-range hint for a predicate, if the
// offline generator recorded one.
func (d *Dictionary) PredicateHint(pred TermID) (ObjectRange, bool) {
	h, ok := d.predHints[pred]
	return h, ok
}

// NumTerms returns one past the highest interned TermID, i.e. the size
// of the dense ID space in use; it equals the number of interned terms
// only when the IDs leave no gaps.
func (d *Dictionary) NumTerms() int { return int(d.numTerms) }

// Builder assembles a Dictionary in-process. It is the in-memory
// counterpart to the offline generator the spec names as an external
// collaborator; tests and the demo CLI use it directly.
type Builder struct {
	base         string
	blankStart   TermID
	literalStart TermID
	next         TermID
	names        map[TermID]string
	byName       map[uint64]TermID
	datatypes    map[TermID]DatatypeID
	predHints    map[TermID]ObjectRange
}

// NewBuilder starts a Dictionary under construction. blankStart and
// literalStart mark where the Blank and Literal ranges begin; IRIs
// occupy [0, blankStart).
func NewBuilder(base string, blankStart, literalStart TermID) *Builder {
	return &Builder{
		base:         base,
		blankStart:   blankStart,
		literalStart: literalStart,
		next:         0,
		names:        make(map[TermID]string),
		byName:       make(map[uint64]TermID),
		datatypes:    make(map[TermID]DatatypeID),
		predHints:    make(map[TermID]ObjectRange),
	}
}

// Intern records name under id, replacing any name already stored for id
// and pointing name's reverse lookup at id. It returns nothing and does
// not check whether name was interned before. The caller picks which
// range (IRI/Blank/Literal) the name belongs to by choosing an id
// consistent with the Builder's configured boundaries.
func (b *Builder) Intern(id TermID, name string) {
	b.names[id] = name
	b.byName[xxhash.Sum64String(name)] = id
	if id >= b.next {
		b.next = id + 1
	}
}

// SetDatatype records the datatype of a literal term.
func (b *Builder) SetDatatype(id TermID, dt DatatypeID) {
	b.datatypes[id] = dt
}

// SetPredicateHint records an object-range hint for a predicate.
func (b *Builder) SetPredicateHint(pred TermID, rng ObjectRange) {
	b.predHints[pred] = rng
}

// Build finalizes the Dictionary.
func (b *Builder) Build() *Dictionary {
	return &Dictionary{
		Base:         b.base,
		blankStart:   b.blankStart,
		literalStart: b.literalStart,
		numTerms:     b.next,
		names:        b.names,
		byName:       b.byName,
		datatypes:    b.datatypes,
		predHints:    b.predHints,
	}
}

// snapshot header fields, written/read with encoding/binary in a fixed
// little-endian layout: magic, version, then the three range boundaries.
const (
	snapshotMagic   uint32 = 0x54444943 // "TDIC"
	snapshotVersion uint32 = 1
)

// Save writes a zstd-framed snapshot of the dictionary, the on-disk
// artifact format the offline generator would emit. Framing with zstd
// mirrors the teacher's HyperPack segment framing (internal/pack) rather
// than inventing a bespoke compressed container.
func Save(w io.Writer, d *Dictionary) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("dictionary: open zstd writer: %w", err)
	}
	defer zw.Close()

	hdr := make([]byte, 16)
	binary.LittleEndian.PutUint32(hdr[0:4], snapshotMagic)
	binary.LittleEndian.PutUint32(hdr[4:8], snapshotVersion)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(d.blankStart))
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(d.literalStart))
	if _, err := zw.Write(hdr); err != nil {
		return fmt.Errorf("dictionary: write header: %w", err)
	}

	if err := binary.Write(zw, binary.LittleEndian, uint32(len(d.names))); err != nil {
		return fmt.Errorf("dictionary: write term count: %w", err)
	}
	for id, name := range d.names {
		if err := binary.Write(zw, binary.LittleEndian, uint32(id)); err != nil {
			return err
		}
		if err := binary.Write(zw, binary.LittleEndian, uint32(len(name))); err != nil {
			return err
		}
		if _, err := zw.Write([]byte(name)); err != nil {
			return err
		}
	}

	if err := binary.Write(zw, binary.LittleEndian, uint32(len(d.datatypes))); err != nil {
		return fmt.Errorf("dictionary: write datatype count: %w", err)
	}
	for id, dt := range d.datatypes {
		if err := binary.Write(zw, binary.LittleEndian, uint32(id)); err != nil {
			return err
		}
		if err := binary.Write(zw, binary.LittleEndian, uint32(dt)); err != nil {
			return err
		}
	}

	if err := binary.Write(zw, binary.LittleEndian, uint32(len(d.predHints))); err != nil {
		return fmt.Errorf("dictionary: write predicate hint count: %w", err)
	}
	for pred, rng := range d.predHints {
		if err := binary.Write(zw, binary.LittleEndian, uint32(pred)); err != nil {
			return err
		}
		if err := binary.Write(zw, binary.LittleEndian, uint32(rng.Min)); err != nil {
			return err
		}
		if err := binary.Write(zw, binary.LittleEndian, uint32(rng.Max)); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a snapshot previously written by Save.
func Load(r io.Reader, base string) (*Dictionary, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open zstd reader: %w", err)
	}
	defer zr.Close()

	hdr := make([]byte, 16)
	if _, err := io.ReadFull(zr, hdr); err != nil {
		return nil, fmt.Errorf("dictionary: read header: %w", err)
	}
	if magic := binary.LittleEndian.Uint32(hdr[0:4]); magic != snapshotMagic {
		return nil, fmt.Errorf("dictionary: bad magic %#x", magic)
	}
	blankStart := TermID(binary.LittleEndian.Uint32(hdr[8:12]))
	literalStart := TermID(binary.LittleEndian.Uint32(hdr[12:16]))

	var count uint32
	if err := binary.Read(zr, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("dictionary: read term count: %w", err)
	}

	b := NewBuilder(base, blankStart, literalStart)
	for i := uint32(0); i < count; i++ {
		var id, nameLen uint32
		if err := binary.Read(zr, binary.LittleEndian, &id); err != nil {
			return nil, fmt.Errorf("dictionary: read term id: %w", err)
		}
		if err := binary.Read(zr, binary.LittleEndian, &nameLen); err != nil {
			return nil, fmt.Errorf("dictionary: read name length: %w", err)
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(zr, name); err != nil {
			return nil, fmt.Errorf("dictionary: read name: %w", err)
		}
		b.Intern(TermID(id), string(name))
	}

	var datatypeCount uint32
	if err := binary.Read(zr, binary.LittleEndian, &datatypeCount); err != nil {
		return nil, fmt.Errorf("dictionary: read datatype count: %w", err)
	}
	for i := uint32(0); i < datatypeCount; i++ {
		var id, dt uint32
		if err := binary.Read(zr, binary.LittleEndian, &id); err != nil {
			return nil, fmt.Errorf("dictionary: read datatype term id: %w", err)
		}
		if err := binary.Read(zr, binary.LittleEndian, &dt); err != nil {
			return nil, fmt.Errorf("dictionary: read datatype id: %w", err)
		}
		b.SetDatatype(TermID(id), DatatypeID(dt))
	}

	var hintCount uint32
	if err := binary.Read(zr, binary.LittleEndian, &hintCount); err != nil {
		return nil, fmt.Errorf("dictionary: read predicate hint count: %w", err)
	}
	for i := uint32(0); i < hintCount; i++ {
		var pred, min, max uint32
		if err := binary.Read(zr, binary.LittleEndian, &pred); err != nil {
			return nil, fmt.Errorf("dictionary: read predicate hint id: %w", err)
		}
		if err := binary.Read(zr, binary.LittleEndian, &min); err != nil {
			return nil, fmt.Errorf("dictionary: read predicate hint min: %w", err)
		}
		if err := binary.Read(zr, binary.LittleEndian, &max); err != nil {
			return nil, fmt.Errorf("dictionary: read predicate hint max: %w", err)
		}
		b.SetPredicateHint(TermID(pred), ObjectRange{Min: TermID(min), Max: TermID(max)})
	}

	return b.Build(), nil
}
