package shacl

import (
	"fmt"

	"github.com/fenilsonani/tickengine/internal/dictionary"
	"github.com/fenilsonani/tickengine/internal/store"
)

// Per spec §3: shape memory footprint is bounded by these constants.
const (
	MaxMemoryPerNode  int64 = 1 << 20        // 1 MiB
	MaxMemoryPerGraph int64 = 64 << 20       // 64 MiB
	bytesPerTriple    int64 = 16             // approximate per-edge footprint used for MEMORY_BOUND estimates
)

// Validator evaluates registered shapes against a triple store, caching
// property counts to keep repeated cardinality checks sub-linear.
type Validator struct {
	store *store.Store
	dict  *dictionary.Dictionary
	rdfType TermID

	order  []uint32
	shapes map[uint32]*Shape

	cache      PropertyCountCache
	lastGen    uint64
	graphBytes int64
}

// NewValidator constructs a Validator bound to one store and dictionary.
// rdfType is the predicate ID the store and dictionary agree denotes
// rdf:type.
func NewValidator(st *store.Store, dict *dictionary.Dictionary, rdfType TermID) *Validator {
	return &Validator{
		store:   st,
		dict:    dict,
		rdfType: rdfType,
		shapes:  make(map[uint32]*Shape),
	}
}

// RegisterShape transitions a shape from Unloaded to Loaded(active=true,
// constraints=[]).
func (v *Validator) RegisterShape(id uint32, targetClass TermID) (*Shape, error) {
	if _, exists := v.shapes[id]; exists {
		return nil, ErrShapeExists
	}
	s := &Shape{ID: id, TargetClass: targetClass, Active: true}
	v.shapes[id] = s
	v.order = append(v.order, id)
	return s, nil
}

// AddConstraint appends a constraint to a registered shape and accounts
// its estimated memory footprint against the per-graph bound
// (MaxMemoryPerNode is not checked here). A constraint that would exceed
// MaxMemoryPerGraph is rejected with an error rather than silently
// accepted, since the bound is a hard engine-construction invariant, not
// a per-validate-call check.
func (v *Validator) AddConstraint(shapeID uint32, c Constraint) error {
	s, ok := v.shapes[shapeID]
	if !ok {
		return ErrShapeNotFound
	}
	total := v.graphBytes + estimateConstraintBytes(c)
	if total > MaxMemoryPerGraph {
		return fmt.Errorf("shacl: graph memory bound exceeded: %d > %d", total, MaxMemoryPerGraph)
	}
	s.Constraints = append(s.Constraints, c)
	v.graphBytes = total
	return nil
}

func estimateConstraintBytes(c Constraint) int64 {
	// A constraint's own bookkeeping footprint, independent of the node
	// data it will later check — a small fixed struct overhead.
	return 64
}

// checkInvalidate watches the store's generation counter and wipes the
// cache the first time it observes a mutation, implementing "invalidated
// wholesale on any store mutation" without the store needing to know the
// cache exists.
func (v *Validator) checkInvalidate() {
	if gen := v.store.Generation(); gen != v.lastGen {
		v.cache.Invalidate()
		v.lastGen = gen
	}
}

// PropertyCount returns the number of distinct objects node has along
// pred, consulting (and populating) the cache.
func (v *Validator) PropertyCount(node, pred TermID) int {
	v.checkInvalidate()
	if c, ok := v.cache.Get(node, pred); ok {
		return c
	}
	c := v.countExact(node, pred)
	v.cache.Set(node, pred, c)
	return c
}

// RDFType returns the predicate ID this validator treats as rdf:type.
func (v *Validator) RDFType() TermID { return v.rdfType }

// SetDictionary swaps in a dictionary for NODE_KIND/DATATYPE lookups and
// predicate-hinted object ranges, for callers that load one after
// construction (e.g. dictionary.Load).
func (v *Validator) SetDictionary(d *dictionary.Dictionary) { v.dict = d }

// Warmup pre-populates the property-count cache for the given pairs,
// typically called once after a bulk load.
func (v *Validator) Warmup(pairs []Pair) {
	v.checkInvalidate()
	v.cache.Warmup(v.countExact, pairs)
}

func (v *Validator) objectRange(pred TermID) dictionary.ObjectRange {
	if v.dict != nil {
		if hint, ok := v.dict.PredicateHint(pred); ok {
			return hint
		}
	}
	return dictionary.ObjectRange{Min: 0, Max: TermID(v.store.MaxObjects())}
}

// countExact scans the full object range for (node, pred) and returns
// the exact distinct-object count.
func (v *Validator) countExact(node, pred TermID) int {
	return v.countUpTo(node, pred, -1, nil)
}

// countAtMost scans only until limit distinct objects have been
// observed, for MAX_COUNT's early-exit contract (spec: "early exit as
// soon as n+1 is observed"). A negative limit means "no early exit."
// It bypasses the cache: a truncated scan is not the node's true count.
func (v *Validator) countAtMost(node, pred TermID, limit int) int {
	return v.countUpTo(node, pred, limit, nil)
}

// countUpTo is shared by countExact/countAtMost and the CLASS, NODE_KIND
// and DATATYPE checks in evalConstraint: it walks
// the predicate's hinted object range and calls collect (if non-nil)
// for every matching object, stopping early once limit matches have
// been seen (limit < 0 disables early exit).
func (v *Validator) countUpTo(node, pred TermID, limit int, collect func(o TermID)) int {
	rng := v.objectRange(pred)
	count := 0
	for o := rng.Min; o < rng.Max; o++ {
		if !v.store.AskPattern(node, pred, o) {
			continue
		}
		count++
		if collect != nil {
			collect(o)
		}
		if limit >= 0 && count >= limit {
			break
		}
	}
	return count
}

// Validate evaluates every registered shape against node, continuing
// past a failing shape so the report holds one result for each failing
// shape (not just the first). Within a shape, evaluation still stops at
// the first failing constraint. Returns true iff all shapes conform.
func (v *Validator) Validate(node TermID, report *Report) bool {
	v.checkInvalidate()
	conforms := true
	for _, id := range v.order {
		s := v.shapes[id]
		if !v.validateShape(s, node, report) {
			conforms = false
		}
	}
	return conforms
}

// ValidateAll is the short-circuiting global check: it stops at the
// first shape whose validator returns false, matching spec §4.6's
// "validate_all(node) short-circuits across shapes in registration
// order." Use Validate when a complete report is needed; ValidateAll
// when only the fastest possible boolean verdict matters.
func (v *Validator) ValidateAll(node TermID, report *Report) bool {
	v.checkInvalidate()
	for _, id := range v.order {
		s := v.shapes[id]
		if !v.validateShape(s, node, report) {
			return false
		}
	}
	return true
}

// validateShape is the conjunction (short-circuit AND) of one shape's
// constraint checks, preceded by the implicit target-class check that
// makes an out-of-scope node trivially conform.
func (v *Validator) validateShape(s *Shape, node TermID, report *Report) bool {
	if !s.Active {
		return true
	}
	if !v.store.AskPattern(node, v.rdfType, s.TargetClass) {
		return true // node is out of scope for this shape
	}
	for _, c := range s.Constraints {
		if res, ok := v.evalConstraint(s, c, node); !ok {
			if report != nil {
				report.append(res)
			}
			return false // short-circuit: no further constraints for this shape
		}
	}
	return true
}

// evalConstraint checks one constraint against node, returning the
// Result to record (only meaningful when ok is false) and whether the
// constraint passed.
func (v *Validator) evalConstraint(s *Shape, c Constraint, node TermID) (Result, bool) {
	switch c.Kind {
	case MinCount:
		n := v.PropertyCount(node, c.Path)
		if n >= c.N {
			return Result{}, true
		}
		return v.violation(node, c, fmt.Sprintf("expected at least %d value(s), found %d", c.N, n)), false

	case MaxCount:
		n := v.countAtMost(node, c.Path, c.N+1)
		if n <= c.N {
			return Result{}, true
		}
		return v.violation(node, c, fmt.Sprintf("expected at most %d value(s), found at least %d", c.N, n)), false

	case Class:
		ok := true
		var badObj TermID
		v.countUpTo(node, c.Path, -1, func(o TermID) {
			if ok && !v.store.AskPattern(o, v.rdfType, c.Class) {
				ok = false
				badObj = o
			}
		})
		if ok {
			return Result{}, true
		}
		return v.violation(node, c, fmt.Sprintf("object %d is not rdf:type %d", badObj, c.Class)), false

	case NodeKind:
		ok := true
		var badObj TermID
		v.countUpTo(node, c.Path, -1, func(o TermID) {
			if !ok || v.dict == nil {
				return
			}
			if c.NodeKind != dictionary.KindAny && v.dict.Kind(o) != c.NodeKind {
				ok = false
				badObj = o
			}
		})
		if ok {
			return Result{}, true
		}
		return v.violation(node, c, fmt.Sprintf("object %d is not of node kind %s", badObj, c.NodeKind)), false

	case Datatype:
		ok := true
		var badObj TermID
		v.countUpTo(node, c.Path, -1, func(o TermID) {
			if !ok || v.dict == nil {
				return
			}
			if dt, found := v.dict.Datatype(o); !found || dt != c.Datatype {
				ok = false
				badObj = o
			}
		})
		if ok {
			return Result{}, true
		}
		return v.violation(node, c, fmt.Sprintf("object %d does not have datatype %d", badObj, c.Datatype)), false

	case MemoryBound:
		n := v.PropertyCount(node, c.Path)
		current := int64(n) * bytesPerTriple
		if current <= c.MaxBytes {
			return Result{}, true
		}
		res := v.violation(node, c, fmt.Sprintf("property memory %d exceeds bound %d", current, c.MaxBytes))
		res.Severity = MemoryViolation
		res.Memory = MemorySnapshot{Current: current, Peak: current, MaxAllowed: c.MaxBytes, Bounded: true}
		return res, false

	default:
		return Result{}, true
	}
}

func (v *Validator) violation(node TermID, c Constraint, msg string) Result {
	return Result{
		FocusNode: node,
		Path:      c.Path,
		Kind:      c.Kind,
		Severity:  Violation,
		Message:   msg,
		Memory:    MemorySnapshot{MaxAllowed: MaxMemoryPerNode, Bounded: true},
	}
}
