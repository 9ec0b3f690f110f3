// Package shacl implements the constraint validator (C7): per-shape
// validators over the triple store, a property-count cache that
// dominates hot-path performance, and the validation report surface.
//
// Grounded on internal/core/index/index.go's flag-bitfield-plus-ordered-
// entry shape for the constraint tag and severity enums, and on
// pkg/vcs/repository.go's construct-then-validate flow for the
// Unloaded->Loaded shape lifecycle.
package shacl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fenilsonani/tickengine/internal/dictionary"
	"github.com/fenilsonani/tickengine/internal/store"
)

// TermID aliases the store's term identifier type.
type TermID = store.TermID

// ConstraintKind tags which of the six supported constraint variants a
// Constraint represents.
type ConstraintKind uint8

const (
	MinCount ConstraintKind = iota
	MaxCount
	Class
	NodeKind
	Datatype
	MemoryBound
)

func (k ConstraintKind) String() string {
	switch k {
	case MinCount:
		return "MinCount"
	case MaxCount:
		return "MaxCount"
	case Class:
		return "Class"
	case NodeKind:
		return "NodeKind"
	case Datatype:
		return "Datatype"
	case MemoryBound:
		return "MemoryBound"
	default:
		return "Unknown"
	}
}

// Severity classifies a validation result.
type Severity uint8

const (
	Info Severity = iota
	Warning
	Violation
	MemoryViolation
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Violation:
		return "Violation"
	case MemoryViolation:
		return "MemoryViolation"
	default:
		return "Unknown"
	}
}

// Constraint is a tagged variant over the six supported checks. Only the
// fields relevant to Kind are populated; the rest are zero.
type Constraint struct {
	Kind ConstraintKind
	Path TermID // the property this constraint applies to

	N int // MIN_COUNT / MAX_COUNT

	Class TermID // CLASS

	NodeKind dictionary.NodeKind // NODE_KIND

	Datatype dictionary.DatatypeID // DATATYPE

	MaxBytes int64 // MEMORY_BOUND
}

// MemorySnapshot reports the observed-vs-allowed memory footprint a
// result was generated against.
type MemorySnapshot struct {
	Current    int64
	Peak       int64
	MaxAllowed int64
	Bounded    bool
}

// Result is one non-conforming (or informational) check outcome.
type Result struct {
	FocusNode TermID
	Path      TermID
	Kind      ConstraintKind
	Severity  Severity
	Message   string
	Memory    MemorySnapshot
}

// Report collects Results accumulated across one or more Validate calls.
type Report struct {
	Results  []Result
	Conforms bool
}

// Render produces a short human-readable dump of the report, used by the
// CLI and by test failure messages — presentation only, it adds no
// validation semantics.
func (r *Report) Render() string {
	if r.Conforms {
		return "conforms: true (0 results)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "conforms: false (%d results)\n", len(r.Results))
	for _, res := range r.Results {
		fmt.Fprintf(&b, "  [%s] focus=%d path=%d kind=%s: %s\n",
			res.Severity, res.FocusNode, res.Path, res.Kind, res.Message)
	}
	return b.String()
}

// append adds a failing check to the report and flips Conforms if the
// severity demands it (Violation and MemoryViolation are the only
// severities that make conforms false, per spec §3).
func (r *Report) append(res Result) {
	r.Results = append(r.Results, res)
	if res.Severity == Violation || res.Severity == MemoryViolation {
		r.Conforms = false
	}
}

// Shape state machine: Unloaded -> Loaded(active=true, constraints=[]).
// There is no terminal state within an engine's lifetime; AddConstraint
// is the only transition within Loaded.
type Shape struct {
	ID          uint32
	TargetClass TermID
	Active      bool
	Constraints []Constraint
}

// Errors mirroring spec §7's InvalidArg/NotFound/Capacity taxonomy as it
// applies to shape registration.
var (
	ErrShapeExists   = errors.New("shacl: shape already registered")
	ErrShapeNotFound = errors.New("shacl: shape not registered")
)
