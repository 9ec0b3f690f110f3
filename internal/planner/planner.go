// Package planner implements the query plan executor (C6): a fixed
// op-tape interpreter that dispatches named plans against register
// buffers and the kernel library.
//
// Grounded on internal/turbo/database.go's named-tuning-constant table
// style (ShardCount, BatchSize, ...) generalized into a plan table, and
// on internal/kernel's wrapper-over-store dispatch for how ops invoke
// kernels.
package planner

import (
	"strconv"

	"github.com/fenilsonani/tickengine/internal/dictionary"
	"github.com/fenilsonani/tickengine/internal/kernel"
	"github.com/fenilsonani/tickengine/internal/store"
)

// MaxRows bounds every register buffer's capacity, mirroring the spec's
// S7T_SQL_MAX_ROWS ceiling.
const MaxRows = 4096

// TermID aliases the store's term identifier type.
type TermID = store.TermID

// OpKind tags which kernel an Op invokes.
type OpKind uint8

const (
	OpScanByType OpKind = iota
	OpScanByPredicate
	OpFilterGTF32
	OpHashJoin
	OpProject
	// OpLoadValues resolves each subject in register In1's literal object
	// along predicate PredID into a float, via the dictionary's term
	// name. It is not one of the spec's five kernels; plans that need
	// numeric comparisons (filter_gt_f32) use it as the glue that turns
	// a scanned subject list into the value array filter_gt_f32 expects.
	OpLoadValues
)

// Op is one micro-operation in a plan's tape: it names a kernel, its
// input/output register indices, and any literal parameters.
type Op struct {
	Kind OpKind

	// register indices, meaning depends on Kind
	In1, In2 int
	Out      int

	TypeID    TermID  // OpScanByType
	PredID    TermID  // OpScanByPredicate / OpLoadValues
	Threshold float32 // OpFilterGTF32
}

// Plan is a named, statically generated op-tape; every plan runs against
// the same fixed register file. Plans are produced by plans_generated.go's init(),
// standing in for the offline plan generator spec §6 names as an
// external collaborator.
type Plan struct {
	Name string
	Ops  []Op
}

// registers is the scratch space one plan execution allocates: eight ID
// buffers and eight parallel float buffers, each sized to MaxRows. Each
// register additionally tracks how many of its slots are populated.
type registers struct {
	ids    [8][]TermID
	idLen  [8]int
	values [8][]float32
	valLen [8]int
}

func newRegisters() *registers {
	r := &registers{}
	for i := range r.ids {
		r.ids[i] = make([]TermID, MaxRows)
		r.values[i] = make([]float32, MaxRows)
	}
	return r
}

// Executor dispatches named plans against a store and kernel library.
type Executor struct {
	store   *store.Store
	dict    *dictionary.Dictionary
	rdfType TermID
	plans   map[string]*Plan
}

// NewExecutor constructs an Executor bound to one store, resolving plan
// names against table.
func NewExecutor(st *store.Store, dict *dictionary.Dictionary, rdfType TermID, table map[string]*Plan) *Executor {
	return &Executor{store: st, dict: dict, rdfType: rdfType, plans: table}
}

// Execute dispatches plan name, runs its op tape to completion, and
// writes the resulting rows into out (up to maxResults), returning the
// row count. An unknown plan name returns -1, matching spec §4.5.
func (e *Executor) Execute(name string, out []kernel.Row, maxResults int) int {
	plan, ok := e.plans[name]
	if !ok {
		return -1
	}
	regs := newRegisters()

	for _, op := range plan.Ops {
		switch op.Kind {
		case OpScanByType:
			cap := len(regs.ids[op.Out])
			n := kernel.ScanByType(e.store, op.TypeID, regs.ids[op.Out], cap)
			regs.idLen[op.Out] = n

		case OpScanByPredicate:
			cap := len(regs.ids[op.Out])
			n := kernel.ScanByPredicate(e.store, op.PredID, regs.ids[op.Out], cap)
			regs.idLen[op.Out] = n

		case OpLoadValues:
			subjects := regs.ids[op.In1][:regs.idLen[op.In1]]
			n := e.loadValues(subjects, op.PredID, regs.ids[op.Out], regs.values[op.Out])
			regs.idLen[op.Out] = n
			regs.valLen[op.Out] = n

		case OpFilterGTF32:
			count := regs.valLen[op.In1]
			idxBuf := make([]int, count)
			n := kernel.FilterGTF32(regs.values[op.In1][:count], count, op.Threshold, idxBuf)
			for i := 0; i < n && i < len(regs.ids[op.Out]); i++ {
				regs.ids[op.Out][i] = regs.ids[op.In1][idxBuf[i]]
			}
			regs.idLen[op.Out] = n

		case OpHashJoin:
			left := regs.ids[op.In1][:regs.idLen[op.In1]]
			right := regs.ids[op.In2][:regs.idLen[op.In2]]
			n := kernel.HashJoin(left, right, regs.ids[op.Out])
			regs.idLen[op.Out] = n

		case OpProject:
			dst := out
			if maxResults < len(dst) {
				dst = dst[:max(maxResults, 0)]
			}
			return kernel.Project(regs.ids[op.In1][:regs.idLen[op.In1]], dst)
		}
	}
	return 0
}

// loadValues resolves each subject's literal object along pred into a
// float by parsing the dictionary term name, copying the subject and
// its value into parallel output slots. Subjects with no matching
// triple or a non-numeric literal are skipped.
func (e *Executor) loadValues(subjects []TermID, pred TermID, outIDs []TermID, outVals []float32) int {
	n := 0
	maxObj := TermID(e.store.MaxObjects())
	for _, sub := range subjects {
		if n >= len(outIDs) {
			break
		}
		for o := TermID(0); o < maxObj; o++ {
			if !e.store.AskPattern(sub, pred, o) {
				continue
			}
			name, ok := e.dict.Name(o)
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(name, 32)
			if err != nil {
				continue
			}
			outIDs[n] = sub
			outVals[n] = float32(v)
			n++
			break
		}
	}
	return n
}
