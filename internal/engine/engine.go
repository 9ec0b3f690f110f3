// Package engine wires the Arena (C1), Store (C3), Dictionary (C4),
// Kernel library (C5), Query Plan Executor (C6), Constraint Validator
// (C7), and Telemetry (C8) components into the single handle type spec
// §6's external interfaces describe: engine_create/destroy/add_triple/
// ask, query_execute, shape_register/constraint_add/validate/validate_all.
//
// Grounded on pkg/vcs/repository.go's Repository type (one struct owning
// every subsystem a command needs, constructed once and passed around)
// and on internal/pack/hyperpack.go's use of golang.org/x/sync/errgroup
// for fanning out independent concurrent work.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/fenilsonani/tickengine/internal/arena"
	"github.com/fenilsonani/tickengine/internal/config"
	"github.com/fenilsonani/tickengine/internal/cycles"
	"github.com/fenilsonani/tickengine/internal/dictionary"
	"github.com/fenilsonani/tickengine/internal/kernel"
	"github.com/fenilsonani/tickengine/internal/planner"
	"github.com/fenilsonani/tickengine/internal/shacl"
	"github.com/fenilsonani/tickengine/internal/store"
	"github.com/fenilsonani/tickengine/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

// Sentinel errors mirroring spec §7's error taxonomy.
var (
	ErrInvalidArg    = errors.New("engine: invalid argument")
	ErrNotFound      = errors.New("engine: not found")
	ErrCapacity      = arena.ErrCapacity
	ErrCorruption    = errors.New("engine: corrupted state")
	ErrAlreadyExists = shacl.ErrShapeExists
)

// Engine is one self-contained instance: its own arena, store,
// dictionary, plan table, shape registry, and telemetry root span.
// Per spec §5, multiple Engines may run concurrently with no shared
// mutable state other than the optional process-wide cycle registers.
type Engine struct {
	arena    *arena.Arena
	store    *store.Store
	dict     *dictionary.Dictionary
	exec     *planner.Executor
	shapes   *shacl.Validator
	budget   *cycles.Budget
	tracer   telemetry.Tracer
	rootSpan telemetry.Span
}

// Create constructs an Engine from opts, allocating its arena and
// triple store up front (spec: "Engine construction allocates; engine
// destruction releases the arena").
func Create(opts ...config.Option) (*Engine, error) {
	o := config.New(opts...)

	a, err := arena.Create(o.ArenaCapacity, 0)
	if err != nil {
		return nil, fmt.Errorf("engine: create arena: %w", err)
	}

	st, err := store.New(a, o.MaxSubjects, o.MaxPredicates, o.MaxObjects, store.TermID(o.TypePredicate))
	if err != nil {
		return nil, fmt.Errorf("engine: create store: %w", err)
	}

	dict := dictionary.NewBuilder("", 0, 0).Build()

	tracer := telemetry.NewTracer(o.TelemetryEnabled)
	root := tracer.Start("engine", cycles.Read())

	e := &Engine{
		arena:    a,
		store:    st,
		dict:     dict,
		exec:     planner.NewExecutor(st, dict, store.TermID(o.TypePredicate), planner.Table()),
		shapes:   shacl.NewValidator(st, dict, store.TermID(o.TypePredicate)),
		budget:   cycles.NewBudget(false),
		tracer:   tracer,
		rootSpan: root,
	}
	return e, nil
}

// WithDictionary swaps in a pre-built dictionary, for callers who load
// one via dictionary.Load rather than interning terms ad hoc.
func (e *Engine) WithDictionary(d *dictionary.Dictionary) {
	e.dict = d
	e.exec = planner.NewExecutor(e.store, d, e.shapes.RDFType(), planner.Table())
	e.shapes.SetDictionary(d)
}

// Destroy releases the engine's arena. The Engine must not be used
// after Destroy returns.
func (e *Engine) Destroy() {
	e.rootSpan.End(cycles.Read())
	e.arena.Destroy()
}

// AddTriple inserts (s, p, o). Out-of-range term IDs surface as
// ErrInvalidArg.
func (e *Engine) AddTriple(s, p, o uint32) error {
	var err error
	e.budget.Track("engine_add_triple", cycles.PrimitiveCeiling, func() {
		err = e.store.AddTriple(store.TermID(s), store.TermID(p), store.TermID(o))
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidArg) {
			return ErrInvalidArg
		}
		return err
	}
	return nil
}

// Ask is a bounded-time membership test over (s, p, o).
func (e *Engine) Ask(s, p, o uint32) bool {
	return e.store.AskPattern(store.TermID(s), store.TermID(p), store.TermID(o))
}

// QueryExecute dispatches plan by name and writes its results into out,
// returning the row count. Returns ErrNotFound for an unregistered plan
// name, matching spec §6's `NotFound` contract for query_execute.
func (e *Engine) QueryExecute(plan string, out []kernel.Row, maxResults int) (int, error) {
	n := e.exec.Execute(plan, out, maxResults)
	if n < 0 {
		return 0, ErrNotFound
	}
	return n, nil
}

// ShapeRegister registers a new shape targeting targetClass. Returns
// ErrAlreadyExists if shapeID is already registered.
func (e *Engine) ShapeRegister(shapeID uint32, targetClass uint32) error {
	_, err := e.shapes.RegisterShape(shapeID, store.TermID(targetClass))
	if errors.Is(err, shacl.ErrShapeExists) {
		return ErrAlreadyExists
	}
	return err
}

// ConstraintAdd appends a constraint to a registered shape.
func (e *Engine) ConstraintAdd(shapeID uint32, c shacl.Constraint) error {
	if err := e.shapes.AddConstraint(shapeID, c); err != nil {
		if errors.Is(err, shacl.ErrShapeNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Validate runs every registered shape against node, collecting each
// failing shape's first violation into report (non-short-circuiting
// across shapes).
func (e *Engine) Validate(node uint32, report *shacl.Report) bool {
	return e.shapes.Validate(store.TermID(node), report)
}

// ValidateAll runs every registered shape against node, stopping at the
// first shape that fails (spec §4.6's short-circuiting global check).
func (e *Engine) ValidateAll(node uint32, report *shacl.Report) bool {
	return e.shapes.ValidateAll(store.TermID(node), report)
}

// Budget exposes the engine's cycle-budget counters for callers that
// want to inspect per-operation ceilings directly (e.g. the benchmark
// harness's seven_tick_compliant summary field).
func (e *Engine) Budget() *cycles.Budget { return e.budget }

// Tracer exposes the engine's span tracer.
func (e *Engine) Tracer() telemetry.Tracer { return e.tracer }

// RunParallel runs n independent engines (constructed by newEngine)
// concurrently, each executing work, per spec §5's "multiple independent
// engines may run in parallel threads." Any single engine's error
// cancels the others' context and is returned first.
func RunParallel(ctx context.Context, n int, newEngine func(i int) (*Engine, error), work func(ctx context.Context, e *Engine) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			e, err := newEngine(i)
			if err != nil {
				return err
			}
			defer e.Destroy()
			return work(gctx, e)
		})
	}
	return g.Wait()
}
