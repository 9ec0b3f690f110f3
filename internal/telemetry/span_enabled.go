//go:build tickengine_telemetry

package telemetry

import "sync"

// recordingSpan accumulates attributes until End is called, at which
// point it appends its finished Record to the owning tracer.
type recordingSpan struct {
	tracer *recordingTracer
	rec    Record
}

func (s *recordingSpan) SetAttribute(key string, value any) {
	if s.rec.Attributes == nil {
		s.rec.Attributes = make(map[string]any)
	}
	s.rec.Attributes[key] = value
}

func (s *recordingSpan) End(endCycles uint64) {
	s.rec.EndCycles = endCycles
	s.rec.Cycles = endCycles - s.rec.StartCycles
	s.tracer.mu.Lock()
	s.tracer.records = append(s.tracer.records, s.rec)
	s.tracer.mu.Unlock()
}

// recordingTracer is the real span recorder, active only when the
// tickengine_telemetry build tag is set.
type recordingTracer struct {
	mu      sync.Mutex
	records []Record
}

func (t *recordingTracer) Start(name string, startCycles uint64) Span {
	return &recordingSpan{tracer: t, rec: Record{Name: name, StartCycles: startCycles}}
}

func (t *recordingTracer) Records() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// NewTracer returns the build's active Tracer implementation. With the
// tickengine_telemetry build tag set, this retains every finished span
// unless the caller explicitly asked for telemetry off, in which case it
// falls back to the zero-cost no-op.
func NewTracer(enabled bool) Tracer {
	if !enabled {
		return noopTracer{}
	}
	return &recordingTracer{}
}

// Enabled reports whether this build retains span records.
const Enabled = true
