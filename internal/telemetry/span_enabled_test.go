//go:build tickengine_telemetry

package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordingTracer_CapturesFinishedSpans(t *testing.T) {
	tr := NewTracer(true)
	require.True(t, Enabled)

	span := tr.Start("validate", 1000)
	span.SetAttribute("shape_id", uint32(1))
	span.End(1049)

	recs := tr.Records()
	require.Len(t, recs, 1)
	require.Equal(t, "validate", recs[0].Name)
	require.Equal(t, uint64(49), recs[0].Cycles)
	require.Equal(t, uint32(1), recs[0].Attributes["shape_id"])
}

func TestNewTracer_DisabledFallsBackToNoop(t *testing.T) {
	tr := NewTracer(false)

	span := tr.Start("validate", 1000)
	span.End(1049)

	require.Empty(t, tr.Records())
}
