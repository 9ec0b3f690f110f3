package telemetry

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTracer_NoopByDefault(t *testing.T) {
	tr := NewTracer(true)
	require.False(t, Enabled)

	span := tr.Start("engine_ask", 100)
	span.SetAttribute("plan", "getHighValueCustomers")
	span.End(142)

	require.Empty(t, tr.Records())
}

func TestNewSummary_StatusAndCompliance(t *testing.T) {
	passing := NewSummary("suite", 10, 5, 5, 0, 3.2, 0)
	require.Equal(t, "pass", passing.Status)
	require.True(t, passing.SevenTickCompliant)

	failing := NewSummary("suite", 10, 5, 3, 2, 12.0, 4)
	require.Equal(t, "fail", failing.Status)
	require.False(t, failing.SevenTickCompliant)
}

func TestEmit_WritesCompactJSON(t *testing.T) {
	summary := NewSummary("getHighValueCustomers", 1000, 8, 8, 0, 6.5, 0)
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, summary))

	var decoded BenchmarkSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, summary, decoded)
}
