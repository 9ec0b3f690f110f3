package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	o := New()
	require.Equal(t, DefaultMaxSubjects, o.MaxSubjects)
	require.Equal(t, DefaultMaxPredicates, o.MaxPredicates)
	require.Equal(t, DefaultMaxObjects, o.MaxObjects)
	require.Equal(t, DefaultArenaCapacity, o.ArenaCapacity)
	require.True(t, o.TelemetryEnabled)
}

func TestNew_TelemetryCanBeDisabled(t *testing.T) {
	o := New(TelemetryEnabled(false))
	require.False(t, o.TelemetryEnabled)
}

func TestNew_OptionsOverrideDefaults(t *testing.T) {
	o := New(
		MaxSubjects(64),
		MaxPredicates(16),
		MaxObjects(64),
		ArenaCapacity(1<<20),
		TelemetryEnabled(true),
		TypePredicate(7),
	)
	require.Equal(t, 64, o.MaxSubjects)
	require.Equal(t, 16, o.MaxPredicates)
	require.Equal(t, 64, o.MaxObjects)
	require.Equal(t, 1<<20, o.ArenaCapacity)
	require.True(t, o.TelemetryEnabled)
	require.Equal(t, uint32(7), o.TypePredicate)
}
