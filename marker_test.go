package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type scriptedMarkerSource struct {
	value string
	err   error
	polls int
}

func (s *scriptedMarkerSource) Marker(context.Context, string) (string, error) {
	s.polls++
	return s.value, s.err
}

func TestObserveFirstValueIsBaselineOnly(t *testing.T) {
	w := newMarkerWatcher(&scriptedMarkerSource{}, "opp-1")
	require.False(t, w.Observe("t0"))
}

func TestObserveReportsChangeOnce(t *testing.T) {
	w := newMarkerWatcher(&scriptedMarkerSource{}, "opp-1")
	require.False(t, w.Observe("t0"))
	require.True(t, w.Observe("t1"))
	require.False(t, w.Observe("t1"))
	require.True(t, w.Observe("t2"))
}

func TestObserveUnchangedValueNeverFires(t *testing.T) {
	w := newMarkerWatcher(&scriptedMarkerSource{}, "opp-1")
	require.False(t, w.Observe("t0"))
	require.False(t, w.Observe("t0"))
	require.False(t, w.Observe("t0"))
}

func TestPollCmdReadsSourceMarker(t *testing.T) {
	source := &scriptedMarkerSource{value: "rev-7"}
	w := newMarkerWatcher(source, "opp-1")

	cmd := w.PollCmd()
	require.NotNil(t, cmd)

	msg, ok := cmd().(markerPolledMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	require.Equal(t, "rev-7", msg.value)
	require.Equal(t, 1, source.polls)
}

func TestPollCmdWithoutParentIsNil(t *testing.T) {
	require.Nil(t, newMarkerWatcher(&scriptedMarkerSource{}, "").PollCmd())
	require.Nil(t, newMarkerWatcher(nil, "opp-1").PollCmd())
}
