package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultMarkerPollInterval = 5 * time.Second

type markerPolledMsg struct {
	value string
	err   error
}

// markerWatcher tracks the parent entity's change marker. The first observed
// value is baseline only; a refresh is requested solely when a later
// observation differs from the previous one.
type markerWatcher struct {
	source   markerSource
	parentID string

	last   string
	primed bool
}

func newMarkerWatcher(source markerSource, parentID string) *markerWatcher {
	return &markerWatcher{source: source, parentID: parentID}
}

// Observe records a marker value and reports whether it changed since the
// previous observation.
func (w *markerWatcher) Observe(value string) bool {
	if !w.primed {
		w.primed = true
		w.last = value
		return false
	}
	if value == w.last {
		return false
	}
	w.last = value
	return true
}

func (w *markerWatcher) PollCmd() tea.Cmd {
	if w == nil || w.source == nil || w.parentID == "" {
		return nil
	}
	source := w.source
	parentID := w.parentID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
		defer cancel()
		value, err := source.Marker(ctx, parentID)
		return markerPolledMsg{value: value, err: err}
	}
}
