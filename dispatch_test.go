package main

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type recordedNote struct {
	title    string
	message  string
	severity notifySeverity
}

type recordingNotifier struct {
	notes []recordedNote
}

func (n *recordingNotifier) Notify(title, message string, severity notifySeverity) {
	n.notes = append(n.notes, recordedNote{title: title, message: message, severity: severity})
}

type recordingNavigator struct {
	refs []string
}

func (n *recordingNavigator) NavigateToDetail(ref string) tea.Cmd {
	n.refs = append(n.refs, ref)
	return nil
}

type scriptedSink struct {
	err     error
	deleted []string
}

func (s *scriptedSink) DeleteRow(_ context.Context, rowID string) error {
	s.deleted = append(s.deleted, rowID)
	return s.err
}

type dispatchHarness struct {
	source   *scriptedRowSource
	binding  *rowBinding
	sink     *scriptedSink
	nav      *recordingNavigator
	notifier *recordingNotifier
	d        *actionDispatcher
}

func newDispatchHarness(t *testing.T, sinkErr error) *dispatchHarness {
	t.Helper()
	h := &dispatchHarness{
		source:   &scriptedRowSource{},
		sink:     &scriptedSink{err: sinkErr},
		nav:      &recordingNavigator{},
		notifier: &recordingNotifier{},
	}
	h.binding = newRowBinding(h.source)
	msg := h.binding.Subscribe("opp-1")().(rowsLoadedMsg)
	require.True(t, h.binding.Accept(msg))
	h.source.fetches = 0
	h.d = newActionDispatcher(h.binding, h.sink, h.nav, h.notifier, nil)
	return h
}

func TestDeleteSuccessNotifiesOnceAndRefreshesOnce(t *testing.T) {
	h := newDispatchHarness(t, nil)
	row := displayRow{id: "LINE-1", productName: "Analytics Add-on"}

	cmd := h.d.Dispatch(actionDeleteLine, row)
	require.NotNil(t, cmd)

	deleted, ok := cmd().(rowDeletedMsg)
	require.True(t, ok)
	require.NoError(t, deleted.err)
	require.Equal(t, []string{"LINE-1"}, h.sink.deleted)

	refresh := h.d.Handle(deleted)
	require.NotNil(t, refresh)
	_ = refresh()

	require.Equal(t, 1, h.source.fetches)
	require.Len(t, h.notifier.notes, 1)
	require.Equal(t, notifySuccess, h.notifier.notes[0].severity)
	require.Equal(t, "Analytics Add-on removed.", h.notifier.notes[0].message)
	require.Empty(t, h.nav.refs)
}

func TestDeleteFailureNotifiesErrorWithoutRefresh(t *testing.T) {
	h := newDispatchHarness(t, &remoteError{Op: "delete", Message: "row is locked"})
	row := displayRow{id: "LINE-1", productName: "Analytics Add-on"}

	deleted, ok := h.d.Dispatch(actionDeleteLine, row)().(rowDeletedMsg)
	require.True(t, ok)
	require.Error(t, deleted.err)

	require.Nil(t, h.d.Handle(deleted))
	require.Zero(t, h.source.fetches)
	require.Len(t, h.notifier.notes, 1)
	require.Equal(t, notifyError, h.notifier.notes[0].severity)
	require.Equal(t, "row is locked", h.notifier.notes[0].message)
}

func TestViewProductNavigatesWithProductRef(t *testing.T) {
	h := newDispatchHarness(t, nil)
	row := displayRow{id: "LINE-2", productRef: "PROD-200"}

	cmd := h.d.Dispatch(actionViewProduct, row)
	require.Nil(t, cmd)
	require.Equal(t, []string{"PROD-200"}, h.nav.refs)
	require.Empty(t, h.notifier.notes)
	require.Zero(t, h.source.fetches)
	require.Empty(t, h.sink.deleted)
}

func TestUnknownActionIsIgnored(t *testing.T) {
	h := newDispatchHarness(t, nil)
	row := displayRow{id: "LINE-1"}

	require.Nil(t, h.d.Dispatch("archive_line", row))
	require.Empty(t, h.notifier.notes)
	require.Empty(t, h.nav.refs)
	require.Empty(t, h.sink.deleted)
	require.Zero(t, h.source.fetches)
}

func TestDeleteSuccessFallbackMessage(t *testing.T) {
	h := newDispatchHarness(t, nil)
	deleted := h.d.Dispatch(actionDeleteLine, displayRow{id: "LINE-9"})().(rowDeletedMsg)

	_ = h.d.Handle(deleted)
	require.Len(t, h.notifier.notes, 1)
	require.Equal(t, "Line item removed.", h.notifier.notes[0].message)
}

func TestRemoteMessageUnwrapsCollaboratorError(t *testing.T) {
	err := &remoteError{Op: "fetch", Message: "timed out"}
	require.Equal(t, "timed out", remoteMessage(err))
	require.Equal(t, "fetch: timed out", err.Error())
	require.Equal(t, "", remoteMessage(nil))
}
