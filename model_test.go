package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *model {
	t.Helper()
	store := newTestStore(t)
	seedTestOpportunity(t, store)
	return newModel(store, &uiConfig{}, "OPP-1", nil)
}

func TestUpdateFetchFailureClearsRows(t *testing.T) {
	m := newTestModel(t)
	qty := 5.0
	stock := 3.0

	_, _ = m.Update(rowsLoadedMsg{
		rows: []remoteRow{{ID: "LINE-1", Quantity: &qty, StockAvailable: &stock}},
		seq:  1,
	})
	require.Len(t, m.rows, 1)
	require.True(t, m.anyWarning)

	_, _ = m.Update(rowsLoadedMsg{
		err: &remoteError{Op: "fetch line items", Message: "backend down"},
		seq: 2,
	})
	require.Empty(t, m.rows)
	require.False(t, m.anyWarning)
	require.False(t, m.loading)
}

func TestUpdateStaleFetchLeavesStateUntouched(t *testing.T) {
	m := newTestModel(t)

	_, _ = m.Update(rowsLoadedMsg{rows: []remoteRow{{ID: "LINE-2"}}, seq: 2})
	require.Len(t, m.rows, 1)

	_, _ = m.Update(rowsLoadedMsg{rows: []remoteRow{{ID: "LINE-1"}, {ID: "LINE-3"}}, seq: 1})
	require.Len(t, m.rows, 1)
	require.Equal(t, "LINE-2", m.rows[0].id)
}

func TestUpdateStaleErrorDoesNotClearRows(t *testing.T) {
	m := newTestModel(t)

	_, _ = m.Update(rowsLoadedMsg{rows: []remoteRow{{ID: "LINE-2"}}, seq: 2})
	_, _ = m.Update(rowsLoadedMsg{
		err: &remoteError{Op: "fetch line items", Message: "backend down"},
		seq: 1,
	})
	require.Len(t, m.rows, 1)
}

func TestUpdateRoleFlagReplansColumns(t *testing.T) {
	m := newTestModel(t)
	require.Len(t, m.itemsCol.specs, 6)

	_, _ = m.Update(roleFlagLoadedMsg{elevated: true})
	require.True(t, m.viewer.elevated)
	require.Len(t, m.itemsCol.specs, 7)
	require.Equal(t, actionViewProduct, m.itemsCol.specs[6].actionName)

	_, _ = m.Update(roleFlagLoadedMsg{
		elevated: false,
		err:      &remoteError{Op: "load role flag", Message: "no active session"},
	})
	require.False(t, m.viewer.elevated)
	require.Len(t, m.itemsCol.specs, 6)
}

func TestUpdateDisplayNameKeepsValueOnError(t *testing.T) {
	m := newTestModel(t)

	_, _ = m.Update(displayNameLoadedMsg{name: "Pat Doe"})
	require.Equal(t, "Pat Doe", m.viewer.displayName)

	_, _ = m.Update(displayNameLoadedMsg{
		err: &remoteError{Op: "load display name", Message: "no active session"},
	})
	require.Equal(t, "Pat Doe", m.viewer.displayName)
}

func TestUpdateMarkerChangeRefreshesExactlyOnce(t *testing.T) {
	m := newTestModel(t)
	_ = m.binding.Subscribe("OPP-1")
	base := m.binding.nextSeq

	// First observation is baseline only.
	_, _ = m.Update(markerPolledMsg{value: "0"})
	require.Equal(t, base, m.binding.nextSeq)
	require.False(t, m.loading)

	_, _ = m.Update(markerPolledMsg{value: "1"})
	require.Equal(t, base+1, m.binding.nextSeq)
	require.True(t, m.loading)

	m.loading = false
	_, _ = m.Update(markerPolledMsg{value: "1"})
	require.Equal(t, base+1, m.binding.nextSeq)
	require.False(t, m.loading)
}

func TestUpdateMarkerPollErrorDoesNotRefresh(t *testing.T) {
	m := newTestModel(t)
	_ = m.binding.Subscribe("OPP-1")
	base := m.binding.nextSeq

	_, _ = m.Update(markerPolledMsg{err: &remoteError{Op: "load change marker", Message: "gone"}})
	require.Equal(t, base, m.binding.nextSeq)
	require.False(t, m.loading)

	// The first successful value after a failed poll is still baseline-only.
	_, _ = m.Update(markerPolledMsg{value: "0"})
	require.Equal(t, base, m.binding.nextSeq)
}

func TestUpdateProductDetailFocus(t *testing.T) {
	m := newTestModel(t)
	detail := productDetail{ID: "PROD-1", Name: "Widget"}

	_, _ = m.Update(productDetailMsg{ref: "PROD-1", detail: detail, focus: true})
	require.Equal(t, int(focusPreview), m.focus)

	m.focus = int(focusItems)
	_, _ = m.Update(productDetailMsg{ref: "PROD-1", detail: detail})
	require.Equal(t, int(focusItems), m.focus)
}
