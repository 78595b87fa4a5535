package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultFetchTimeout = 10 * time.Second

type rowsLoadedMsg struct {
	rows []remoteRow
	err  error
	seq  uint64
}

// rowBinding owns the subscription to the row source. Every fetch carries a
// monotonically increasing sequence number; a result whose sequence is older
// than the last applied one is a stale in-flight completion and must be
// dropped, so state always reflects the newest response ("last response
// wins").
type rowBinding struct {
	source   rowSource
	parentID string
	timeout  time.Duration

	nextSeq uint64
	applied uint64
}

func newRowBinding(source rowSource) *rowBinding {
	return &rowBinding{source: source, timeout: defaultFetchTimeout}
}

// Subscribe records the parent id and issues the initial fetch. An empty
// parent id yields an empty result rather than an error.
func (b *rowBinding) Subscribe(parentID string) tea.Cmd {
	b.parentID = parentID
	return b.fetchCmd()
}

// Refresh re-issues the last subscription. Calling it before Subscribe, or
// after subscribing to an empty id, is a safe no-op.
func (b *rowBinding) Refresh() tea.Cmd {
	if b == nil || b.parentID == "" {
		return nil
	}
	return b.fetchCmd()
}

// Accept reports whether a loaded message is current. Stale results are
// rejected and must not touch state.
func (b *rowBinding) Accept(msg rowsLoadedMsg) bool {
	if msg.seq < b.applied {
		return false
	}
	b.applied = msg.seq
	return true
}

func (b *rowBinding) fetchCmd() tea.Cmd {
	b.nextSeq++
	seq := b.nextSeq
	parentID := b.parentID
	if parentID == "" {
		return func() tea.Msg {
			return rowsLoadedMsg{seq: seq}
		}
	}
	source := b.source
	timeout := b.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		rows, err := source.FetchRows(ctx, parentID)
		return rowsLoadedMsg{rows: rows, err: err, seq: seq}
	}
}
