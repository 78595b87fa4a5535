package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type rowDeletedMsg struct {
	rowID   string
	product string
	err     error
}

// actionDispatcher routes row-scoped actions to their side effects. Deletes
// are confirmed-then-refreshed: the row set is only resynchronized after the
// sink acknowledges, never speculatively. Navigation is fire-and-forget.
type actionDispatcher struct {
	binding *rowBinding
	sink    mutationSink
	nav     navigator
	notify  notifier
	events  *eventLog
}

func newActionDispatcher(binding *rowBinding, sink mutationSink, nav navigator, notify notifier, events *eventLog) *actionDispatcher {
	return &actionDispatcher{
		binding: binding,
		sink:    sink,
		nav:     nav,
		notify:  notify,
		events:  events,
	}
}

// Dispatch starts the side effect for a named row action. Unrecognized
// action names produce no notification, navigation or refresh; they only
// leave a diagnostic event behind.
func (d *actionDispatcher) Dispatch(action string, row displayRow) tea.Cmd {
	switch action {
	case actionDeleteLine:
		d.events.Emit("delete_requested", map[string]string{"row": row.id})
		return d.deleteCmd(row)
	case actionViewProduct:
		d.events.Emit("view_product", map[string]string{"ref": row.productRef})
		if d.nav == nil {
			return nil
		}
		return d.nav.NavigateToDetail(row.productRef)
	default:
		d.events.Emit("action_ignored", map[string]string{"action": action})
		return nil
	}
}

// Handle finishes a delete: one notification either way, and a refresh only
// after success.
func (d *actionDispatcher) Handle(msg rowDeletedMsg) tea.Cmd {
	if msg.err != nil {
		d.events.Emit("delete_failed", map[string]string{"row": msg.rowID, "error": msg.err.Error()})
		if d.notify != nil {
			d.notify.Notify("Delete failed", remoteMessage(msg.err), notifyError)
		}
		return nil
	}
	d.events.Emit("delete_succeeded", map[string]string{"row": msg.rowID})
	if d.notify != nil {
		message := "Line item removed."
		if msg.product != "" {
			message = msg.product + " removed."
		}
		d.notify.Notify("Line item deleted", message, notifySuccess)
	}
	return d.binding.Refresh()
}

func (d *actionDispatcher) deleteCmd(row displayRow) tea.Cmd {
	sink := d.sink
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
		defer cancel()
		err := sink.DeleteRow(ctx, row.id)
		return rowDeletedMsg{rowID: row.id, product: row.productName, err: err}
	}
}
