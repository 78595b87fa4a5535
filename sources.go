package main

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// remoteRow is a line item as delivered by the row source. Quantity and
// StockAvailable are pointers because the remote record may omit them; the
// projection treats absence as zero for arithmetic but keeps the blank in
// the rendered cell.
type remoteRow struct {
	ID             string
	ProductName    string
	ProductRef     string
	UnitPrice      float64
	TotalPrice     float64
	Quantity       *float64
	StockAvailable *float64
}

type rowSource interface {
	FetchRows(ctx context.Context, parentID string) ([]remoteRow, error)
}

type mutationSink interface {
	DeleteRow(ctx context.Context, rowID string) error
}

type identitySource interface {
	RoleFlag(ctx context.Context) (bool, error)
	DisplayName(ctx context.Context) (string, error)
}

// markerSource exposes a single comparable value for the parent entity. The
// watcher polls it and requests a refresh when the value moves away from the
// previously observed one.
type markerSource interface {
	Marker(ctx context.Context, parentID string) (string, error)
}

type navigator interface {
	NavigateToDetail(ref string) tea.Cmd
}

type notifySeverity int

const (
	notifySuccess notifySeverity = iota
	notifyError
)

type notifier interface {
	Notify(title, message string, severity notifySeverity)
}

// remoteError carries the human-readable message a collaborator supplied
// alongside a failure.
type remoteError struct {
	Op      string
	Message string
}

func (e *remoteError) Error() string {
	if strings.TrimSpace(e.Op) == "" {
		return e.Message
	}
	return e.Op + ": " + e.Message
}

// remoteMessage extracts the display message from a collaborator error,
// falling back to the plain error text.
func remoteMessage(err error) string {
	if err == nil {
		return ""
	}
	var re *remoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return err.Error()
}
