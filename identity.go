package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// The role flag and display name load independently; each message updates
// only its own slice of viewer state, whatever order they land in.

type roleFlagLoadedMsg struct {
	elevated bool
	err      error
}

type displayNameLoadedMsg struct {
	name string
	err  error
}

func loadRoleFlagCmd(source identitySource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
		defer cancel()
		elevated, err := source.RoleFlag(ctx)
		if err != nil {
			// Fail closed: an unknown viewer never sees the
			// privileged column.
			return roleFlagLoadedMsg{elevated: false, err: err}
		}
		return roleFlagLoadedMsg{elevated: elevated}
	}
}

func loadDisplayNameCmd(source identitySource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
		defer cancel()
		name, err := source.DisplayName(ctx)
		if err != nil {
			return displayNameLoadedMsg{err: err}
		}
		return displayNameLoadedMsg{name: name}
	}
}
