package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	app, topBar                      lipgloss.Style
	columnTitle                      lipgloss.Style
	body                             lipgloss.Style
	panel, panelFocused              lipgloss.Style
	statusBar, statusSeg, statusHint lipgloss.Style
	listItem                         lipgloss.Style
	warnBanner                       lipgloss.Style
	toastSuccess, toastError         lipgloss.Style
}

func newStyles() styles {
	base := lipgloss.NewStyle()
	panelBorder := lipgloss.NormalBorder()
	focusedBorder := lipgloss.DoubleBorder()

	return styles{
		app:          base,
		topBar:       base.Padding(0, 1).Bold(true),
		columnTitle:  base.Bold(true).Padding(0, 1),
		body:         base,
		panel:        base.BorderStyle(panelBorder),
		panelFocused: base.BorderStyle(focusedBorder),
		statusBar:    base.Padding(0, 1),
		statusSeg:    base.Padding(0, 1).MarginRight(1),
		statusHint:   base.Faint(true),
		listItem:     base.Padding(0, 1),
		warnBanner:   base.Padding(0, 1).Bold(true).Foreground(lipgloss.Color("214")),
		toastSuccess: base.Padding(0, 1).Foreground(lipgloss.Color("42")),
		toastError:   base.Padding(0, 1).Bold(true).Foreground(lipgloss.Color("196")),
	}
}
