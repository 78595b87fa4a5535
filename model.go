package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/timer"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusArea int

const (
	focusItems focusArea = iota
	focusPreview
)

type rowActionMsg struct {
	name string
	row  displayRow
}

type opportunityNameMsg struct {
	name string
	err  error
}

type keyMap struct {
	quit       key.Binding
	nextFocus  key.Binding
	prevFocus  key.Binding
	refresh    key.Binding
	deleteLine key.Binding
	viewItem   key.Binding
	copyRef    key.Binding
	toggleHelp key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		nextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		prevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev panel"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		deleteLine: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete line"),
		),
		viewItem: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view product"),
		),
		copyRef: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy product ref"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.refresh,
		k.deleteLine,
		k.viewItem,
		k.copyRef,
		k.nextFocus,
		k.quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.nextFocus, k.prevFocus},
		{k.refresh, k.deleteLine, k.viewItem, k.copyRef},
		{k.toggleHelp, k.quit},
	}
}

type model struct {
	width  int
	height int

	styles styles
	keys   keyMap
	help   help.Model

	opportunityID   string
	opportunityName string
	labels          labelSet

	store      *dealStore
	binding    *rowBinding
	dispatcher *actionDispatcher
	watcher    *markerWatcher
	identity   identitySource
	events     *eventLog

	itemsCol   *lineItemTableColumn
	previewCol *previewColumn
	columns    []column
	focus      int

	viewer     viewerContext
	rows       []displayRow
	anyWarning bool

	spinner  spinner.Model
	loading  bool
	logs     viewport.Model
	logLines []string

	pollInterval time.Duration
	pollTimer    timer.Model
	pollActive   bool

	toastMessage  string
	toastSeverity notifySeverity
	toastExpires  time.Time
}

func newModel(store *dealStore, cfg *uiConfig, opportunityID string, events *eventLog) *model {
	m := &model{
		styles:        newStyles(),
		keys:          newKeyMap(),
		help:          help.New(),
		opportunityID: strings.TrimSpace(opportunityID),
		labels:        labelsForLocale(cfg.Locale),
		store:         store,
		identity:      store,
		events:        events,
		pollInterval:  cfg.pollInterval(),
		logLines: []string{
			"[INFO] Loading line items…",
			"[TIP] Press d to delete the highlighted line, r to refresh.",
		},
	}

	nav := &storeNavigator{store: store}
	m.binding = newRowBinding(store)
	m.watcher = newMarkerWatcher(store, m.opportunityID)
	m.dispatcher = newActionDispatcher(m.binding, store, nav, m, events)

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	m.itemsCol = newLineItemTableColumn("Line items")
	m.itemsCol.SetActionFunc(func(action string, row displayRow) tea.Cmd {
		return func() tea.Msg { return rowActionMsg{name: action, row: row} }
	})
	m.itemsCol.SetHighlightFunc(func(row displayRow) tea.Cmd {
		return nav.PreviewDetail(row.productRef)
	})
	m.itemsCol.SetPlan(planColumns(m.viewer, m.labels))

	m.previewCol = newPreviewColumn(36)
	m.previewCol.SetContent("Select a line and press v to view its product.\n")

	m.columns = []column{m.itemsCol, m.previewCol}
	m.focus = int(focusItems)

	m.logs = viewport.New(80, 5)
	m.refreshLogs()

	return m
}

// Notify is the notification sink handed to the dispatcher: a toast plus a
// log line, teacher-style.
func (m *model) Notify(title, message string, severity notifySeverity) {
	text := strings.TrimSpace(title)
	if strings.TrimSpace(message) != "" {
		text += ": " + strings.TrimSpace(message)
	}
	m.setToast(text, severity, 5*time.Second)
	prefix := "[OK]"
	if severity == notifyError {
		prefix = "[ERROR]"
	}
	m.appendLog(prefix + " " + text)
}

func (m *model) Init() tea.Cmd {
	m.loading = true
	cmds := []tea.Cmd{
		m.spinner.Tick,
		m.binding.Subscribe(m.opportunityID),
		loadRoleFlagCmd(m.identity),
		loadDisplayNameCmd(m.identity),
		m.loadOpportunityNameCmd(),
	}
	if cmd := m.startMarkerTimer(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *model) startMarkerTimer() tea.Cmd {
	if m.watcher == nil || m.opportunityID == "" {
		return nil
	}
	m.pollTimer = timer.NewWithInterval(m.pollInterval, time.Second)
	m.pollActive = true
	return m.pollTimer.Init()
}

func (m *model) loadOpportunityNameCmd() tea.Cmd {
	if m.store == nil || m.opportunityID == "" {
		return nil
	}
	store := m.store
	id := m.opportunityID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
		defer cancel()
		name, err := store.OpportunityName(ctx, id)
		return opportunityNameMsg{name: name, err: err}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if tick, ok := msg.(spinner.TickMsg); ok && m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if tickMsg, ok := msg.(timer.TickMsg); ok && m.pollActive {
		var cmd tea.Cmd
		m.pollTimer, cmd = m.pollTimer.Update(tickMsg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if startStop, ok := msg.(timer.StartStopMsg); ok && m.pollActive {
		var cmd tea.Cmd
		m.pollTimer, cmd = m.pollTimer.Update(startStop)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if timeout, ok := msg.(timer.TimeoutMsg); ok && m.pollActive && timeout.ID == m.pollTimer.ID() {
		m.pollActive = false
		if cmd := m.watcher.PollCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.startMarkerTimer(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch message := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = message.Width, message.Height
		setMarkdownWordWrap(m.width/3 - 4)
		m.applyLayout()
		return m, tea.Batch(cmds...)

	case tea.FocusMsg:
		// Terminal focus regained: resynchronize, the rows may have
		// changed while the window was in the background.
		if cmd := m.binding.Refresh(); cmd != nil {
			m.loading = true
			cmds = append(cmds, m.spinner.Tick, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if handled, cmd := m.handleGlobalKey(message); handled {
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)
		}
	}

	if m.focus >= 0 && m.focus < len(m.columns) {
		col := m.columns[m.focus]
		var cmd tea.Cmd
		m.columns[m.focus], cmd = col.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch message := msg.(type) {
	case rowsLoadedMsg:
		if cmd := m.handleRowsLoaded(message); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case rowActionMsg:
		if cmd := m.dispatcher.Dispatch(message.name, message.row); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case rowDeletedMsg:
		if cmd := m.dispatcher.Handle(message); cmd != nil {
			m.loading = true
			cmds = append(cmds, m.spinner.Tick, cmd)
		}
	case roleFlagLoadedMsg:
		m.handleRoleFlagLoaded(message)
	case displayNameLoadedMsg:
		m.handleDisplayNameLoaded(message)
	case markerPolledMsg:
		if cmd := m.handleMarkerPolled(message); cmd != nil {
			m.loading = true
			cmds = append(cmds, m.spinner.Tick, cmd)
		}
	case productDetailMsg:
		m.handleProductDetail(message)
	case opportunityNameMsg:
		if message.err == nil && strings.TrimSpace(message.name) != "" {
			m.opportunityName = message.name
		}
	}

	m.applyLayout()
	return m, tea.Batch(cmds...)
}

func (m *model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return true, tea.Quit
	case key.Matches(msg, m.keys.nextFocus):
		m.focus = (m.focus + 1) % len(m.columns)
		return true, nil
	case key.Matches(msg, m.keys.prevFocus):
		m.focus = (m.focus - 1 + len(m.columns)) % len(m.columns)
		return true, nil
	case key.Matches(msg, m.keys.refresh):
		if cmd := m.binding.Refresh(); cmd != nil {
			m.loading = true
			m.appendLog("[INFO] Manual refresh requested.")
			return true, tea.Batch(m.spinner.Tick, cmd)
		}
		return true, nil
	case key.Matches(msg, m.keys.copyRef):
		m.copySelectedProductRef()
		return true, nil
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		m.applyLayout()
		return true, nil
	}
	return false, nil
}

func (m *model) handleRowsLoaded(msg rowsLoadedMsg) tea.Cmd {
	if !m.binding.Accept(msg) {
		// A newer fetch already landed; this stale completion must
		// not overwrite it.
		m.events.Emit("stale_fetch_dropped", nil)
		return nil
	}
	m.loading = false
	if msg.err != nil {
		m.rows = nil
		m.anyWarning = false
		m.itemsCol.SetRows(nil)
		m.events.Emit("fetch_failed", map[string]string{"error": msg.err.Error()})
		m.appendLog("[ERROR] Loading line items failed: " + remoteMessage(msg.err))
		return nil
	}
	rows, anyWarning := projectRows(msg.rows)
	m.rows = rows
	m.anyWarning = anyWarning
	m.itemsCol.SetRows(rows)
	m.events.Emit("rows_loaded", map[string]string{"count": fmt.Sprintf("%d", len(rows))})
	return nil
}

func (m *model) handleRoleFlagLoaded(msg roleFlagLoadedMsg) {
	if msg.err != nil {
		m.events.Emit("identity_fallback", map[string]string{"error": msg.err.Error()})
		m.appendLog("[WARN] Role lookup failed; treating viewer as standard user.")
	}
	m.viewer.elevated = msg.elevated
	m.itemsCol.SetPlan(planColumns(m.viewer, m.labels))
}

func (m *model) handleDisplayNameLoaded(msg displayNameLoadedMsg) {
	if msg.err != nil {
		m.events.Emit("identity_fallback", map[string]string{"error": msg.err.Error()})
		return
	}
	m.viewer.displayName = msg.name
}

func (m *model) handleMarkerPolled(msg markerPolledMsg) tea.Cmd {
	if msg.err != nil {
		m.events.Emit("marker_poll_failed", map[string]string{"error": msg.err.Error()})
		return nil
	}
	if !m.watcher.Observe(msg.value) {
		return nil
	}
	m.appendLog("[INFO] Opportunity changed elsewhere; refreshing.")
	return m.binding.Refresh()
}

func (m *model) handleProductDetail(msg productDetailMsg) {
	if msg.err != nil {
		m.appendLog("[ERROR] Loading product failed: " + remoteMessage(msg.err))
		m.previewCol.SetContent("Product unavailable: " + remoteMessage(msg.err) + "\n")
		return
	}
	m.previewCol.SetContent(productCard(msg.detail, m.labels))
	if msg.focus {
		m.focus = int(focusPreview)
	}
}

func (m *model) copySelectedProductRef() {
	row, ok := m.itemsCol.SelectedRow()
	if !ok || strings.TrimSpace(row.productRef) == "" {
		return
	}
	if err := clipboard.WriteAll(row.productRef); err != nil {
		m.appendLog("[WARN] Clipboard unavailable: " + err.Error())
		return
	}
	m.setToast("Copied "+row.productRef, notifySuccess, 3*time.Second)
}

func (m *model) appendLog(line string) {
	if line == "" {
		return
	}
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > 200 {
		m.logLines = m.logLines[len(m.logLines)-200:]
	}
	m.refreshLogs()
}

func (m *model) refreshLogs() {
	m.logs.SetContent(strings.Join(m.logLines, "\n"))
	m.logs.GotoBottom()
}

func (m *model) setToast(msg string, severity notifySeverity, duration time.Duration) {
	trimmed := strings.TrimSpace(msg)
	if trimmed == "" {
		m.toastMessage = ""
		m.toastExpires = time.Time{}
		return
	}
	if duration <= 0 {
		duration = 5 * time.Second
	}
	m.toastMessage = trimmed
	m.toastSeverity = severity
	m.toastExpires = time.Now().Add(duration)
}

func (m *model) applyLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	logsHeight := 5
	chrome := 1 + 1 + logsHeight + 2 // top bar, status, logs, borders
	if m.anyWarning {
		chrome++
	}
	columnHeight := m.height - chrome
	if columnHeight < 8 {
		columnHeight = 8
	}
	previewWidth := m.width / 3
	if previewWidth < 30 {
		previewWidth = 30
	}
	itemsWidth := m.width - previewWidth - 4
	m.itemsCol.SetSize(itemsWidth, columnHeight)
	m.previewCol.SetSize(previewWidth, columnHeight)
	m.logs.Width = m.width - 2
	m.logs.Height = logsHeight
}

func (m *model) View() string {
	var builder strings.Builder

	title := "dealdesk • Opportunity line items"
	if m.opportunityName != "" {
		title += " • " + m.opportunityName
	}
	if m.viewer.displayName != "" {
		title += " • " + m.viewer.displayName
	}
	builder.WriteString(m.styles.topBar.Width(m.width).Render(title))
	builder.WriteRune('\n')

	if m.anyWarning {
		banner := m.styles.warnBanner.Width(m.width).
			Render("Some lines exceed the available stock.")
		builder.WriteString(banner)
		builder.WriteRune('\n')
	}

	var colViews []string
	for i, col := range m.columns {
		colViews = append(colViews, col.View(m.styles, i == m.focus))
	}
	builder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, colViews...))
	builder.WriteRune('\n')

	logTitle := m.styles.columnTitle.Render("Activity")
	builder.WriteString(m.styles.panel.Width(m.width - 2).Render(logTitle + "\n" + m.logs.View()))
	builder.WriteRune('\n')

	builder.WriteString(m.renderStatus())

	return m.styles.app.Render(builder.String())
}

func (m *model) renderStatus() string {
	var segments []string
	if m.loading {
		segments = append(segments, m.spinner.View()+" loading")
	}
	segments = append(segments, fmt.Sprintf("%d lines", len(m.rows)))
	if m.viewer.elevated {
		segments = append(segments, "elevated viewer")
	}
	if m.toastMessage != "" && time.Now().Before(m.toastExpires) {
		style := m.styles.toastSuccess
		if m.toastSeverity == notifyError {
			style = m.styles.toastError
		}
		segments = append(segments, style.Render(m.toastMessage))
	}

	m.help.Width = m.width - 4
	left := m.styles.statusBar.Render(strings.Join(segments, " • "))
	helpView := m.help.View(m.keys)
	if helpView == "" {
		return left
	}
	return left + "\n" + m.styles.statusHint.Render(helpView)
}
