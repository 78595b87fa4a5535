package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type column interface {
	SetSize(width, height int)
	Update(msg tea.Msg) (column, tea.Cmd)
	View(styles styles, focused bool) string
	Title() string
}

// warnMarker prefixes the quantity cell of rows whose stock delta went
// negative.
const warnMarker = "! "

// lineItemTableColumn renders the planned columns over the projected rows.
// Data columns become table columns; action columns become key bindings so
// the grid emits rowActionMsg values keyed by action name, not position.
type lineItemTableColumn struct {
	title  string
	table  table.Model
	width  int
	height int

	specs []columnSpec
	rows  []displayRow

	onAction    func(action string, row displayRow) tea.Cmd
	onHighlight func(row displayRow) tea.Cmd
}

func newLineItemTableColumn(title string) *lineItemTableColumn {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(12),
	)
	tStyles := table.DefaultStyles()
	tStyles.Header = lipgloss.NewStyle().
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Padding(0, 1)
	tStyles.Cell = lipgloss.NewStyle().Padding(0, 1)
	tStyles.Selected = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	t.SetStyles(tStyles)

	return &lineItemTableColumn{
		title: title,
		table: t,
	}
}

func (c *lineItemTableColumn) SetActionFunc(fn func(action string, row displayRow) tea.Cmd) {
	c.onAction = fn
}

func (c *lineItemTableColumn) SetHighlightFunc(fn func(row displayRow) tea.Cmd) {
	c.onHighlight = fn
}

// SetPlan installs a freshly planned column list. Rows are re-rendered so a
// role change reshapes the grid without refetching.
func (c *lineItemTableColumn) SetPlan(specs []columnSpec) {
	c.specs = specs
	c.table.SetColumns(c.tableColumns())
	c.renderRows()
}

func (c *lineItemTableColumn) SetRows(rows []displayRow) {
	c.rows = rows
	c.renderRows()
	if len(rows) > 0 && c.table.Cursor() >= len(rows) {
		c.table.SetCursor(0)
	}
}

func (c *lineItemTableColumn) dataSpecs() []columnSpec {
	var out []columnSpec
	for _, spec := range c.specs {
		if spec.kind != kindAction {
			out = append(out, spec)
		}
	}
	return out
}

func (c *lineItemTableColumn) actionSpecs() []columnSpec {
	var out []columnSpec
	for _, spec := range c.specs {
		if spec.kind == kindAction {
			out = append(out, spec)
		}
	}
	return out
}

func (c *lineItemTableColumn) tableColumns() []table.Column {
	specs := c.dataSpecs()
	if len(specs) == 0 {
		return nil
	}
	widths := c.columnWidths(len(specs))
	cols := make([]table.Column, len(specs))
	for i, spec := range specs {
		cols[i] = table.Column{Title: spec.label, Width: widths[i]}
	}
	return cols
}

func (c *lineItemTableColumn) columnWidths(count int) []int {
	widths := make([]int, count)
	available := c.width - 2 - count*2
	if available < count*8 {
		available = count * 8
	}
	// The product-name column takes the slack left by the numeric ones.
	numeric := 12
	for i := range widths {
		widths[i] = numeric
	}
	if count > 0 {
		first := available - numeric*(count-1)
		if first < 16 {
			first = 16
		}
		widths[0] = first
	}
	return widths
}

func (c *lineItemTableColumn) renderRows() {
	specs := c.dataSpecs()
	tableRows := make([]table.Row, len(c.rows))
	for i, row := range c.rows {
		cells := make(table.Row, len(specs))
		for j, spec := range specs {
			cells[j] = c.cellValue(spec, row)
		}
		tableRows[i] = cells
	}
	c.table.SetRows(tableRows)
}

func (c *lineItemTableColumn) cellValue(spec columnSpec, row displayRow) string {
	var value string
	switch spec.fieldKey {
	case "productName":
		value = row.productName
	case "unitPrice":
		value = formatCurrency(row.unitPrice)
	case "totalPrice":
		value = formatCurrency(row.totalPrice)
	case "quantity":
		value = formatCount(row.quantity)
	case "stockAvailable":
		value = formatCount(row.stockAvailable)
	}
	if spec.warnStyled && row.lowStock {
		value = warnMarker + value
	}
	return value
}

func (c *lineItemTableColumn) SelectedRow() (displayRow, bool) {
	if len(c.rows) == 0 {
		return displayRow{}, false
	}
	cursor := c.table.Cursor()
	if cursor < 0 || cursor >= len(c.rows) {
		return displayRow{}, false
	}
	return c.rows[cursor], true
}

func (c *lineItemTableColumn) SetSize(width, height int) {
	if width < 40 {
		width = 40
	}
	if height < 6 {
		height = 6
	}
	c.width = width
	c.height = height
	c.table.SetColumns(c.tableColumns())
	c.renderRows()
	c.table.SetHeight(height - 3)
}

func (c *lineItemTableColumn) Update(msg tea.Msg) (column, tea.Cmd) {
	prev := c.table.Cursor()
	var cmds []tea.Cmd

	var cmd tea.Cmd
	c.table, cmd = c.table.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && c.onAction != nil {
		for _, spec := range c.actionSpecs() {
			if keyMsg.String() != spec.keyHint {
				continue
			}
			if row, ok := c.SelectedRow(); ok {
				if run := c.onAction(spec.actionName, row); run != nil {
					cmds = append(cmds, run)
				}
			}
			break
		}
	}

	if c.table.Cursor() != prev && c.onHighlight != nil {
		if row, ok := c.SelectedRow(); ok {
			if run := c.onHighlight(row); run != nil {
				cmds = append(cmds, run)
			}
		}
	}

	return c, tea.Batch(cmds...)
}

func (c *lineItemTableColumn) View(s styles, focused bool) string {
	title := s.columnTitle.Render(c.title)
	var body string
	if len(c.rows) == 0 {
		body = s.listItem.Faint(true).Render("No line items")
	} else {
		body = c.table.View()
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	if focused {
		return s.panelFocused.Width(c.width).Render(content)
	}
	return s.panel.Width(c.width).Render(content)
}

func (c *lineItemTableColumn) Title() string {
	return c.title
}

type previewColumn struct {
	title   string
	width   int
	height  int
	content string
	view    viewport.Model
}

func newPreviewColumn(width int) *previewColumn {
	vp := viewport.New(width, 20)
	return &previewColumn{
		title: "Detail",
		view:  vp,
	}
}

func (p *previewColumn) SetContent(content string) {
	p.content = content
	p.view.SetContent(content)
	p.view.GotoTop()
}

func (p *previewColumn) SetSize(width, height int) {
	p.width = width
	if height < 3 {
		height = 3
	}
	p.height = height
	p.view.Width = width - 2
	p.view.Height = height - 3
}

func (p *previewColumn) Update(msg tea.Msg) (column, tea.Cmd) {
	var cmd tea.Cmd
	p.view, cmd = p.view.Update(msg)
	return p, cmd
}

func (p *previewColumn) View(s styles, focused bool) string {
	header := s.columnTitle.Render(p.title)
	body := header + "\n" + p.view.View()
	if focused {
		return s.panelFocused.Width(p.width).Render(body)
	}
	return s.panel.Width(p.width).Render(body)
}

func (p *previewColumn) Title() string {
	return p.title
}

func formatCurrency(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// formatCount renders an optional count, keeping the cell blank when the
// source record omitted the value.
func formatCount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
