package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/term"
)

const tableCellMaxWidth = 50
const tableCellEllipsis = "..."

var (
	// HeaderStyle underlines table headers.
	HeaderStyle = lipgloss.NewStyle().Underline(true)

	// OverdueStyle marks tasks whose due date has passed.
	OverdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	// SoonDueStyle marks tasks due within the soon-due window.
	SoonDueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// tableViewportWidth returns the width lines are clipped to, or 0 for none.
var tableViewportWidth = func() int {
	width, _ := TerminalSize()
	return width
}

// colorize is swapped out by tests.
var colorize = ColorEnabled

// TerminalSize returns stdout's size, or zeros if stdout is not a terminal.
func TerminalSize() (width, height int) {
	if !IsTerminal(os.Stdout) {
		return 0, 0
	}
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return width, height
}

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers []string
	rows    [][]string
	styles  []*lipgloss.Style
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{
		headers: headers,
		rows:    make([][]string, 0, capacity),
		styles:  make([]*lipgloss.Style, 0, capacity),
	}
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row []string) {
	builder.rows = append(builder.rows, row)
	builder.styles = append(builder.styles, nil)
}

// AddStyledRow appends a row rendered with style when color is enabled.
func (builder *TableBuilder) AddStyledRow(row []string, style lipgloss.Style) {
	builder.rows = append(builder.rows, row)
	builder.styles = append(builder.styles, &style)
}

// Len returns the number of rows added so far.
func (builder *TableBuilder) Len() int {
	return len(builder.rows)
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	if !colorize() {
		return FormatTable(builder.headers, builder.rows)
	}
	return formatTable(builder.headers, builder.rows, &HeaderStyle, builder.styles)
}

// FormatTable renders headers and rows as an aligned table.
func FormatTable(headers []string, rows [][]string) string {
	return formatTable(headers, rows, nil, nil)
}

func formatTable(headers []string, rows [][]string, headerStyle *lipgloss.Style, rowStyles []*lipgloss.Style) string {
	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeTableCell(header)
	}

	normalizedRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		normalizedRow := make([]string, len(row))
		for i, cell := range row {
			normalizedRow[i] = normalizeTableCell(cell)
		}
		normalizedRows = append(normalizedRows, normalizedRow)
	}

	widths := make([]int, len(normalizedHeaders))
	for i, header := range normalizedHeaders {
		widths[i] = displayWidth(header)
	}

	for _, row := range normalizedRows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if displayLen := displayWidth(cell); displayLen > widths[i] {
				widths[i] = displayLen
			}
		}
	}

	viewport := tableViewportWidth()

	var builder strings.Builder
	writeRow := func(row []string, style *lipgloss.Style) {
		var line strings.Builder
		for i, cell := range row {
			line.WriteString(cell)
			if i == len(row)-1 {
				continue
			}
			width := displayWidth(cell)
			if i < len(widths) {
				line.WriteString(strings.Repeat(" ", widths[i]-width+2))
			} else {
				line.WriteString("  ")
			}
		}
		text := strings.TrimRight(line.String(), " ")
		if viewport > 0 && displayWidth(text) > viewport {
			text = truncate.String(text, uint(viewport))
		}
		if style != nil {
			text = style.Render(text)
		}
		builder.WriteString(text)
		builder.WriteByte('\n')
	}

	writeRow(normalizedHeaders, headerStyle)
	for i, row := range normalizedRows {
		var style *lipgloss.Style
		if i < len(rowStyles) {
			style = rowStyles[i]
		}
		writeRow(row, style)
	}

	return builder.String()
}

// TruncateTableCell limits cell width while preserving visible characters.
func TruncateTableCell(value string) string {
	value = normalizeTableCell(value)
	if displayWidth(value) <= tableCellMaxWidth {
		return value
	}
	return truncate.StringWithTail(value, tableCellMaxWidth, tableCellEllipsis)
}

func displayWidth(value string) int {
	return lipgloss.Width(value)
}

func normalizeTableCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}
