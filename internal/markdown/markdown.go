// Package markdown renders task descriptions for the terminal.
package markdown

import (
	"strings"
	"sync"

	internalstrings "github.com/amonks/hypertask/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/reflow/wordwrap"
)

type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Render formats markdown text for terminal output. It returns nil when the
// input is blank.
func Render(width, indent int, input []byte) []byte {
	return SafeRender(width, indent, input)
}

// SafeRender is Render, falling back to the unformatted text if the
// renderer fails or panics.
func SafeRender(width, indent int, input []byte) []byte {
	value, ok := prepare(input)
	if !ok {
		return nil
	}
	renderWidth := contentWidth(width, indent)

	rendered := value
	if formatted, ok := renderWith(markdownRenderer(renderWidth), value); ok {
		rendered = formatted
	}
	return finish(rendered, indent)
}

// Reflow word-wraps paragraphs without interpreting markdown. It is used
// when output is not a terminal.
func Reflow(width, indent int, input []byte) []byte {
	value, ok := prepare(input)
	if !ok {
		return nil
	}
	renderWidth := contentWidth(width, indent)

	paragraphs := strings.Split(value, "\n\n")
	wrapped := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		normalized := internalstrings.NormalizeWhitespace(paragraph)
		if normalized == "" {
			continue
		}
		wrapped = append(wrapped, wordwrap.String(normalized, renderWidth))
	}
	return finish(strings.Join(wrapped, "\n\n"), indent)
}

func prepare(input []byte) (string, bool) {
	if len(input) == 0 {
		return "", false
	}
	value := internalstrings.NormalizeNewlines(string(input))
	value = internalstrings.TrimTrailingNewlines(value)
	if internalstrings.IsBlank(value) {
		return "", false
	}
	return value, true
}

func contentWidth(width, indent int) int {
	if width < 1 {
		width = 1
	}
	if indent < 0 {
		indent = 0
	}
	if width-indent < 1 {
		return 1
	}
	return width - indent
}

func finish(rendered string, indent int) []byte {
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if internalstrings.IsBlank(rendered) {
		return nil
	}
	return []byte(internalstrings.IndentBlock(rendered, indent))
}

func renderWith(r renderer, value string) (out string, ok bool) {
	if r == nil {
		return "", false
	}
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()
	formatted, err := r.Render(value)
	if err != nil {
		return "", false
	}
	return formatted, true
}

func markdownRenderer(width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	style.ImageText.Format = "Image: {{.text}} ->"
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}
