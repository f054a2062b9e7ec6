package markdown

import (
	"errors"
	"strings"
	"testing"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

type failingRenderer struct{}

func (failingRenderer) Render(string) (string, error) {
	return "", errors.New("broken")
}

func withRenderer(t *testing.T, width int, r renderer) {
	t.Helper()

	rendererMu.Lock()
	prev, hadPrev := renderers[width]
	renderers[width] = r
	rendererMu.Unlock()

	t.Cleanup(func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[width] = prev
		} else {
			delete(renderers, width)
		}
		rendererMu.Unlock()
	})
}

func TestSafeRender_RecoversFromRendererPanic(t *testing.T) {
	withRenderer(t, 20, panicRenderer{})

	out := SafeRender(20, 0, []byte("hello\n"))
	if string(out) != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", string(out))
	}
}

func TestSafeRender_FallsBackOnError(t *testing.T) {
	withRenderer(t, 18, failingRenderer{})

	out := SafeRender(20, 2, []byte("hello"))
	if string(out) != "  hello" {
		t.Fatalf("expected indented fallback, got %q", string(out))
	}
}

func TestRender_Blank(t *testing.T) {
	for _, input := range []string{"", "  \n\n", "\r\n"} {
		if out := Render(40, 0, []byte(input)); out != nil {
			t.Fatalf("expected nil for %q, got %q", input, out)
		}
	}
}

func TestRender_FormatsMarkdown(t *testing.T) {
	out := string(Render(40, 0, []byte("# Title\n\nsome *text*")))
	if !strings.Contains(out, "Title") || !strings.Contains(out, "text") {
		t.Fatalf("expected rendered content, got %q", out)
	}
}

func TestReflow(t *testing.T) {
	input := "one two three four\nfive\n\n\nsix"

	got := string(Reflow(12, 2, []byte(input)))

	expected := "  one two\n  three four\n  five\n  \n  six"
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}
