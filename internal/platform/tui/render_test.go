package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/biome-crossing/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorBlue)
	s.DrawText(0, 1, "plain")

	out := RenderScreen(s)
	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2", len(lines))
	}
	if lines[0] != "abcd  " {
		t.Errorf("row 0 = %q, want %q", lines[0], "abcd  ")
	}
	if lines[1] != "plain " {
		t.Errorf("row 1 = %q, want %q", lines[1], "plain ")
	}
}

func TestRenderSpanDefaultIsUnstyled(t *testing.T) {
	if got := renderSpan(core.ColorDefault, "xyz"); got != "xyz" {
		t.Errorf("renderSpan(default) = %q, want unstyled text", got)
	}
	if got := renderSpan(core.ColorCount, "xyz"); got != "xyz" {
		t.Errorf("renderSpan(out of palette) = %q, want unstyled text", got)
	}
}
