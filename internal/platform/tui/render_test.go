package tui

import (
	"testing"

	"github.com/vovakirdan/tui-quest/internal/core"
)

func TestRenderScreenPlainMatchesString(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(1, 0, "Level 1/4")
	s.DrawBox(core.NewRect(0, 1, 4, 2), core.ColorDefault)

	if got, expected := RenderScreen(s), s.String(); got != expected {
		t.Errorf("RenderScreen() = %q, expected %q", got, expected)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("styleFor(200).Render() = %q, expected %q", got, "x")
	}
}
