package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("New Module", "mock", 100)
	for _, want := range []string{"EduGenius HOTS", "New Module", "mock"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if h := lipgloss.Height(out); h != HeaderHeight {
		t.Errorf("header height = %d, want %d", h, HeaderHeight)
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("x", "", 90)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 90)
	frame := RenderFrame(header, "body", footer, 90, 30)

	if h := lipgloss.Height(frame); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
}

func TestRenderFooter_DropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Generate"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	out := RenderFooter(hints, 40)
	if !strings.Contains(out, "Next field") {
		t.Error("first hint should always fit")
	}
	if strings.Contains(out, "Quit") {
		t.Error("hint past the width should be dropped")
	}
	if h := lipgloss.Height(out); h != FooterHeight {
		t.Errorf("footer height = %d, want %d", h, FooterHeight)
	}

	wide := RenderFooter(hints, 120)
	for _, h := range hints {
		if !strings.Contains(wide, h.Description) {
			t.Errorf("wide footer missing %q", h.Description)
		}
	}
}
