package components

import (
	"strings"
	"testing"

	"github.com/abhisek/edugenius/internal/content"
	"github.com/abhisek/edugenius/internal/quiz"
)

func sampleOptions() []quiz.OptionView {
	return []quiz.OptionView{
		{Option: content.Option{Key: "A", Text: "Menurun"}, Mark: quiz.MarkIncorrect, Selected: true},
		{Option: content.Option{Key: "B", Text: "Meningkat"}, Mark: quiz.MarkCorrect},
		{Option: content.Option{Key: "C", Text: "Tetap"}, Mark: quiz.MarkDimmed},
	}
}

func TestOptionList_Move(t *testing.T) {
	l := OptionList{Options: sampleOptions()}
	l.Move(-1)
	if l.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", l.Cursor)
	}
	l.Move(5)
	if l.Cursor != 2 || l.Key() != "C" {
		t.Errorf("cursor = %d key %q, want 2 C", l.Cursor, l.Key())
	}
}

func TestOptionList_ViewMarks(t *testing.T) {
	l := OptionList{Options: sampleOptions(), Answered: true}
	out := l.View()
	for _, want := range []string{"✗ A. Menurun", "✓ B. Meningkat", "C. Tetap"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "▸") {
		t.Error("cursor must not be drawn once answered")
	}
}

func TestProgressBar_Fraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 5, 0},
		{2, 4, 0.5},
		{7, 5, 1},
		{1, 0, 0},
	}
	for _, tt := range tests {
		if got := NewProgressBar("", tt.done, tt.total, 40).Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
	if !strings.Contains(NewProgressBar("Answered", 2, 5, 40).View(), "2/5") {
		t.Error("expected count in view")
	}
}
