package quiz

import (
	"testing"

	"github.com/abhisek/edugenius/internal/content"
)

func testContent() *content.GeneratedContent {
	opts := []content.Option{
		{Key: "A", Text: "Konduksi"},
		{Key: "B", Text: "Konveksi"},
		{Key: "C", Text: "Radiasi"},
		{Key: "D", Text: "Isolasi"},
	}
	return &content.GeneratedContent{
		Questions: []content.Question{
			{ID: 1, Stimulus: "s1", QuestionText: "q1", Options: opts, CorrectAnswer: "B", Explanation: "e1"},
			{ID: 2, Stimulus: "s2", QuestionText: "q2", Options: opts, CorrectAnswer: "C", Explanation: "e2"},
		},
	}
}

func TestApply_FirstSelectionSticks(t *testing.T) {
	q := New(testContent())

	q = q.Apply(SelectOption{QuestionID: 1, Key: "A"})
	q = q.Apply(SelectOption{QuestionID: 1, Key: "B"})

	got, ok := q.Selected(1)
	if !ok || got != "A" {
		t.Fatalf("Selected(1) = %q, %v; want A", got, ok)
	}
	if q.Answered(2) {
		t.Fatal("question 2 must stay unanswered")
	}
	if q.AnsweredCount() != 1 {
		t.Fatalf("AnsweredCount() = %d", q.AnsweredCount())
	}
}

func TestApply_IgnoresUnknownTargets(t *testing.T) {
	q := New(testContent())

	q = q.Apply(SelectOption{QuestionID: 9, Key: "A"})
	q = q.Apply(SelectOption{QuestionID: 1, Key: "E"})

	if q.AnsweredCount() != 0 {
		t.Fatalf("expected no answers, got %d", q.AnsweredCount())
	}
}

func TestApply_ToggleOnlyWhenAnswered(t *testing.T) {
	q := New(testContent())

	q = q.Apply(ToggleExplanation{QuestionID: 1})
	if q.ExplanationVisible(1) {
		t.Fatal("toggle must be ignored while unanswered")
	}

	q = q.Apply(SelectOption{QuestionID: 1, Key: "B"})
	for i, want := range []bool{true, false, true} {
		q = q.Apply(ToggleExplanation{QuestionID: 1})
		if q.ExplanationVisible(1) != want {
			t.Fatalf("toggle %d: visible = %v, want %v", i, q.ExplanationVisible(1), want)
		}
	}
	if sel, _ := q.Selected(1); sel != "B" {
		t.Fatalf("toggling changed the answer to %q", sel)
	}
}

func TestApply_DoesNotMutatePrevious(t *testing.T) {
	before := New(testContent())
	after := before.Apply(SelectOption{QuestionID: 1, Key: "C"})

	if before.Answered(1) {
		t.Fatal("previous snapshot was mutated")
	}
	if !after.Answered(1) {
		t.Fatal("new snapshot missing the selection")
	}
}

func TestMarks_WrongAnswer(t *testing.T) {
	q := New(testContent()).Apply(SelectOption{QuestionID: 1, Key: "A"})
	v := q.View()[0]

	want := map[string]Mark{"A": MarkIncorrect, "B": MarkCorrect, "C": MarkDimmed, "D": MarkDimmed}
	for _, o := range v.Options {
		if o.Mark != want[o.Key] {
			t.Errorf("option %s: mark = %s, want %s", o.Key, o.Mark, want[o.Key])
		}
	}
	if v.IsCorrect {
		t.Error("expected IsCorrect false")
	}
	if !v.Options[0].Selected {
		t.Error("expected option A to be marked selected")
	}
}

func TestMarks_RightAnswerAndUnanswered(t *testing.T) {
	q := New(testContent()).Apply(SelectOption{QuestionID: 2, Key: "C"})
	views := q.View()

	for _, o := range views[0].Options {
		if o.Mark != MarkNeutral {
			t.Errorf("unanswered option %s: mark = %s", o.Key, o.Mark)
		}
	}

	second := views[1]
	if !second.IsCorrect || second.Number != 2 {
		t.Fatalf("unexpected view: %+v", second)
	}
	for _, o := range second.Options {
		want := MarkDimmed
		if o.Key == "C" {
			want = MarkCorrect
		}
		if o.Mark != want {
			t.Errorf("option %s: mark = %s, want %s", o.Key, o.Mark, want)
		}
	}
}

func TestToggleLabel(t *testing.T) {
	q := New(testContent()).Apply(SelectOption{QuestionID: 1, Key: "B"})
	if got := q.View()[0].ToggleLabel(); got != LabelShowExplanation {
		t.Errorf("label = %q", got)
	}
	q = q.Apply(ToggleExplanation{QuestionID: 1})
	if got := q.View()[0].ToggleLabel(); got != LabelHideExplanation {
		t.Errorf("label = %q", got)
	}
}

func TestNilContent(t *testing.T) {
	q := New(nil)
	if q.Len() != 0 || q.View() != nil {
		t.Fatal("expected empty quiz")
	}
	q = q.Apply(SelectOption{QuestionID: 1, Key: "A"})
	if q.AnsweredCount() != 0 {
		t.Fatal("selection on empty quiz must be ignored")
	}
}
