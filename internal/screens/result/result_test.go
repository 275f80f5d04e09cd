package result

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edugenius/internal/content"
	"github.com/abhisek/edugenius/internal/llm"
	"github.com/abhisek/edugenius/internal/modulegen"
	"github.com/abhisek/edugenius/internal/router"
	"github.com/abhisek/edugenius/internal/screen"
	"github.com/abhisek/edugenius/internal/studio"
)

const module = `{
	"summary": "## Ekosistem\nProdusen dan konsumen saling bergantung.",
	"questions": [{
		"id": 1,
		"stimulus": "Populasi ikan kecil di danau menurun setelah bangau bertambah.",
		"questionText": "Apa dampaknya pada plankton?",
		"options": [
			{"key": "A", "text": "Menurun"},
			{"key": "B", "text": "Meningkat"},
			{"key": "C", "text": "Tetap"},
			{"key": "D", "text": "Punah"}
		],
		"correctAnswer": "B",
		"explanation": "Pemangsa plankton berkurang."
	}, {
		"id": 2,
		"stimulus": "Rantai makanan danau: plankton, ikan kecil, bangau.",
		"questionText": "Organisme mana yang berperan sebagai produsen?",
		"options": [
			{"key": "A", "text": "Plankton"},
			{"key": "B", "text": "Ikan"},
			{"key": "C", "text": "Bangau"},
			{"key": "D", "text": "Bakteri"}
		],
		"correctAnswer": "A",
		"explanation": "Plankton berfotosintesis."
	}]
}`

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testResultScreen(t *testing.T) (*ResultScreen, *studio.Workspace) {
	t.Helper()
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(module)})
	ws := studio.New(modulegen.New(mock, modulegen.DefaultConfig()), nil)
	ws.SetFields(studio.Fields{
		Level:          content.LevelSMP,
		Subject:        "IPA",
		Topic:          "Ekosistem",
		IncludeSummary: true,
	})
	res, err := ws.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	return New(Options{Workspace: ws, Result: res, OutDir: t.TempDir()}), ws
}

func update(t *testing.T, s *ResultScreen, msg tea.Msg) (*ResultScreen, tea.Cmd) {
	t.Helper()
	var scr screen.Screen = s
	scr, cmd := scr.Update(msg)
	return scr.(*ResultScreen), cmd
}

func TestResultScreen_Title(t *testing.T) {
	s, _ := testResultScreen(t)
	if s.Title() != "IPA · Ekosistem" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestResultScreen_AnswerWithCursor(t *testing.T) {
	s, ws := testResultScreen(t)

	s, _ = update(t, s, specialKey(tea.KeyEnter))

	snap := ws.Snapshot()
	key, ok := snap.Result.Quiz.Selected(1)
	if !ok || key != "A" {
		t.Fatalf("selected = %q, %v; want A", key, ok)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Incorrect. The correct answer is B.") {
		t.Errorf("expected incorrect verdict in view:\n%s", view)
	}
}

func TestResultScreen_AnswerIsFinal(t *testing.T) {
	s, ws := testResultScreen(t)

	s, _ = update(t, s, keyPress('b'))
	s, _ = update(t, s, specialKey(tea.KeyUp))
	s, _ = update(t, s, keyPress('a'))

	key, _ := ws.Snapshot().Result.Quiz.Selected(1)
	if key != "B" {
		t.Errorf("selected = %q, want B", key)
	}
	if !strings.Contains(s.View(100, 40), "Correct!") {
		t.Error("expected correct verdict")
	}
}

func TestResultScreen_ExplanationToggle(t *testing.T) {
	s, ws := testResultScreen(t)

	// Ignored before answering.
	s, _ = update(t, s, keyPress('e'))
	if ws.Snapshot().Result.Quiz.ExplanationVisible(1) {
		t.Fatal("explanation must stay hidden before answering")
	}

	s, _ = update(t, s, keyPress('b'))
	s, _ = update(t, s, keyPress('e'))
	if !ws.Snapshot().Result.Quiz.ExplanationVisible(1) {
		t.Fatal("expected explanation visible")
	}
	if !strings.Contains(s.View(100, 40), "Pemangsa plankton berkurang.") {
		t.Error("expected explanation text in view")
	}

	_, _ = update(t, s, keyPress('e'))
	if ws.Snapshot().Result.Quiz.ExplanationVisible(1) {
		t.Error("expected explanation hidden again")
	}
}

func TestResultScreen_Navigation(t *testing.T) {
	s, _ := testResultScreen(t)

	s, _ = update(t, s, specialKey(tea.KeyRight))
	if s.current != 1 {
		t.Fatalf("current = %d, want 1", s.current)
	}
	s, _ = update(t, s, specialKey(tea.KeyRight))
	if s.current != 1 {
		t.Errorf("current = %d, want to stay at last question", s.current)
	}
	if !strings.Contains(s.View(100, 40), "Question 2 of 2") {
		t.Error("expected second question in view")
	}
	s, _ = update(t, s, specialKey(tea.KeyLeft))
	if s.current != 0 {
		t.Errorf("current = %d, want 0", s.current)
	}
}

func TestResultScreen_SummaryToggle(t *testing.T) {
	s, _ := testResultScreen(t)

	s, _ = update(t, s, keyPress('s'))
	if !s.showSummary {
		t.Fatal("expected summary view")
	}
	if !strings.Contains(s.View(100, 40), "Material Summary") {
		t.Error("expected summary heading")
	}
	s, _ = update(t, s, keyPress('s'))
	if s.showSummary {
		t.Error("expected quiz view again")
	}
}

func TestResultScreen_SaveWord(t *testing.T) {
	s, _ := testResultScreen(t)

	s, cmd := update(t, s, keyPress('w'))
	if cmd == nil {
		t.Fatal("expected an export command")
	}
	if !s.Busy() {
		t.Error("screen should be busy while exporting")
	}
	if _, again := update(t, s, keyPress('p')); again != nil {
		t.Error("second export should wait for the first")
	}
	msg := cmd()
	done, ok := msg.(exportDoneMsg)
	if !ok {
		t.Fatalf("msg = %T, want exportDoneMsg", msg)
	}
	if done.Err != nil {
		t.Fatalf("export: %v", done.Err)
	}
	if filepath.Base(done.Path) != "Modul_Soal_IPA_Ekosistem.doc" {
		t.Errorf("path = %q", done.Path)
	}
	data, err := os.ReadFile(done.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "MODUL DAN EVALUASI BELAJAR") {
		t.Error("expected document title in export")
	}

	s, _ = update(t, s, done)
	if !strings.HasPrefix(s.status, "Saved ") {
		t.Errorf("status = %q", s.status)
	}
	if s.Busy() {
		t.Error("screen should be idle after export")
	}
}

func TestResultScreen_KeyHints(t *testing.T) {
	s, _ := testResultScreen(t)
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}

func TestResultScreen_Regenerate(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(module)},
		llm.MockResponse{Content: json.RawMessage(module)},
	)
	ws := studio.New(modulegen.New(mock, modulegen.DefaultConfig()), nil)
	ws.SetFields(studio.Fields{Level: content.LevelSMP, Subject: "IPA", Topic: "Ekosistem"})
	first, err := ws.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	s := New(Options{Workspace: ws, Result: first, OutDir: t.TempDir()})
	s, _ = update(t, s, keyPress('a'))

	s, cmd := update(t, s, keyPress('g'))
	if cmd == nil || !s.Busy() {
		t.Fatal("expected a regeneration in flight")
	}
	done, ok := cmd().(regenerateDoneMsg)
	if !ok || done.Err != nil {
		t.Fatalf("regenerate: %+v", done)
	}

	s, cmd = update(t, s, done)
	if s.Busy() {
		t.Error("screen should be idle after regeneration")
	}
	if cmd == nil {
		t.Fatal("expected a replace command")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	next := replace.Screen.(*ResultScreen)
	if next.res.Quiz.AnsweredCount() != 0 {
		t.Error("new set should start unanswered")
	}
	if mock.CallCount() != 2 {
		t.Errorf("provider called %d times, want 2", mock.CallCount())
	}
}

func TestResultScreen_RegenerateFailureDropsResult(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(module)},
		llm.MockResponse{Content: json.RawMessage(``)},
	)
	ws := studio.New(modulegen.New(mock, modulegen.DefaultConfig()), nil)
	ws.SetFields(studio.Fields{Level: content.LevelSMP, Subject: "IPA", Topic: "Ekosistem"})
	first, err := ws.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	outDir := t.TempDir()
	s := New(Options{Workspace: ws, Result: first, OutDir: outDir})

	s, cmd := update(t, s, keyPress('g'))
	s, cmd = update(t, s, cmd())
	if cmd == nil {
		t.Fatal("expected to leave the result screen")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg back to the form")
	}
	snap := ws.Snapshot()
	if snap.Result != nil || snap.Error != modulegen.MsgGenericFailure {
		t.Errorf("workspace result = %v, error = %q", snap.Result, snap.Error)
	}

	s, cmd = update(t, s, keyPress('w'))
	if cmd != nil {
		t.Error("stale module must not be exported")
	}
	if s.status != "Nothing to export." {
		t.Errorf("status = %q", s.status)
	}
	if entries, _ := os.ReadDir(outDir); len(entries) != 0 {
		t.Errorf("files written: %d", len(entries))
	}
}
