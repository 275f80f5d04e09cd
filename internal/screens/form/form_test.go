package form

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edugenius/internal/content"
	"github.com/abhisek/edugenius/internal/intake"
	"github.com/abhisek/edugenius/internal/llm"
	"github.com/abhisek/edugenius/internal/modulegen"
	"github.com/abhisek/edugenius/internal/router"
	"github.com/abhisek/edugenius/internal/screen"
	"github.com/abhisek/edugenius/internal/screens/result"
	"github.com/abhisek/edugenius/internal/studio"
)

const module = `{
	"questions": [{
		"id": 1,
		"stimulus": "Harga cabai naik dua kali lipat saat musim hujan.",
		"questionText": "Faktor apa yang paling mungkin menyebabkan kenaikan ini?",
		"options": [
			{"key": "A", "text": "Pasokan berkurang"},
			{"key": "B", "text": "Permintaan turun"},
			{"key": "C", "text": "Pajak dihapus"},
			{"key": "D", "text": "Impor naik"}
		],
		"correctAnswer": "A",
		"explanation": "Gagal panen mengurangi pasokan."
	}]
}`

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testFormScreen(t *testing.T, responses ...llm.MockResponse) (*FormScreen, *studio.Workspace, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	ws := studio.New(modulegen.New(mock, modulegen.DefaultConfig()), nil)
	s := New(Options{Workspace: ws, Intake: intake.New(intake.DefaultMaxBytes), OutDir: t.TempDir()})
	s.Init()
	return s, ws, mock
}

func update(t *testing.T, s *FormScreen, msg tea.Msg) (*FormScreen, tea.Cmd) {
	t.Helper()
	var scr screen.Screen = s
	scr, cmd := scr.Update(msg)
	return scr.(*FormScreen), cmd
}

func typeText(t *testing.T, s *FormScreen, text string) *FormScreen {
	t.Helper()
	for _, r := range text {
		s, _ = update(t, s, keyPress(r))
	}
	return s
}

// run executes cmd and any batched commands, returning the first message
// of type T.
func run[T any](cmd tea.Cmd) (T, bool) {
	var zero T
	if cmd == nil {
		return zero, false
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if got, ok := run[T](c); ok {
				return got, true
			}
		}
		return zero, false
	}
	got, ok := msg.(T)
	return got, ok
}

func TestFormScreen_Defaults(t *testing.T) {
	s, _, _ := testFormScreen(t)

	if s.Title() != "New Module" {
		t.Errorf("Title = %q", s.Title())
	}
	if s.level != content.LevelSMP {
		t.Errorf("level = %s, want SMP", s.level)
	}
	if !s.includeSummary {
		t.Error("summary must default to on")
	}
	if s.focus != focusSubject {
		t.Errorf("focus = %d, want subject", s.focus)
	}
}

func TestFormScreen_TypingSyncsWorkspace(t *testing.T) {
	s, ws, _ := testFormScreen(t)

	s = typeText(t, s, "IPA")
	s, _ = update(t, s, specialKey(tea.KeyTab))
	s = typeText(t, s, "Ekosistem")

	form := ws.Snapshot().Form
	if form.Subject != "IPA" || form.Topic != "Ekosistem" {
		t.Errorf("form = %q / %q", form.Subject, form.Topic)
	}
	if s.focus != focusTopic {
		t.Errorf("focus = %d, want topic", s.focus)
	}
}

func TestFormScreen_LevelCycle(t *testing.T) {
	s, ws, _ := testFormScreen(t)

	s, _ = update(t, s, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.focus != focusLevel {
		t.Fatalf("focus = %d, want level", s.focus)
	}
	s, _ = update(t, s, specialKey(tea.KeyRight))
	if ws.Snapshot().Form.Level != content.LevelSMA {
		t.Errorf("level = %s, want SMA", ws.Snapshot().Form.Level)
	}
	s, _ = update(t, s, specialKey(tea.KeyRight))
	if ws.Snapshot().Form.Level != content.LevelSDLow {
		t.Errorf("level = %s, want wrap to SD_LOW", ws.Snapshot().Form.Level)
	}
	_, _ = update(t, s, specialKey(tea.KeyLeft))
	if ws.Snapshot().Form.Level != content.LevelSMA {
		t.Errorf("level = %s, want SMA", ws.Snapshot().Form.Level)
	}
}

func TestFormScreen_SummaryToggle(t *testing.T) {
	s, ws, _ := testFormScreen(t)
	s.setFocus(focusSummary)

	_, _ = update(t, s, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if ws.Snapshot().Form.IncludeSummary {
		t.Error("expected summary off")
	}
}

func TestFormScreen_BlankFieldsShowNotice(t *testing.T) {
	s, ws, mock := testFormScreen(t)

	s, cmd := update(t, s, ctrlKey('s'))
	if cmd != nil {
		t.Error("expected no generation command")
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times", mock.CallCount())
	}
	if ws.Snapshot().Notice != studio.NoticeMissingFields {
		t.Errorf("notice = %q", ws.Snapshot().Notice)
	}
	if !strings.Contains(s.View(100, 50), studio.NoticeMissingFields) {
		t.Error("expected notice in view")
	}
}

func TestFormScreen_GenerateSuccess(t *testing.T) {
	s, _, mock := testFormScreen(t, llm.MockResponse{Content: json.RawMessage(module)})
	s.subject.SetValue("Ekonomi")
	s.topic.SetValue("Inflasi")

	s, cmd := update(t, s, ctrlKey('s'))
	done, ok := run[generateDoneMsg](cmd)
	if !ok {
		t.Fatal("expected generateDoneMsg")
	}
	if done.Err != nil {
		t.Fatalf("generate: %v", done.Err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider called %d times", mock.CallCount())
	}

	_, cmd = update(t, s, done)
	push, ok := run[router.PushScreenMsg](cmd)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*result.ResultScreen); !ok {
		t.Errorf("pushed %T, want *result.ResultScreen", push.Screen)
	}
}

func TestFormScreen_GenerateFailure(t *testing.T) {
	s, ws, _ := testFormScreen(t, llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	s.subject.SetValue("Ekonomi")
	s.topic.SetValue("Inflasi")

	s, cmd := update(t, s, ctrlKey('s'))
	done, ok := run[generateDoneMsg](cmd)
	if !ok || done.Err == nil {
		t.Fatal("expected failed generateDoneMsg")
	}

	s, cmd = update(t, s, done)
	if cmd != nil {
		t.Error("expected no navigation on failure")
	}
	if ws.Snapshot().Error == "" {
		t.Error("expected workspace error")
	}
	if !strings.Contains(s.View(100, 60), "Generation Failed") {
		t.Error("expected failure banner in view")
	}
}

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestFormScreen_AttachAndRemove(t *testing.T) {
	s, ws, _ := testFormScreen(t)
	dir := t.TempDir()
	img := writePNG(t, dir, "chart.png")
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("plain notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	s.setFocus(focusAttachPath)
	s.attachPath.SetValue(img + ", " + txt)
	s, cmd := update(t, s, specialKey(tea.KeyEnter))
	done, ok := run[attachDoneMsg](cmd)
	if !ok || done.Err != nil {
		t.Fatalf("attach: %+v", done)
	}
	s, _ = update(t, s, done)

	snap := ws.Snapshot()
	if len(snap.Form.Attachments) != 1 || snap.Form.Attachments[0].Name != "chart.png" {
		t.Fatalf("attachments = %+v", snap.Form.Attachments)
	}
	if snap.Notice != intake.NoticeNotImage {
		t.Errorf("notice = %q", snap.Notice)
	}
	if s.attachPath.Value() != "" {
		t.Error("expected attach field cleared")
	}

	s, _ = update(t, s, specialKey(tea.KeyTab))
	if s.focus != focusAttachments {
		t.Fatalf("focus = %d, want attachment list", s.focus)
	}
	s, _ = update(t, s, keyPress('x'))
	if n := len(ws.Snapshot().Form.Attachments); n != 0 {
		t.Errorf("attachments = %d, want 0", n)
	}
	if s.focus != focusSummary {
		t.Errorf("focus = %d, want summary after emptying list", s.focus)
	}
}

func TestFormScreen_TabSkipsEmptyAttachmentList(t *testing.T) {
	s, _, _ := testFormScreen(t)
	s.setFocus(focusAttachPath)

	s, _ = update(t, s, specialKey(tea.KeyTab))
	if s.focus != focusSummary {
		t.Errorf("focus = %d, want summary", s.focus)
	}
}

func TestFormScreen_GenerateHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(module)})
	ws := studio.New(modulegen.New(mock, modulegen.DefaultConfig()), nil)
	s := New(Options{Workspace: ws, Context: ctx})
	if s.ctx != ctx {
		t.Error("expected screen to keep the supplied context")
	}
}
