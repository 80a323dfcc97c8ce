package cli

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/pisica/pkg/appearance"
	"github.com/matzehuels/pisica/pkg/drag"
	"github.com/matzehuels/pisica/pkg/export"
	"github.com/matzehuels/pisica/pkg/geometry"
)

func newTestEditor(t *testing.T) editorModel {
	t.Helper()
	opts := export.Options{Formats: []string{export.FormatSVG}, Dir: t.TempDir()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	s := appearance.NewSession(nil, appearance.NewSeededEngine(1))
	return newEditorModel(context.Background(), s, export.NewService(nil, nil, nil), opts)
}

func send(t *testing.T, m editorModel, msg tea.Msg) (editorModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	em, ok := next.(editorModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return em, cmd
}

func press(t *testing.T, m editorModel, keys ...string) editorModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = send(t, m, msg)
	}
	return m
}

func mouse(action tea.MouseAction, col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: previewTop + row, Action: action, Button: tea.MouseButtonLeft}
}

func TestEditorDragMovesAccessory(t *testing.T) {
	m := newTestEditor(t)
	// Hide bow and collar, show hat: the hat is then the only target.
	m = press(t, m, "1", "4", "2")
	s := m.session
	start := s.State().Accessory(appearance.Hat).Offset

	// Cell (36,14) is stage point (365,290), inside the hat.
	m, _ = send(t, m, mouse(tea.MouseActionPress, 36, 14))
	if a, ok := s.Dragging(mousePointer); !ok || a != appearance.Hat {
		t.Fatalf("Dragging() = %v, %v; want hat, true", a, ok)
	}
	m, _ = send(t, m, mouse(tea.MouseActionMotion, 40, 14))
	m, _ = send(t, m, mouse(tea.MouseActionRelease, 40, 14))

	if _, ok := s.Dragging(mousePointer); ok {
		t.Error("pointer still captured after release")
	}
	want := start.Add(drag.Point{X: 40})
	if got := s.State().Accessory(appearance.Hat).Offset; got != want {
		t.Errorf("hat offset = %v, want %v", got, want)
	}
	if m.selected != appearance.Hat {
		t.Errorf("selected = %v, want hat", m.selected)
	}
}

func TestEditorPressOnEmptyStage(t *testing.T) {
	m := newTestEditor(t)
	m, _ = send(t, m, mouse(tea.MouseActionPress, 0, 0))
	if _, ok := m.session.Dragging(mousePointer); ok {
		t.Error("press on empty stage started a drag")
	}

	before := m.session.State()
	m, _ = send(t, m, mouse(tea.MouseActionMotion, 10, 10))
	if after := m.session.State(); after.Accessories != before.Accessories {
		t.Error("motion without a drag changed offsets")
	}
}

func TestEditorPressOutsidePreviewIgnored(t *testing.T) {
	m := newTestEditor(t)
	// Bow sits at the stage center; a press one row above the preview must miss.
	msg := tea.MouseMsg{X: 36, Y: previewTop - 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = send(t, m, msg)
	if _, ok := m.session.Dragging(mousePointer); ok {
		t.Error("press above the preview started a drag")
	}
}

func TestEditorKeys(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		check func(t *testing.T, m editorModel)
	}{
		{
			name: "breed cycles",
			keys: []string{"b", "b"},
			check: func(t *testing.T, m editorModel) {
				if got := m.session.State().Breed; got != geometry.Siamese {
					t.Errorf("breed = %v, want siamese", got)
				}
			},
		},
		{
			name: "toggle scarf",
			keys: []string{"3"},
			check: func(t *testing.T, m editorModel) {
				if !m.session.State().Accessory(appearance.Scarf).Visible {
					t.Error("scarf should be visible")
				}
				if m.selected != appearance.Scarf {
					t.Errorf("selected = %v, want scarf", m.selected)
				}
			},
		},
		{
			name: "nudge selected",
			keys: []string{"tab", "right", "up"},
			check: func(t *testing.T, m editorModel) {
				want := appearance.Default().Accessory(appearance.Hat).Offset.Add(drag.Point{X: nudgeStep, Y: -nudgeStep})
				if got := m.session.State().Accessory(appearance.Hat).Offset; got != want {
					t.Errorf("hat offset = %v, want %v", got, want)
				}
			},
		},
		{
			name: "reset after randomize",
			keys: []string{"r", "x"},
			check: func(t *testing.T, m editorModel) {
				got := m.session.State()
				want := appearance.Default()
				if got.Breed != want.Breed || got.Accessories != want.Accessories || !got.PrimaryFur.Equal(want.PrimaryFur) {
					t.Errorf("state after reset = %+v, want default", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, press(t, newTestEditor(t), tt.keys...))
		})
	}
}

func TestEditorQuit(t *testing.T) {
	m := newTestEditor(t)
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestEditorExport(t *testing.T) {
	m := newTestEditor(t)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if cmd == nil || !m.exporting {
		t.Fatal("e should start an export")
	}
	if _, again := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")}); again != nil {
		t.Error("second export started while the first is running")
	}

	m, _ = send(t, m, cmd())
	if m.exporting {
		t.Error("still exporting after completion")
	}
	if m.last == nil || len(m.last.Artifacts) != 1 {
		t.Fatalf("last result = %+v, want one artifact", m.last)
	}
	path := filepath.Join(m.opts.Dir, "pisica-mea.svg")
	if m.last.Artifacts[0].Path != path {
		t.Errorf("artifact path = %q, want %q", m.last.Artifacts[0].Path, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestPreviewSize(t *testing.T) {
	tests := []struct {
		w, h       int
		cols, rows int
	}{
		{72, 0, 72, 30},
		{200, 0, 144, 60},
		{200, 40, 72, 30},
		{10, 0, 36, 15},
		{80, 0, 72, 30},
	}
	for _, tt := range tests {
		cols, rows := previewSize(tt.w, tt.h)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("previewSize(%d, %d) = %d, %d; want %d, %d", tt.w, tt.h, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestEditorResize(t *testing.T) {
	m := newTestEditor(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 200, Height: 0})
	if m.cols != 144 || m.rows != 60 {
		t.Fatalf("size = %dx%d, want 144x60", m.cols, m.rows)
	}
	if got := strings.Count(m.preview, "\n"); got != 59 {
		t.Errorf("preview has %d line breaks, want 59", got)
	}
}

func TestHalfBlocks(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})

	out := halfBlocks(img, 2, 1)
	if !strings.Contains(out, "▀") {
		t.Errorf("halfBlocks missing upper half block: %q", out)
	}
	if !strings.HasSuffix(out, " ") {
		t.Errorf("transparent cell should be blank: %q", out)
	}

	if got := halfBlocks(image.NewNRGBA(image.Rect(0, 0, 2, 4)), 2, 2); got != "  \n  " {
		t.Errorf("empty image = %q, want blanks", got)
	}
}

func TestEditorView(t *testing.T) {
	m := newTestEditor(t)
	v := m.View()
	for _, want := range []string{"Pisica", "Short", m.session.ID()[:8], "Bow", "Collar", "export"} {
		if !strings.Contains(v, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
