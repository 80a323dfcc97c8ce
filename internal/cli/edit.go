package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pisica/pkg/appearance"
	"github.com/matzehuels/pisica/pkg/drag"
	"github.com/matzehuels/pisica/pkg/errors"
	"github.com/matzehuels/pisica/pkg/export"
	"github.com/matzehuels/pisica/pkg/geometry"
	"github.com/matzehuels/pisica/pkg/render"
	"github.com/matzehuels/pisica/pkg/scene"
)

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var (
		look lookFlags
		out  outputFlags
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Dress the cat interactively in the terminal",
		Long: `Dress the cat interactively in the terminal.

The preview is drawn with half-block characters. Drag accessories with the
mouse, toggle them with 1-4 and export with e. Appearance and output flags
set the starting point, exactly as for 'render'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			look.seedSet = cmd.Flags().Changed("seed")

			// The alternate screen owns the terminal; hold log lines until it closes.
			var held lockedBuffer
			c.Logger.SetOutput(&held)
			defer func() {
				c.Logger.SetOutput(os.Stderr)
				os.Stderr.WriteString(held.String())
			}()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := cfg.ExportOptions()
			if err := out.apply(cmd.Flags(), &opts); err != nil {
				return err
			}
			sess, err := look.session(c.Logger)
			if err != nil {
				return err
			}
			svc, err := c.newService(cfg, out.noCache)
			if err != nil {
				return fmt.Errorf("initialize export: %w", err)
			}
			defer svc.Cache.Close()

			m := newEditorModel(cmd.Context(), sess, svc, opts)
			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen(), tea.WithMouseCellMotion())
			final, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(editorModel); ok && fm.last != nil {
				for _, a := range fm.last.Artifacts {
					printArtifact(a.Path, a.Size, a.Cached)
				}
			}
			return nil
		},
	}

	look.bind(cmd.Flags())
	out.bind(cmd.Flags())
	registerAppearanceCompletions(cmd)

	return cmd
}

// lockedBuffer is a buffer that may be written from several goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// =============================================================================
// Editor Model
// =============================================================================

// mousePointer is the pointer id of the terminal mouse.
const mousePointer drag.PointerID = 1

// Preview layout. Each terminal cell shows two stacked pixels, so a stage
// 12 cells wide is 5 cells tall.
const (
	previewTop     = 2 // title and blank line above the preview
	previewChrome  = 8 // lines used by everything except the preview
	defaultCols    = 72
	minPreviewCols = 36
	maxPreviewCols = 144
	nudgeStep      = 5
)

var (
	editorKeyStyle      = lipgloss.NewStyle().Foreground(colorGinger)
	editorSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGinger)
	editorHiddenStyle   = lipgloss.NewStyle().Foreground(colorFaint)
)

// exportDoneMsg carries the outcome of a background export.
type exportDoneMsg export.Result

// editorModel is the bubbletea model of the interactive editor. Every
// message is applied to the session on the Update goroutine; exports run on
// a snapshot of the scene.
type editorModel struct {
	ctx     context.Context
	session *appearance.Session
	svc     *export.Service
	opts    export.Options
	canvas  *render.Canvas

	cols, rows int
	preview    string
	selected   appearance.Accessory
	exporting  bool
	status     string
	last       *export.Result
}

func newEditorModel(ctx context.Context, s *appearance.Session, svc *export.Service, opts export.Options) editorModel {
	m := editorModel{
		ctx:     ctx,
		session: s,
		svc:     svc,
		opts:    opts,
		canvas:  &render.Canvas{},
	}
	m.cols, m.rows = previewSize(defaultCols, 0)
	m.redraw()
	return m
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = previewSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.key(msg)
	case tea.MouseMsg:
		if !m.mouse(msg) {
			return m, nil
		}
	case exportDoneMsg:
		m.exporting = false
		res := export.Result(msg)
		switch {
		case res.Err != nil:
			m.status = StyleWarning.Render("export failed: " + errors.UserMessage(res.Err))
		case res.Skipped:
			m.status = StyleWarning.Render("nothing to export")
		default:
			m.last = &res
			paths := make([]string, len(res.Artifacts))
			for i, a := range res.Artifacts {
				paths[i] = a.Path
			}
			m.status = StyleSuccess.Render(iconSuccess+" saved ") + StyleValue.Render(strings.Join(paths, ", "))
		}
		return m, nil
	default:
		return m, nil
	}
	m.redraw()
	return m, nil
}

// key maps keystrokes to session operations.
func (m editorModel) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	st := s.State()

	switch k := msg.String(); k {
	case "q", "ctrl+c", "esc":
		s.PointerCancel(mousePointer)
		return m, tea.Quit
	case "b":
		breeds := geometry.Breeds()
		s.SetBreed(breeds[(int(st.Breed)+1)%len(breeds)])
	case "1", "2", "3", "4":
		a := appearance.Accessories()[k[0]-'1']
		s.SetAccessoryVisible(a, !st.Accessory(a).Visible)
		m.selected = a
	case "tab":
		all := appearance.Accessories()
		m.selected = all[(int(m.selected)+1)%len(all)]
	case "up", "down", "left", "right", "shift+up", "shift+down", "shift+left", "shift+right":
		step := float64(nudgeStep)
		if strings.HasPrefix(k, "shift+") {
			step *= 4
		}
		d := map[string]drag.Point{
			"up": {Y: -step}, "down": {Y: step}, "left": {X: -step}, "right": {X: step},
		}[strings.TrimPrefix(k, "shift+")]
		s.SetAccessoryOffset(m.selected, st.Accessory(m.selected).Offset.Add(d))
	case "r":
		s.Randomize()
	case "x":
		s.Reset()
	case "c":
		s.SetBackground(nil)
	case "e":
		if m.exporting {
			return m, nil
		}
		m.exporting = true
		m.status = StyleDim.Render("exporting...")
		return m, m.export()
	default:
		return m, nil
	}
	m.redraw()
	return m, nil
}

// mouse routes mouse events to the drag controllers. It reports whether
// the session changed.
func (m *editorModel) mouse(msg tea.MouseMsg) bool {
	p := m.stagePoint(msg.X, msg.Y)
	s := m.session

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.inPreview(msg.X, msg.Y) {
			return false
		}
		a, ok := scene.ComposeState(s.State()).HitTest(p)
		if !ok {
			return false
		}
		m.selected = a
		return s.PointerDown(a, mousePointer, p.X, p.Y)
	case tea.MouseActionMotion:
		_, _, moved := s.PointerMove(mousePointer, p.X, p.Y)
		return moved
	case tea.MouseActionRelease:
		_, released := s.PointerUp(mousePointer)
		return released
	}
	return false
}

// export snapshots the scene and waits for the service in the background.
func (m editorModel) export() tea.Cmd {
	ch := m.svc.Request(m.ctx, scene.ComposeState(m.session.State()), m.opts)
	return func() tea.Msg {
		return exportDoneMsg(<-ch)
	}
}

// =============================================================================
// Preview
// =============================================================================

// previewSize fits the stage into a w×h terminal. A zero height leaves the
// width as the only constraint.
func previewSize(w, h int) (cols, rows int) {
	cols = min(w, maxPreviewCols)
	if avail := h - previewChrome; h > 0 && cols*5/12 > avail {
		cols = avail * 12 / 5
	}
	cols = max(cols-cols%12, minPreviewCols)
	return cols, cols * 5 / 12
}

// stagePoint maps the center of a terminal cell to stage coordinates.
func (m editorModel) stagePoint(x, y int) geometry.Point {
	return geometry.Point{
		X: (float64(x) + 0.5) * scene.StageWidth / float64(m.cols),
		Y: (float64(y-previewTop) + 0.5) * scene.StageHeight / float64(m.rows),
	}
}

func (m editorModel) inPreview(x, y int) bool {
	return x >= 0 && x < m.cols && y >= previewTop && y < previewTop+m.rows
}

// redraw rasterizes the current scene at one pixel per half cell.
func (m *editorModel) redraw() {
	sc := scene.ComposeState(m.session.State())
	img, err := m.canvas.Draw(m.ctx, sc, float64(m.cols)/scene.StageWidth)
	if err != nil {
		m.status = StyleWarning.Render("preview: " + errors.UserMessage(err))
		return
	}
	m.preview = halfBlocks(img, m.cols, m.rows)
}

// halfBlocks renders img as cols×rows cells, each showing two pixels.
func halfBlocks(img image.Image, cols, rows int) string {
	b := img.Bounds()
	at := func(x, y int) (string, bool) {
		if x >= b.Dx() || y >= b.Dy() {
			return "", false
		}
		c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
		if c.A < 128 {
			return "", false
		}
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), true
	}

	var sb strings.Builder
	for row := range rows {
		for col := range cols {
			top, hasTop := at(col, 2*row)
			bottom, hasBottom := at(col, 2*row+1)
			switch {
			case hasTop && hasBottom:
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(top)).Background(lipgloss.Color(bottom)).Render("▀"))
			case hasTop:
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(top)).Render("▀"))
			case hasBottom:
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(bottom)).Render("▄"))
			default:
				sb.WriteByte(' ')
			}
		}
		if row < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// =============================================================================
// View
// =============================================================================

func (m editorModel) View() string {
	st := m.session.State()
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pisica") + StyleDim.Render(" · "+label(st.Breed.String())+" · session "+m.session.ID()[:8]))
	b.WriteString("\n\n")
	b.WriteString(m.preview)
	b.WriteString("\n\n")

	b.WriteString(joinDim([]string{
		"fur " + swatch(st.PrimaryFur),
		"secondary " + swatch(st.SecondaryFur),
		"eyes " + swatch(st.EyeColor),
	}))
	b.WriteString("\n")

	var accs []string
	for i, a := range appearance.Accessories() {
		acc := st.Accessory(a)
		name := fmt.Sprintf("%d %s", i+1, label(a.String()))
		style := StyleValue
		switch {
		case a == m.selected:
			style = editorSelectedStyle
		case !acc.Visible:
			style = editorHiddenStyle
		}
		entry := style.Render(name)
		if acc.Visible {
			entry += " " + swatch(acc.Color)
		}
		accs = append(accs, entry)
	}
	b.WriteString(joinDim(accs))
	b.WriteString("\n")

	if st.Background != nil {
		b.WriteString(StyleDim.Render("photo " + st.Background.Name))
		b.WriteString("\n")
	}

	help := []string{"drag move", "1-4 toggle", "tab select", "←↑↓→ nudge", "b breed", "r random", "x reset", "c clear photo", "e export", "q quit"}
	for i, h := range help {
		k, rest, _ := strings.Cut(h, " ")
		help[i] = editorKeyStyle.Render(k) + " " + StyleDim.Render(rest)
	}
	b.WriteString(strings.Join(help, "  "))
	b.WriteString("\n")
	b.WriteString(m.status)

	return b.String()
}
