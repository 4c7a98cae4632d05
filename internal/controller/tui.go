package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "efixctl.dev/pkg/efixctl/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	keepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	rejectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
	defaultWidth = 80
	defaultRows  = 24
)

// TUI implements UI for interactive terminals. Short output is printed
// directly; anything taller than the terminal goes through a scrollable
// pager.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayResolution shows the install order and reject list with a summary
// header.
func (p *TUI) DisplayResolution(ctx context.Context, resolution m.Resolution) error {
	summary := fmt.Sprintf("%s  %s\n\n",
		keepStyle.Render(fmt.Sprintf("install: %d", len(resolution.Install))),
		rejectStyle.Render(fmt.Sprintf("rejected: %d", len(resolution.Rejects))),
	)

	return p.page(ctx, "Efix resolution", summary+renderResolution(resolution))
}

// DisplayState shows installed fileset levels and applied fixes.
func (p *TUI) DisplayState(ctx context.Context, filesets map[string]m.InstalledFileset, fixes []m.InstalledFix) error {
	return p.page(ctx, "Installed state", renderState(filesets, fixes))
}

func (p *TUI) page(ctx context.Context, title, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	width, height := p.terminalSize()

	// Fits on screen: print and move on, no alt screen needed.
	if strings.Count(content, "\n")+3 < height {
		_, err := fmt.Fprintf(p.output, "%s\n%s", titleStyle.Render(title), content)
		return err
	}

	model := newPagerModel(title, content, width, height)
	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())

	_, err := program.Run()

	return err
}

func (p *TUI) terminalSize() (int, int) {
	if file, ok := p.output.(*os.File); ok {
		if width, height, err := term.GetSize(int(file.Fd())); err == nil {
			return width, height
		}
	}

	return defaultWidth, defaultRows
}

type pagerModel struct {
	title    string
	viewport viewport.Model
}

func newPagerModel(title, content string, width, height int) pagerModel {
	vp := viewport.New(width, height-3)
	vp.SetContent(content)

	return pagerModel{
		title:    title,
		viewport: vp,
	}
}

func (p pagerModel) Init() tea.Cmd {
	return nil
}

func (p pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return p, tea.Quit
		}
	case tea.WindowSizeMsg:
		p.viewport.Width = msg.Width
		p.viewport.Height = msg.Height - 3
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)

	return p, cmd
}

func (p pagerModel) View() string {
	return fmt.Sprintf("%s\n%s\n%s",
		titleStyle.Render(p.title),
		p.viewport.View(),
		helpStyle.Render("↑/↓ scroll · q quit"),
	)
}
