package controller

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "efixctl.dev/pkg/efixctl/internal/model"
)

// Short content is printed directly without entering the pager.
func TestTUI_DisplayResolution_PrintsShortOutput(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewTUI(out)

	resolution := m.Resolution{
		Install: []m.Path{"/tmp/a.epkg"},
	}

	require.NoError(t, ui.DisplayResolution(context.Background(), resolution))
	assert.Contains(t, out.String(), "/tmp/a.epkg")
}

func TestTUI_CancelledContext(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewTUI(out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, ui.DisplayResolution(ctx, m.Resolution{}))
	assert.Empty(t, out.String())
}

func TestPagerModel_QuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			model := newPagerModel("title", "content", 80, 24)

			msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			if key == "esc" {
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			}
			if key == "ctrl+c" {
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			}

			_, cmd := model.Update(msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}

func TestPagerModel_ResizeAdjustsViewport(t *testing.T) {
	model := newPagerModel("title", "content", 80, 24)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	pager, ok := updated.(pagerModel)
	require.True(t, ok)

	assert.Equal(t, 120, pager.viewport.Width)
	assert.Equal(t, 37, pager.viewport.Height)
}

func TestPagerModel_ViewContainsTitleAndHelp(t *testing.T) {
	model := newPagerModel("Efix resolution", "line one\nline two", 80, 24)

	view := model.View()
	assert.Contains(t, view, "Efix resolution")
	assert.Contains(t, view, "scroll")
}
