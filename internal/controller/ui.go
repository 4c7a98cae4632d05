// Package controller provides output adapters for displaying resolution
// results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "efixctl.dev/pkg/efixctl/internal/model"
)

// UI defines the interface for displaying resolution results and system
// state. Implementations can use different output methods (simple text,
// TUI, etc).
type UI interface {
	DisplayResolution(ctx context.Context, resolution m.Resolution) error
	DisplayState(ctx context.Context, filesets map[string]m.InstalledFileset, fixes []m.InstalledFix) error
}

// NewUI picks the TUI when the output is an interactive terminal and the
// plain text UI otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether the writer is an interactive terminal.
func IsTTY(output io.Writer) bool {
	file, ok := output.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}
