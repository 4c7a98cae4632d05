package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "efixctl.dev/pkg/efixctl/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayResolution prints the install order, the reject list and the
// accumulated messages.
func (s *SimpleUI) DisplayResolution(ctx context.Context, resolution m.Resolution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderResolution(resolution))

	return nil
}

// DisplayState prints the installed fileset levels and applied fixes.
func (s *SimpleUI) DisplayState(ctx context.Context, filesets map[string]m.InstalledFileset, fixes []m.InstalledFix) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderState(filesets, fixes))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderResolution(resolution m.Resolution) string {
	var out bytes.Buffer

	table := tablewriter.NewWriter(&out)
	table.SetHeader([]string{"Order", "Package"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for i, path := range resolution.Install {
		table.Append([]string{fmt.Sprintf("%d", i+1), string(path)})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", len(resolution.Install))})
	table.Render()

	if len(resolution.Rejects) > 0 {
		out.WriteString("\nRejected:\n")

		rejects := tablewriter.NewWriter(&out)
		rejects.SetHeader([]string{"Kind", "Reason"})
		rejects.SetBorder(false)
		rejects.SetCenterSeparator("")
		rejects.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

		for _, reject := range resolution.Rejects {
			rejects.Append([]string{reject.Kind.String(), reject.Reason})
		}

		rejects.Render()
	}

	if len(resolution.Messages) > 0 {
		out.WriteString("\n")

		for _, message := range resolution.Messages {
			out.WriteString(message)
			out.WriteString("\n")
		}
	}

	return out.String()
}

func renderState(filesets map[string]m.InstalledFileset, fixes []m.InstalledFix) string {
	var out bytes.Buffer

	names := make([]string, 0, len(filesets))
	for name := range filesets {
		names = append(names, name)
	}

	sort.Strings(names)

	table := tablewriter.NewWriter(&out)
	table.SetHeader([]string{"Fileset", "Level"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, name := range names {
		table.Append([]string{name, filesets[name].RawLevel})
	}

	table.SetFooter([]string{"Total Filesets", fmt.Sprintf("%d", len(names))})
	table.Render()

	if len(fixes) > 0 {
		out.WriteString("\nApplied fixes:\n")

		applied := tablewriter.NewWriter(&out)
		applied.SetHeader([]string{"Label", "Files", "Packages"})
		applied.SetBorder(false)
		applied.SetCenterSeparator("")
		applied.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

		for _, fix := range fixes {
			applied.Append([]string{fix.Label, fmt.Sprintf("%d", len(fix.Files)), fmt.Sprintf("%d", len(fix.Packages))})
		}

		applied.Render()
	}

	return out.String()
}
