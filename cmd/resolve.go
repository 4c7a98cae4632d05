package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"efixctl.dev/pkg/efixctl/internal/domain"
	m "efixctl.dev/pkg/efixctl/internal/model"
)

var resolveParallelFlag int

// resolveCmd represents the resolve command.
var resolveCmd = newResolveCmd()

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [epkgs...]",
		Short: "Resolve efix prerequisites and installation order",
		Long:  resolveLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPackagePaths(args)
			if err != nil {
				return err
			}

			_, err = workflow.Resolve(cmd.Context(), domain.ResolveArgs{
				Paths:   paths,
				Threads: viper.GetInt(resolveParallelKey),
				Report:  m.Path(viper.GetString(outputFlagName)),
			})

			return err
		},
	}

	configureResolveFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func configureResolveFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&resolveParallelFlag, resolveParallelFlagName, "p", viper.GetInt(resolveParallelKey), "number of parallel package inspections")
	bindFlagToConfig(cmd.Flags().Lookup(resolveParallelFlagName), resolveParallelKey)
}

// expandPackagePaths turns command arguments into the candidate list:
// directories expand to the *.epkg files they contain, sorted for a stable
// discovery order; plain files pass through as-is.
func expandPackagePaths(args []string) ([]m.Path, error) {
	var paths []m.Path

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			paths = append(paths, m.Path(arg))
			continue
		}

		matches, err := filepath.Glob(filepath.Join(arg, "*.epkg"))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", arg, err)
		}

		sort.Strings(matches)

		paths = append(paths, parsePaths(matches)...)
	}

	return paths, nil
}
