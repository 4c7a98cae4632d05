// Package cmd provides the root command and CLI setup for efixctl.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"efixctl.dev/pkg/efixctl/internal/adapter"
	"efixctl.dev/pkg/efixctl/internal/controller"
	"efixctl.dev/pkg/efixctl/internal/domain"
	m "efixctl.dev/pkg/efixctl/internal/model"
)

var inspector adapter.EfixInspector
var systemState adapter.SystemState
var resolutionStore adapter.ResolutionStore
var ui controller.UI
var workflow domain.Workflow

// outputFlag is a root-level flag naming the resolution report file.
var outputFlag string

// workdirFlag is where system listings are cached between runs.
var workdirFlag string

// offlineFlag switches system-state collection to the cached listings.
var offlineFlag bool

const rootLongDescription = `Efixctl evaluates downloaded AIX interim fix packages (epkgs) against the
installed software levels and the fixes already applied on the system, and
resolves a conflict-free installation order biased toward the most recently
packaged fix. Downloading and installing the packages is left to the usual
tooling; efixctl decides what can be installed and in which order.`

const resolveLongDescription = `Resolve the installation order for the given epkg files or directories.

Directory arguments are expanded to the *.epkg files they contain. Each
package is inspected, its fileset prerequisites are checked against the
installed levels, and file conflicts with applied fixes and with other
candidates are resolved by packaging recency (newest wins).`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "efixctl",
		Short: "AIX interim fix install-order resolver",
		Long:  rootLongDescription,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
			wireDependencies(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func init() {
	configureRootFlags(rootCmd)
}

// wireDependencies builds the adapter and workflow graph from the effective
// configuration. A workflow already injected (by tests) is left alone.
func wireDependencies(cmd *cobra.Command) {
	if workflow != nil {
		return
	}

	workdir := viper.GetString(workdirFlagName)

	ui = controller.NewUI(cmd.Root(), controller.IsTTY(cmd.OutOrStdout()))
	inspector = adapter.NewLocalEmgrInspector()
	resolutionStore = adapter.NewResolutionStore()

	if viper.GetBool(offlineFlagName) {
		systemState = adapter.NewFileSystemState(workdir)
	} else {
		systemState = adapter.NewLocalSystemState(workdir)
	}

	workflow = domain.NewWorkflow(inspector, systemState, resolutionStore, ui)
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"file to save the resolution report to (YAML, empty disables saving)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVarP(&workdirFlag, workdirFlagName, "w", viper.GetString(workdirFlagName), "directory for cached system listings (lslpp.txt, emgr.txt)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(workdirFlagName), workdirFlagName)

	cmd.PersistentFlags().BoolVar(&offlineFlag, offlineFlagName, viper.GetBool(offlineFlagName), "read system state from the cached listings instead of running commands")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(offlineFlagName), offlineFlagName)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
