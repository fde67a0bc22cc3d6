package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var debugMode bool

var rootCmd = &cobra.Command{
	Use:   "gantt2svg",
	Short: "Render Gantt charts from CSV or JSON task lists as SVG",
	Long: `gantt2svg draws a Gantt chart: a label column, a multi-row time axis
and one row of bars, markers and milestones per task. Tasks sharing a
label are merged into one row. Run without a subcommand to render.

The CSV file needs a header row; by default the columns are label, start,
stop, milestone (several separated by ';'), shape and color. A .json input
holds an array of {"label", "start", "stop", ...} records.
If no config file is specified, default settings will be used.
If no output file is specified, the input filename with .svg extension will be used.`,
	Example:       "  gantt2svg --input plan.csv --config chart.yaml --output plan.svg",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode {
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd.Context(), rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr(), stdoutIsTerminal)
	},
}

var rootOpts renderOptions

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	addRenderFlags(rootCmd, &rootOpts)

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
