package astraaudit

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagFailOn        string
	flagFormat        string
	flagNoColor       bool
	flagLogLevel      string
	flagNoCache       bool
	flagNoUpdateCheck bool
	flagSelfUpdate    bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the astra-audit CLI.
var rootCmd = &cobra.Command{
	Use:           "astra-audit",
	Short:         "Audit Python code against the ASTRA coding standards",
	Long:          "astra-audit statically checks a Python tree for type hints, docstrings, function length, global state, module structure and error handling, and reports issues as text, table, JSON or SARIF.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the astra-audit CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFailOn, "fail-on", "", "fail (exit 1) on issues at or above ERROR|WARNING|INFO (default ERROR)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "output format: text | table | json | sarif (default text)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log verbosity: trace | debug | info | warn | error")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the incremental audit cache")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.PersistentFlags().BoolVar(&flagSelfUpdate, "self-update", false, "update astra-audit to the latest release")
}
