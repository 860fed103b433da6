package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tabtidy/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tabtidy",
	Short: "Formatter for tabular test data files",
	Long: `tabtidy normalizes test data files written in the space or pipe
separated tabular format: section headers, setting names, loops,
separators, column alignment and blank lines.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup

		profCleanup, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		profileCleanup = profCleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runProfileCleanup()
		runTraceCleanup()
	},
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tidyCmd)
	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show per-pass timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "phase", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

// main executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	err := rootCmd.Execute()
	// PersistentPostRun не вызывается при ошибке RunE
	runProfileCleanup()
	runTraceCleanup()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag for f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
