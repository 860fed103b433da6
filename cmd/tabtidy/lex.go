package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tabtidy/internal/diag"
	"tabtidy/internal/diagfmt"
	"tabtidy/internal/driver"
)

var lexCmd = &cobra.Command{
	Use:   "lex [flags] file",
	Short: "Show classified tokens of a test data file",
	Long:  `Lex tokenizes a file, validates its settings and prints the classified tokens or the block outline`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	lexCmd.Flags().String("format", "pretty", "output format (pretty|json|tree)")
	lexCmd.Flags().Bool("layout", false, "include separators and line terminators in pretty output")
	lexCmd.Flags().String("diagnostics", "text", "diagnostics format (text|json|none)")
}

func runLex(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	layout, err := cmd.Flags().GetBool("layout")
	if err != nil {
		return fmt.Errorf("failed to get layout flag: %w", err)
	}
	diagFormat, err := cmd.Flags().GetString("diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.LexFile(cmd.Context(), filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("lex failed: %w", err)
	}

	// Диагностики в stderr
	if result.Bag.Len() > 0 {
		switch diagFormat {
		case "text":
			opts := diag.RenderOpts{Color: useColor(cmd, os.Stderr), Notes: true}
			if err := diag.Render(cmd.ErrOrStderr(), result.Bag, result.FileSet, opts); err != nil {
				return err
			}
		case "json":
			opts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}
			if err := diagfmt.JSON(cmd.ErrOrStderr(), result.Bag, result.FileSet, opts); err != nil {
				return err
			}
		case "none":
		default:
			return fmt.Errorf("unknown diagnostics format: %s", diagFormat)
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(out, result.File, result.FileSet, layout)
	case "json":
		return diagfmt.FormatTokensJSON(out, result.File)
	case "tree":
		return diagfmt.FormatTree(out, result.File)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
