package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tabtidy/internal/ast"
	"tabtidy/internal/config"
	"tabtidy/internal/diag"
	"tabtidy/internal/driver"
	"tabtidy/internal/source"
)

var tidyCmd = &cobra.Command{
	Use:   "tidy [flags] <path> [path...]",
	Short: "Format test data files",
	Long: `Tidy rewrites test data files in place. Directories are walked
recursively for .robot, .resource, .txt and .tsv files. Use "-" to read
a single file from stdin and print the result.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTidy,
}

func init() {
	tidyCmd.Flags().Bool("check", false, "report files that would change without writing them")
	tidyCmd.Flags().Bool("diff", false, "print a unified diff of the changes")
	tidyCmd.Flags().Bool("stdout", false, "print formatted files to stdout instead of rewriting them")
	tidyCmd.Flags().String("style", "", "separator style (space|pipe)")
	tidyCmd.Flags().Int("separator-width", 0, "spaces between cells in space style")
	tidyCmd.Flags().Int("jobs", 0, "files processed in parallel (0 = GOMAXPROCS)")
	tidyCmd.Flags().Bool("no-cache", false, "disable the result cache")
	tidyCmd.Flags().Bool("clear-cache", false, "drop cached results before running")
	tidyCmd.Flags().String("config", "", "configuration file (default: discovered upwards from the first path)")
	tidyCmd.Flags().String("kind", "suite", "file kind for stdin input (suite|resource|init)")
	tidyCmd.Flags().String("format", "text", "report format (text|json)")
	tidyCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
}

type tidyFlags struct {
	check, diff, stdout, noCache, clearCache bool
	format, ui, kind                         string
	quiet, timings                           bool
	maxDiagnostics                           int
}

func readTidyFlags(cmd *cobra.Command) (tidyFlags, error) {
	var f tidyFlags
	var err error
	get := func(name string, dst *bool) {
		if err == nil {
			*dst, err = cmd.Flags().GetBool(name)
		}
	}
	get("check", &f.check)
	get("diff", &f.diff)
	get("stdout", &f.stdout)
	get("no-cache", &f.noCache)
	get("clear-cache", &f.clearCache)
	if err != nil {
		return f, err
	}
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, err
	}
	if f.ui, err = cmd.Flags().GetString("ui"); err != nil {
		return f, err
	}
	if f.kind, err = cmd.Flags().GetString("kind"); err != nil {
		return f, err
	}
	if f.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return f, err
	}
	if f.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return f, err
	}
	if f.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return f, err
	}
	return f, nil
}

// resolveConfig loads the configuration file and applies flag overrides.
func resolveConfig(cmd *cobra.Command, firstPath string) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		start := firstPath
		if start == "-" {
			start = "."
		} else if info, statErr := os.Stat(start); statErr == nil && !info.IsDir() {
			start = filepath.Dir(start)
		}
		cfg, _, err = config.Discover(start)
	}
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("style") {
		cfg.Style, _ = cmd.Flags().GetString("style")
	}
	if cmd.Flags().Changed("separator-width") {
		cfg.SeparatorWidth, _ = cmd.Flags().GetInt("separator-width")
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs, _ = cmd.Flags().GetInt("jobs")
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache = false
	}
	return cfg, cfg.Validate()
}

func parseKind(s string) (ast.FileKind, error) {
	switch s {
	case "suite", "":
		return ast.SuiteFile, nil
	case "resource":
		return ast.ResourceFile, nil
	case "init":
		return ast.InitFile, nil
	default:
		return 0, fmt.Errorf("invalid --kind value %q (expected suite|resource|init)", s)
	}
}

func runTidy(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	flags, err := readTidyFlags(cmd)
	if err != nil {
		return err
	}
	if flags.stdout && flags.check {
		return errors.New("tidy: --stdout cannot be used with --check")
	}
	if flags.format != "text" && flags.format != "json" {
		return fmt.Errorf("tidy: unsupported output format %q", flags.format)
	}
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return fmt.Errorf("tidy: %w", err)
	}
	tidyOpts, err := cfg.TidyOptions()
	if err != nil {
		return fmt.Errorf("tidy: %w", err)
	}

	opts := driver.TidyOptions{
		Tidy:           tidyOpts,
		Mode:           driver.ModeWrite,
		Diff:           flags.diff,
		Jobs:           cfg.EffectiveJobs(),
		MaxDiagnostics: flags.maxDiagnostics,
		Timings:        flags.timings,
	}
	switch {
	case flags.check:
		opts.Mode = driver.ModeCheck
	case flags.stdout:
		opts.Mode = driver.ModeStdout
	}
	progress, err := showProgress(flags.ui, opts.Mode, flags.format, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	if cfg.Cache {
		cache, cacheErr := driver.OpenResultCache("tabtidy")
		if cacheErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "tidy: cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}
	if flags.clearCache && opts.Cache != nil {
		if err := opts.Cache.DropAll(); err != nil {
			return fmt.Errorf("tidy: clear cache: %w", err)
		}
	}

	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)
	if len(args) == 1 && args[0] == "-" {
		kind, kindErr := parseKind(flags.kind)
		if kindErr != nil {
			return kindErr
		}
		content, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("tidy: read stdin: %w", readErr)
		}
		var res driver.FileResult
		fileSet, res, err = driver.TidySource(cmd.Context(), "<stdin>", content, kind, opts)
		results = []driver.FileResult{res}
		if opts.Mode != driver.ModeCheck {
			opts.Mode = driver.ModeStdout
		}
	} else if progress {
		files, collectErr := driver.CollectFiles(cmd.Context(), args)
		if collectErr != nil {
			return collectErr
		}
		fileSet, results, err = runTidyWithUI(cmd.Context(), "tidy", files, opts)
	} else {
		fileSet, results, err = driver.TidyPaths(cmd.Context(), args, opts)
	}
	if err != nil && results == nil {
		return fmt.Errorf("tidy: %w", err)
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	colorOut := useColor(cmd, os.Stdout)
	colorErr := useColor(cmd, os.Stderr)

	for _, res := range results {
		if res.Bag != nil && res.Bag.Len() > 0 && flags.format == "text" {
			if renderErr := diag.Render(errOut, res.Bag, fileSet, diag.RenderOpts{Color: colorErr, Notes: true}); renderErr != nil {
				return renderErr
			}
		}
	}

	switch flags.format {
	case "json":
		if err := renderTidyJSON(out, results, opts.Mode); err != nil {
			return err
		}
	default:
		renderTidyText(out, errOut, results, opts.Mode, flags.quiet, colorOut)
	}

	if flags.timings {
		fmt.Fprint(errOut, driver.TimingReport(results).Summary())
	}

	summary := driver.Summarize(results)
	if summary.Failed > 0 {
		return fmt.Errorf("tidy: failed to process %d file(s)", summary.Failed)
	}
	if err != nil {
		return fmt.Errorf("tidy: %w", err)
	}
	if opts.Mode == driver.ModeCheck && summary.Changed > 0 {
		return fmt.Errorf("tidy: %d file(s) would be reformatted", summary.Changed)
	}
	return nil
}

func renderTidyText(out, errOut io.Writer, results []driver.FileResult, mode driver.Mode, quiet, color bool) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "tidy: %s: %v\n", res.Path, res.Err)
			continue
		}
		if res.Diff != "" {
			fmt.Fprint(out, driver.ColorizeDiff(res.Diff, color))
		}
		switch mode {
		case driver.ModeStdout:
			if res.Diff == "" {
				_, _ = out.Write(res.Formatted)
			}
		case driver.ModeCheck:
			if res.Changed && !quiet && res.Diff == "" {
				fmt.Fprintf(out, "would reformat %s\n", res.Path)
			}
		default:
			if res.Changed && !quiet {
				fmt.Fprintf(out, "reformatted %s\n", res.Path)
			}
		}
	}
	if quiet || mode == driver.ModeStdout {
		return
	}
	s := driver.Summarize(results)
	fmt.Fprintf(out, "%d file(s) checked, %d changed, %d from cache\n", s.Files, s.Changed, s.Cached)
}

func renderTidyJSON(out io.Writer, results []driver.FileResult, mode driver.Mode) error {
	type jsonResult struct {
		Path        string `json:"path"`
		Kind        string `json:"kind"`
		Changed     bool   `json:"changed"`
		Cached      bool   `json:"cached,omitempty"`
		Diagnostics int    `json:"diagnostics"`
		Diff        string `json:"diff,omitempty"`
		Formatted   string `json:"formatted,omitempty"`
		Error       string `json:"error,omitempty"`
	}
	payload := struct {
		Mode    string       `json:"mode"`
		Results []jsonResult `json:"results"`
	}{Mode: mode.String(), Results: make([]jsonResult, 0, len(results))}

	for _, res := range results {
		jr := jsonResult{
			Path:    res.Path,
			Kind:    res.Kind.String(),
			Changed: res.Changed,
			Cached:  res.Cached,
			Diff:    res.Diff,
		}
		if res.Bag != nil {
			jr.Diagnostics = res.Bag.Len()
		}
		if mode == driver.ModeStdout {
			jr.Formatted = string(res.Formatted)
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload.Results = append(payload.Results, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
