package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"phpfmt/internal/driver"
	"phpfmt/internal/style"
	"phpfmt/internal/ui"
)

var formatCmd = &cobra.Command{
	Use:   "format [flags] [path...]",
	Short: "Format PHP source files",
	RunE:  runFormat,
}

func init() {
	formatCmd.Flags().Bool("dry-run", false, "report files that would change without writing")
	formatCmd.Flags().Bool("stdin", false, "format standard input and print the result")
	formatCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	formatCmd.Flags().Bool("write", true, "rewrite files in place")
	formatCmd.Flags().String("format", "text", "output format (text|json)")
	formatCmd.Flags().String("config", "", "path to phpfmt.toml (default: nearest upward from the working directory)")
	formatCmd.Flags().Bool("cache", false, "skip files whose content is cached as already formatted")
	formatCmd.Flags().Bool("clear-cache", false, "discard the format cache before running")
	formatCmd.Flags().Int("width", 0, "override the maximum line width")
	formatCmd.Flags().Int("indent-width", 0, "override the indent width")
	formatCmd.Flags().Bool("tabs", false, "indent with tabs")
	formatCmd.Flags().String("trailing-comma", "", "override the trailing comma policy (none|always|multiline)")
}

func runFormat(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	flags := cmd.Flags()
	dryRun, _ := flags.GetBool("dry-run")
	useStdin, _ := flags.GetBool("stdin")
	toStdout, _ := flags.GetBool("stdout")
	write, _ := flags.GetBool("write")
	outputFormat, _ := flags.GetString("format")
	configPath, _ := flags.GetString("config")
	useCache, _ := flags.GetBool("cache")
	clearCache, _ := flags.GetBool("clear-cache")

	if clearCache {
		cache, cacheErr := driver.OpenCache("phpfmt")
		if cacheErr != nil {
			return fmt.Errorf("format: open cache: %w", cacheErr)
		}
		if dropErr := cache.DropAll(); dropErr != nil {
			return fmt.Errorf("format: clear cache: %w", dropErr)
		}
		// clearing alone is a complete run
		if len(args) == 0 && !useStdin {
			return nil
		}
	}

	if toStdout && dryRun {
		return fmt.Errorf("format: --stdout cannot be used with --dry-run")
	}
	if toStdout && outputFormat != "text" {
		return fmt.Errorf("format: --stdout is only supported with text output")
	}
	// --write=false without an explicit destination means stdout
	if !write && !dryRun && !useStdin {
		toStdout = true
	}

	cfg, err := resolveStyle(cmd, configPath)
	if err != nil {
		return err
	}

	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	jobs, _ := cmd.Root().PersistentFlags().GetInt("jobs")

	opts := driver.FormatOptions{
		Check:          dryRun,
		Stdout:         toStdout,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Style:          cfg,
	}

	if useStdin {
		if len(args) > 0 {
			return fmt.Errorf("format: --stdin takes no path arguments")
		}
		if err := driver.FormatStdin(os.Stdin, os.Stdout, opts); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", errorLabel(cmd), err)
			return fmt.Errorf("format: stdin input failed")
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("format: provide at least one path or --stdin")
	}

	if useCache {
		cache, cacheErr := driver.OpenCache("phpfmt")
		if cacheErr != nil {
			fmt.Fprintf(os.Stderr, "format: cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}

	results, err := runBatch(cmd.Context(), args, opts, outputFormat, quiet)
	if err != nil {
		return err
	}

	switch outputFormat {
	case "text":
		renderText(cmd, results, dryRun, toStdout, quiet)
	case "json":
		if err := renderJSON(results, dryRun); err != nil {
			return err
		}
	default:
		return fmt.Errorf("format: unsupported output format %q", outputFormat)
	}

	summary := driver.Summarize(results, dryRun)
	if summary.Failed > 0 {
		return fmt.Errorf("format: failed to format %d file(s)", summary.Failed)
	}
	if dryRun && summary.WouldChange > 0 {
		return fmt.Errorf("format: %d file(s) need formatting", summary.WouldChange)
	}
	return nil
}

// runBatch dispatches to the progress TUI for interactive multi-file runs
// and to the plain driver otherwise.
func runBatch(ctx context.Context, paths []string, opts driver.FormatOptions, outputFormat string, quiet bool) ([]driver.FormatResult, error) {
	interactive := outputFormat == "text" && !opts.Stdout && !quiet && isTerminal(os.Stdout)
	if !interactive {
		return driver.FormatPaths(ctx, paths, opts)
	}
	files, err := driver.ListSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) < 2 {
		return driver.FormatPaths(ctx, paths, opts)
	}
	return runFormatWithUI(ctx, files, opts)
}

type batchOutcome struct {
	results []driver.FormatResult
	err     error
}

func runFormatWithUI(ctx context.Context, files []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		results, err := driver.FormatPaths(ctx, files, optsCopy)
		outcomeCh <- batchOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("formatting", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

// resolveStyle loads the configuration and applies flag overrides on top.
func resolveStyle(cmd *cobra.Command, configPath string) (*style.Config, error) {
	cfg, err := style.Resolve(configPath, ".")
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if width, _ := flags.GetInt("width"); width > 0 {
		cfg.Width = width
	}
	if indent, _ := flags.GetInt("indent-width"); indent > 0 {
		cfg.IndentWidth = indent
	}
	if flags.Changed("tabs") {
		cfg.UseTabs, _ = flags.GetBool("tabs")
	}
	if trailing, _ := flags.GetString("trailing-comma"); trailing != "" {
		cfg.TrailingComma = style.TrailingComma(trailing)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func renderText(cmd *cobra.Command, results []driver.FormatResult, dryRun, toStdout, quiet bool) {
	label := errorLabel(cmd)
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s: %v\n", label, res.Path, res.Err)
			continue
		}
		switch {
		case toStdout:
			_, _ = os.Stdout.Write(res.Formatted)
		case dryRun && res.Changed && !quiet:
			fmt.Fprintln(os.Stdout, res.Path)
		case res.Changed && !quiet:
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}
}

func renderJSON(results []driver.FormatResult, dryRun bool) error {
	type jsonResult struct {
		Path    string `json:"path"`
		Changed bool   `json:"changed"`
		Error   string `json:"error,omitempty"`
		DryRun  bool   `json:"dry_run"`
	}
	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, DryRun: dryRun}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func errorLabel(cmd *cobra.Command) string {
	if useColor(cmd, os.Stderr) {
		return color.New(color.FgRed, color.Bold).Sprint("error")
	}
	return "error"
}
