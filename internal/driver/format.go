// Package driver coordinates formatting runs: file discovery, parallel
// execution, atomic writes, and result aggregation for the CLI.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"phpfmt/internal/diag"
	"phpfmt/internal/format"
	"phpfmt/internal/parser"
	"phpfmt/internal/source"
	"phpfmt/internal/style"
)

// FormatOptions configures a formatting run.
type FormatOptions struct {
	// Check reports would-change files without touching disk.
	Check bool
	// Stdout returns formatted content in the results instead of writing.
	Stdout bool
	// Jobs bounds the number of files formatted concurrently; zero means
	// GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
	// Style is shared read-only across workers; nil means the default.
	Style *style.Config
	// Cache, when non-nil, skips files whose content is already known to
	// be formatted under the active style.
	Cache *Cache
	// Events, when non-nil, receives a notification as each file starts
	// and finishes. Sends block, so the consumer must keep draining until
	// FormatPaths returns.
	Events chan<- Event
}

// FormatResult captures the outcome for a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// Summary aggregates a batch of results for exit-code and report purposes.
type Summary struct {
	Formatted   int
	Unchanged   int
	Failed      int
	WouldChange int
}

// Summarize folds results into counters; check selects dry-run accounting.
func Summarize(results []FormatResult, check bool) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case check && r.Changed:
			s.WouldChange++
		case r.Changed:
			s.Formatted++
		default:
			s.Unchanged++
		}
	}
	return s
}

// ExitCode returns the process exit code for the batch: non-zero when any
// file failed or a dry run found pending changes.
func (s Summary) ExitCode() int {
	if s.Failed > 0 || s.WouldChange > 0 {
		return 1
	}
	return 0
}

// FormatPaths formats the given files and directories (recursively
// collecting .php files, sorted and deduplicated) in parallel. Each
// worker owns one result slot, so results arrive in sorted path order
// regardless of scheduling. Per-file failures are recorded in the result
// and never abort the batch; cancellation stops dispatching new files but
// lets in-flight ones finish.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := opts.Style
	if cfg == nil {
		cfg = style.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	files, err := ListSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = formatOne(path, cfg, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOne(path string, cfg *style.Config, opts FormatOptions) FormatResult {
	opts.notify(path, StatusFormatting)
	res := formatFile(path, cfg, opts)
	switch {
	case res.Err != nil:
		opts.notify(path, StatusError)
	case res.Changed:
		opts.notify(path, StatusDone)
	default:
		opts.notify(path, StatusUnchanged)
	}
	return res
}

func formatFile(path string, cfg *style.Config, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the caller's arguments
	if err != nil {
		res.Err = err
		return res
	}

	if opts.Cache.Formatted(data, cfg) {
		if opts.Stdout {
			res.Formatted = data
		}
		return res
	}

	formatted, err := formatBytes(path, data, cfg, opts.MaxDiagnostics)
	if err != nil {
		res.Err = err
		return res
	}
	changed := !bytes.Equal(data, formatted)

	switch {
	case opts.Check:
		res.Changed = changed
	case opts.Stdout:
		res.Changed = changed
		res.Formatted = formatted
	default:
		if changed {
			if err := writeAtomic(path, formatted); err != nil {
				res.Err = err
				return res
			}
			res.Changed = true
		}
	}

	// formatted bytes are a fixed point under cfg in every mode
	_ = opts.Cache.MarkFormatted(formatted, cfg)
	return res
}

// formatBytes runs the full pipeline on one buffer: parse, lower, layout.
func formatBytes(name string, data []byte, cfg *style.Config, maxDiag int) ([]byte, error) {
	if maxDiag <= 0 {
		maxDiag = 256
	}
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, data)
	bag := diag.NewBag(maxDiag)

	maxErrors, convErr := safecast.Conv[uint](bag.Cap())
	if convErr != nil {
		maxErrors = 0
	}
	f, ok := parser.ParseFile(fileSet.Get(id), parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	if !ok || bag.HasErrors() {
		if d, found := bag.FirstError(); found {
			pos := fileSet.PosOf(d.Primary.File, d.Primary.Start)
			return nil, fmt.Errorf("%d:%d: %s: %s", pos.Line, pos.Col, d.Code, d.Message)
		}
		return nil, errors.New("parse failed")
	}
	return format.Format(f, cfg)
}

// writeAtomic replaces path via a temp file in the same directory so a
// crash never leaves a half-written source file. The original mode is
// preserved.
func writeAtomic(path string, data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".phpfmt-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// ListSourceFiles expands files and directories into a sorted,
// deduplicated list. Directories are walked recursively for .php files;
// a file named explicitly is taken regardless of its extension.
func ListSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if filepath.Ext(path) == ".php" {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}
		addFile(p)
	}

	sort.Strings(files)
	return files, nil
}
