// Package driver runs the migration pipeline over files and directories:
// load, parse, resolve, rewrite, print. It owns the batch concerns the
// rewrite itself stays free of, namely parallelism, result caching, and
// write-back.
package driver

import (
	"fmt"
	"os"

	"relog/internal/diag"
	"relog/internal/parser"
	"relog/internal/printer"
	"relog/internal/resolve"
	"relog/internal/rewrite"
	"relog/internal/source"
)

// Status classifies the outcome for one file. A failed file never aborts
// the batch and never gets written back.
type Status int

const (
	StatusUnchanged Status = iota
	StatusChanged
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusChanged:
		return "changed"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// FileResult is the outcome for one file of a batch.
type FileResult struct {
	Path   string
	Status Status
	// Original and Output hold the pre- and post-migration bytes. For
	// unchanged and failed files Output equals Original.
	Original []byte
	Output   []byte
	// Bag carries parse diagnostics, if the file got that far.
	Bag *diag.Bag
	// Err explains a StatusFailed: a load error, parse errors, or a
	// rewrite error.
	Err error
	// Cached is set when the verdict came from the disk cache.
	Cached bool
}

// Options configures a batch run.
type Options struct {
	Rule rewrite.Rule
	// Jobs caps parallel workers; 0 means one per CPU.
	Jobs int
	// MaxDiagnostics bounds per-file parse diagnostics.
	MaxDiagnostics int
	// Cache, when non-nil, skips files whose content and rule were already
	// seen to produce no change.
	Cache *DiskCache
}

const defaultMaxDiagnostics = 100

// MigrateOne runs the full pipeline over one already-loaded file.
func MigrateOne(f *source.File, rule rewrite.Rule, maxDiagnostics int) FileResult {
	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics
	}
	res := FileResult{
		Path:     f.Path,
		Original: f.Content,
		Output:   f.Content,
	}

	parsed := parser.ParseFile(f, parser.Options{MaxErrors: maxDiagnostics})
	res.Bag = parsed.Bag
	if parsed.Bag.HasErrors() {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("%s: %d parse errors", f.Path, parsed.Bag.Len())
		return res
	}

	resolve.Resolve(parsed.Unit, resolve.Options{Inherited: rule.ResolveOptions()})

	out, changed, err := rewrite.Migrate(f, parsed.Unit, rule, rewrite.TemplateSynthesizer{})
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("%s: %w", f.Path, err)
		return res
	}
	if !changed {
		res.Status = StatusUnchanged
		return res
	}

	res.Status = StatusChanged
	res.Output = printer.Print(f, out)
	return res
}

// MigratePath loads and migrates a single file from disk.
func MigratePath(path string, opts Options) FileResult {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return FileResult{
			Path:   path,
			Status: StatusFailed,
			Err:    fmt.Errorf("failed to load file: %w", err),
		}
	}
	return MigrateOne(fileSet.Get(id), opts.Rule, opts.MaxDiagnostics)
}

// WriteBack replaces the file on disk with the migrated bytes, keeping the
// original permissions. Unchanged and failed results are left alone.
func WriteBack(res FileResult) error {
	if res.Status != StatusChanged {
		return nil
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(res.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(res.Path, res.Output, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", res.Path, err)
	}
	return nil
}
