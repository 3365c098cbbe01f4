package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"relog/internal/source"
)

// ListJavaFiles returns the sorted list of every *.java file under dir.
func ListJavaFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".java") {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Deterministic order
	sort.Strings(files)
	return files, nil
}

// MigrateDir migrates every *.java file under dir in parallel.
func MigrateDir(ctx context.Context, dir string, opts Options) ([]FileResult, error) {
	files, err := ListJavaFiles(dir)
	if err != nil {
		return nil, err
	}
	return MigratePaths(ctx, files, opts)
}

// MigratePaths migrates the given files in parallel. Results come back in
// input order, one per path; individual failures land in their FileResult
// and never abort the batch.
func MigratePaths(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	// Preload everything through one FileSet so load errors surface before
	// any workers start.
	fileSet := source.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(paths))
	loadErrors := make(map[string]error, len(paths))

	for _, path := range paths {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	ruleHash := RuleFingerprint(opts.Rule)

	// Results are written per index, so no mutex is needed.
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				if loadErr, hadError := loadErrors[path]; hadError {
					results[i] = FileResult{
						Path:   path,
						Status: StatusFailed,
						Err:    fmt.Errorf("failed to load file: %w", loadErr),
					}
					return nil
				}

				file := fileSet.Get(fileIDs[path])
				key := cacheKey(file.Hash, ruleHash)

				var payload DiskPayload
				if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
					results[i] = FileResult{
						Path:     path,
						Status:   StatusUnchanged,
						Original: file.Content,
						Output:   file.Content,
						Cached:   true,
					}
					return nil
				}

				res := MigrateOne(file, opts.Rule, opts.MaxDiagnostics)
				res.Path = path

				if res.Status == StatusUnchanged {
					// Cache write failures are not worth failing the file over.
					_ = opts.Cache.Put(key, &DiskPayload{
						Schema:      diskCacheSchemaVersion,
						Path:        path,
						ContentHash: file.Hash,
						RuleHash:    ruleHash,
					})
				}

				results[i] = res
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, nil
}
