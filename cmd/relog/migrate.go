package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"relog/internal/driver"
	"relog/internal/project"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [flags] <file.java|directory>...",
	Short: "Rewrite log4j appenders onto logback",
	Long: `Migrate parses the given Java sources, replaces AppenderSkeleton
subclasses with AppenderBase<ILoggingEvent> equivalents, and reports what
changed. Without --write nothing touches the disk.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().Bool("write", false, "write changes back to disk")
	migrateCmd.Flags().Bool("diff", false, "print unified diffs for changed files")
	migrateCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	migrateCmd.Flags().Bool("no-cache", false, "bypass the on-disk result cache")
	migrateCmd.Flags().String("config", "", "explicit relog.toml path (default: walk up from the first target)")
}

var (
	statusChangedColor = color.New(color.FgGreen)
	statusFailedColor  = color.New(color.FgRed, color.Bold)
)

func runMigrate(cmd *cobra.Command, args []string) error {
	doWrite, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	showDiff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	if err := configureColor(cmd); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath, args[0])
	if err != nil {
		return err
	}
	rule := cfg.BuildRule()

	if !cmd.Flags().Changed("jobs") {
		jobs = cfg.Run.Jobs
	}

	var cache *driver.DiskCache
	if !noCache && cfg.Run.Cache {
		cache, err = driver.OpenDiskCache("relog")
		if err != nil {
			// A broken cache dir degrades to uncached runs.
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: result cache unavailable: %v\n", err)
			}
			cache = nil
		}
	}

	paths, err := collectTargets(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "no Java files found")
		}
		return nil
	}

	results, err := driver.MigratePaths(cmd.Context(), paths, driver.Options{
		Rule:           rule,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Cache:          cache,
	})
	if err != nil {
		return err
	}

	return reportResults(cmd, results, reportOptions{
		write: doWrite,
		diff:  showDiff,
		quiet: quiet,
	})
}

type reportOptions struct {
	write bool
	diff  bool
	quiet bool
}

func reportResults(cmd *cobra.Command, results []driver.FileResult, opts reportOptions) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	var changed, unchanged, failed int
	for _, res := range results {
		switch res.Status {
		case driver.StatusChanged:
			changed++
			if !opts.quiet {
				fmt.Fprintf(out, "%s %s\n", statusChangedColor.Sprint("migrated"), res.Path)
			}
			if opts.diff {
				fmt.Fprint(out, driver.Diff(res))
			}
			if opts.write {
				if err := driver.WriteBack(res); err != nil {
					return err
				}
			}
		case driver.StatusFailed:
			failed++
			fmt.Fprintf(errOut, "%s %s: %v\n", statusFailedColor.Sprint("failed"), res.Path, res.Err)
		default:
			unchanged++
		}
	}

	if !opts.quiet {
		fmt.Fprintf(out, "%d migrated, %d unchanged, %d failed\n", changed, unchanged, failed)
		if changed > 0 && !opts.write {
			fmt.Fprintln(out, "run again with --write to apply")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d files failed", failed)
	}
	return nil
}

// loadConfig resolves the effective configuration: an explicit --config path
// wins, otherwise the nearest relog.toml above the first target, otherwise
// the defaults.
func loadConfig(configPath, firstTarget string) (*project.Config, error) {
	if configPath != "" {
		return project.Load(configPath)
	}
	start := firstTarget
	if info, err := os.Stat(start); err != nil || !info.IsDir() {
		start = filepath.Dir(start)
	}
	cfg, _, _, err := project.Discover(start)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// collectTargets expands directory arguments into their *.java files.
func collectTargets(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path: %w", err)
		}
		if info.IsDir() {
			files, err := driver.ListJavaFiles(arg)
			if err != nil {
				return nil, err
			}
			paths = append(paths, files...)
			continue
		}
		paths = append(paths, arg)
	}
	return paths, nil
}
