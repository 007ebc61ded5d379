package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jandex/classfile"
	"jandex/dotted"
	"jandex/index"
	"jandex/internal/trace"
)

// ScanStats summarizes one scan: how many class files indexed
// successfully, how many duplicate-name replacements occurred in
// lenient mode, and how many malformed class files were skipped
// (lenient mode only — strict mode aborts on the first one instead).
type ScanStats struct {
	ClassesIndexed int `json:"classesIndexed"`
	Replacements   int `json:"replacements"`
	Skipped        int `json:"skipped"`
}

func modeFromFlag(strict bool) index.Mode {
	if strict {
		return index.Strict
	}
	return index.Lenient
}

// runScan walks path, feeds every discovered class file through the
// reader, and returns the frozen Index plus summary statistics. In
// strict mode the first malformed class file or duplicate class name
// aborts the whole scan; in lenient mode both are tolerated and
// counted.
func runScan(ctx context.Context, path string, strict bool) (*index.Index, ScanStats, error) {
	files, err := collectClassFiles(ctx, path)
	if err != nil {
		return nil, ScanStats{}, err
	}

	interner := dotted.NewInterner()
	builder := index.NewBuilder(modeFromFlag(strict))

	var stats ScanStats
	for _, f := range files {
		class, anns, err := classfile.ReadClass(f.data, interner)
		if err != nil {
			if strict {
				return nil, stats, fmt.Errorf("%s: %w", f.origin, err)
			}
			trace.Warning("skipping malformed class file %s: %v", f.origin, err)
			stats.Skipped++
			continue
		}
		if err := builder.Append(class, anns); err != nil {
			if strict {
				return nil, stats, fmt.Errorf("%s: %w", f.origin, err)
			}
			trace.Warning("%s: %v", f.origin, err)
		}
		stats.ClassesIndexed++
	}
	stats.Replacements = builder.Replacements()

	return builder.Build(), stats, nil
}

func newScanCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "scan <jar-or-directory>",
		Short: "Index the class files under a jar, war, or directory and report scan statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ctx := cmd.Context()

			cache := loadFingerprintCache(defaultCachePath())
			if data, ok := fingerprintInput(path); ok {
				if cached, ok := cache.lookup(path, data); ok {
					trace.Config("fingerprint unchanged for %s, using cached scan statistics", path)
					printStats(cmd, cached)
					return nil
				}
			}

			_, stats, err := runScan(ctx, path, strict)
			if err != nil {
				return err
			}

			if data, ok := fingerprintInput(path); ok {
				cache.store(path, data, stats)
			}

			printStats(cmd, stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "abort the scan on the first malformed class file or duplicate class name")
	return cmd
}

func printStats(cmd *cobra.Command, stats ScanStats) {
	fmt.Fprintf(cmd.OutOrStdout(), "classes indexed: %d\n", stats.ClassesIndexed)
	fmt.Fprintf(cmd.OutOrStdout(), "replacements:    %d\n", stats.Replacements)
	fmt.Fprintf(cmd.OutOrStdout(), "skipped:         %d\n", stats.Skipped)
}
