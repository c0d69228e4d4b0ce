// Package core runs the scan pipeline: walk, extract, plan, materialize.
package core

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dsymtools/buildlink/pkg/buildid"
	"github.com/dsymtools/buildlink/pkg/config"
	"github.com/dsymtools/buildlink/pkg/linker"
	"github.com/dsymtools/buildlink/pkg/logging"
	"github.com/dsymtools/buildlink/pkg/types"
	"github.com/dsymtools/buildlink/pkg/walker"
)

// Options configures a single scan run.
type Options struct {
	// DebugDir is the root of the debug-symbol tree.
	DebugDir string

	// DryRun reports would-be links without touching the filesystem.
	DryRun bool

	// SkipSuffixes lists filename suffixes excluded from extraction.
	SkipSuffixes []string
}

// Stats summarizes what a run did.
type Stats struct {
	Scanned int
	Linked  int
	Skipped int
	Missing int
}

// Run walks the debug tree once and indexes every file that carries a
// build identifier. Per file: a skip-suffixed name is ignored outright, a
// missing identifier is logged as a warning, and everything else either
// links or aborts the whole run. Cancellation is checked between files.
func Run(ctx context.Context, fsys types.FS, src buildid.Source, opts Options) (Stats, error) {
	logger := logging.GetLogger("core")
	indexRoot := filepath.Join(opts.DebugDir, config.IndexDirName)
	mat := linker.NewMaterializer(fsys, opts.DryRun)

	var stats Stats
	err := walker.Walk(fsys, opts.DebugDir, config.IndexDirName, func(dir, name string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++

		if hasSuffix(name, opts.SkipSuffixes) {
			stats.Skipped++
			logger.Debug().Str("file", name).Msg("skipped by suffix")
			return nil
		}

		path := filepath.Join(dir, name)
		id, found, err := src.Extract(ctx, path)
		if err != nil {
			return err
		}
		if !found {
			stats.Missing++
			logger.Warn().Str("path", path).Msg("no build ID found")
			return nil
		}

		plan, err := linker.NewPlan(indexRoot, path, id)
		if err != nil {
			return err
		}
		if err := mat.Apply(plan); err != nil {
			return err
		}
		stats.Linked++
		return nil
	})
	if err != nil {
		return stats, err
	}

	logger.Info().
		Int("scanned", stats.Scanned).
		Int("linked", stats.Linked).
		Int("skipped", stats.Skipped).
		Int("missing", stats.Missing).
		Bool("dryRun", opts.DryRun).
		Msg("scan complete")
	return stats, nil
}

func hasSuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
