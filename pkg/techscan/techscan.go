// Package techscan runs a complete scan: walk a directory, classify the files
// by language and render the report.
package techscan

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fulmenhq/techscan/pkg/analysis"
	"github.com/fulmenhq/techscan/pkg/language"
	"github.com/fulmenhq/techscan/pkg/logger"
	"github.com/fulmenhq/techscan/pkg/render"
	"github.com/fulmenhq/techscan/pkg/scanner"
)

// Params describes one scan.
type Params struct {
	Root     string
	Excludes []string
	// Format is a reporter token; empty selects render.DefaultFormat.
	Format   string
	Workers  int
	NoIgnore bool
	// Registry defaults to language.Default().
	Registry *language.Registry
}

// Run scans p.Root and writes the rendered report to w. The format is checked
// before the filesystem is touched, so an unsupported token fails even for a
// missing directory. Nothing is written when the scan fails or ctx is
// cancelled.
func Run(ctx context.Context, p Params, w io.Writer) (*analysis.Report, error) {
	report, err := Scan(ctx, p)
	if err != nil {
		return nil, err
	}

	if err := render.Render(w, report, formatOf(p)); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return report, nil
}

// Scan performs the walk and aggregation without rendering.
func Scan(ctx context.Context, p Params) (*analysis.Report, error) {
	if err := render.ValidateFormat(formatOf(p)); err != nil {
		return nil, err
	}

	walker, err := scanner.New(p.Root, scanner.Options{
		Excludes: p.Excludes,
		NoIgnore: p.NoIgnore,
		Workers:  p.Workers,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Scanning directory", logger.String("dir", p.Root), logger.Int("workers", p.Workers))
	start := time.Now()

	agg := analysis.NewAggregator(p.Root, analysis.NewClassifier(p.Registry))
	report := agg.Aggregate(walker.Files(ctx))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan of %s interrupted: %w", p.Root, err)
	}

	logger.Debug("Scan complete",
		logger.String("dir", p.Root),
		logger.Int("total_files", report.TotalFileCount),
		logger.Int("languages", len(report.Languages)),
		logger.Duration("took", time.Since(start)),
	)
	return &report, nil
}

func formatOf(p Params) string {
	if p.Format == "" {
		return string(render.DefaultFormat)
	}
	return p.Format
}
