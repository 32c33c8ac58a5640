// Package engine orchestrates the Source Index, Classifier, Resolver,
// Dependency Planner and Emitter into the single-threaded, sequential
// pipeline described by spec.md §5.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/viant/afs"

	"github.com/viant/emberdata-migrate/migrate/classify"
	"github.com/viant/emberdata-migrate/migrate/config"
	"github.com/viant/emberdata-migrate/migrate/core"
	"github.com/viant/emberdata-migrate/migrate/emit"
	"github.com/viant/emberdata-migrate/migrate/index"
	"github.com/viant/emberdata-migrate/migrate/plan"
	"github.com/viant/emberdata-migrate/migrate/resolve"
)

// Engine runs the full pipeline for one Config.
type Engine struct {
	cfg    *config.Config
	fs     afs.Service
	logger *slog.Logger
}

// Option configures an Engine, following the teacher's functional-options
// idiom (analyzer/option.go).
type Option func(*Engine)

// WithFileSystem overrides the afs.Service used for all reads/writes,
// primarily for tests.
func WithFileSystem(fs afs.Service) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithLogger overrides the structured logger used for per-file progress
// (verbose) and resolved-schedule/resolver-decision output (debug), per
// spec.md §6.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New constructs an Engine for cfg. The default logger writes leveled
// text to stderr; verbose/debug map to Info/Debug handler levels.
func New(cfg *config.Config, opts ...Option) *Engine {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelInfo
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}
	e := &Engine{
		cfg:    cfg,
		fs:     afs.New(),
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes Index -> Classify -> Resolve -> Plan -> Emit in sequence,
// per spec.md §5. A configuration error aborts immediately; every other
// error kind is collected as a warning and the run proceeds (spec.md §7).
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	report := &Report{}

	idx := index.New(e.cfg, e.fs)
	if err := idx.Build(ctx); err != nil {
		return nil, fmt.Errorf("build source index: %w", err)
	}
	report.Warnings = append(report.Warnings, idx.Warnings...)

	records := idx.Records()
	report.FilesIndexed = len(records)
	e.logger.Info("indexed source files", "count", len(records))
	for _, w := range idx.Warnings {
		if _, ok := w.(*core.ParseWarning); ok {
			report.ParseFailures++
		}
	}

	classifier := classify.New(e.cfg)
	for _, rec := range records {
		ownImportPath, _ := idx.ImportPathFor(rec)
		classifier.Classify(rec, ownImportPath)
		if rec.Summary != nil {
			report.Warnings = append(report.Warnings, rec.Summary.Warnings...)
		}
		switch rec.Classification {
		case core.ClassModel, core.ClassIntermediateModel:
			report.ModelsClassified++
		case core.ClassMixin:
			report.MixinsClassified++
		}
		e.logger.Info("classified file", "path", rec.CanonicalPath, "classification", string(rec.Classification))
	}

	resolver := resolve.New(idx, e.cfg)
	resolver.AssignHandles(records)
	resolutionWarnings := resolver.ResolveReferences(records)
	report.Warnings = append(report.Warnings, resolutionWarnings...)
	for _, w := range resolutionWarnings {
		e.logger.Debug("resolver decision", "warning", w.Error())
	}

	planner := plan.New(e.cfg, e.fs)
	plans, planWarnings := planner.Plan(ctx, records)
	report.Warnings = append(report.Warnings, planWarnings...)
	for _, w := range planWarnings {
		if _, ok := w.(*core.CycleWarning); ok {
			report.CyclesBroken++
		}
	}

	for _, p := range plans {
		if p.MaterializeAs == core.DecisionTrait && p.Origin.Classification == core.ClassMixin {
			report.MixinsConnected++
		}
		report.Outcomes = append(report.Outcomes, SymbolOutcome{
			CanonicalPath: p.Origin.CanonicalPath,
			Kind:          p.Handle.Kind,
			Decision:      p.MaterializeAs,
			KebabName:     p.KebabName,
		})
		e.logger.Debug("scheduled plan", "kebab", p.KebabName, "decision", string(p.MaterializeAs))
	}

	writer := emit.NewWriter(e.fs, e.cfg.DryRun)
	emitter := emit.New(e.cfg, writer)
	written, err := emitter.Emit(ctx, plans)
	if err != nil {
		return report, fmt.Errorf("emit: %w", err)
	}
	report.ArtifactsWritten = written
	e.logger.Info("emit complete", "artifacts_written", written, "dry_run", e.cfg.DryRun)

	return report, nil
}
