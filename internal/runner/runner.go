// Package runner coordinates a whole lintgate run: tool resolution, the
// analysis loop, baseline filtering, reporting, and fix application.
package runner

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lintgate/lintgate/internal/baseline"
	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/engine"
	"github.com/lintgate/lintgate/internal/fix"
	"github.com/lintgate/lintgate/internal/profile"
	"github.com/lintgate/lintgate/internal/registry"
	"github.com/lintgate/lintgate/internal/report"
	"github.com/lintgate/lintgate/internal/source"
	"github.com/lintgate/lintgate/internal/types"
)

// Options holds per-invocation settings that come from flags rather than the
// config file.
type Options struct {
	UseBaseline    bool
	CreateBaseline bool
	BaselinePath   string
}

// Orchestrator coordinates the run.
type Orchestrator struct {
	cfg    *config.Config
	opts   Options
	reg    *registry.Registry
	cache  *lru.Cache[string, *source.Document]
	logger *slog.Logger
	out    io.Writer
}

// New creates an Orchestrator. The document cache is the process-lifetime
// resource created once by the caller.
func New(cfg *config.Config, opts Options, reg *registry.Registry, cache *lru.Cache[string, *source.Document], logger *slog.Logger, out io.Writer) *Orchestrator {
	return &Orchestrator{cfg: cfg, opts: opts, reg: reg, cache: cache, logger: logger, out: out}
}

// Result holds the outcome of a run.
type Result struct {
	TotalFindings   int
	BaselineIgnored int

	// OK is false iff a configured threshold was exceeded. It is the only
	// status a caller needs to decide whether to fail a build.
	OK bool
}

// Run executes the full workflow.
func (o *Orchestrator) Run() (*Result, error) {
	store := profile.NewStore(o.resolvePath(o.cfg.ProfileDir))

	tools, err := registry.Resolve(o.cfg, o.reg, store, o.logger)
	if err != nil {
		return nil, err
	}

	ws := source.NewWorkspace(o.cfg.Root, o.cfg.Include, o.cfg.Exclude, o.cache)
	files, err := ws.Discover()
	if err != nil {
		return nil, err
	}

	// Thresholds gate raw counts. Under an active baseline those counts
	// include accepted findings, so gating on them would fail builds on
	// problems the baseline already admitted; thresholds are disabled for
	// baseline runs. Baseline creation snapshots the complete current state,
	// so it must see every finding too.
	limits := o.cfg.Limits()
	if o.opts.UseBaseline || o.opts.CreateBaseline {
		limits = types.Limits{}
	}

	results, ok, err := engine.New(ws, o.logger).Run(tools, files, limits)
	if err != nil {
		return nil, err
	}

	result := &Result{OK: ok}

	baselineFile := o.resolvePath(o.opts.BaselinePath)
	if o.opts.UseBaseline {
		if b := o.loadBaseline(baselineFile); b != nil {
			results, result.BaselineIgnored = baseline.Filter(results, b)
		}
	}

	renderers, closeOut, err := o.renderers()
	if err != nil {
		return nil, err
	}
	reportErr := report.NewReporter(o.logger).Report(results, renderers, o.cfg.Quiet)
	if closeOut != nil {
		if err := closeOut(); err != nil && reportErr == nil {
			reportErr = err
		}
	}
	if reportErr != nil {
		return nil, fmt.Errorf("error rendering report: %w", reportErr)
	}

	for _, r := range results {
		result.TotalFindings += len(r.Findings)
	}

	if o.opts.CreateBaseline {
		b := baseline.Create(results)
		b.CreatedAt = time.Now().UTC().Format(time.RFC3339)
		if err := b.Save(baselineFile); err != nil {
			return nil, err
		}
		o.logger.Info("baseline created", "path", baselineFile, "findings", len(b.Fingerprints))
		// Creating a baseline accepts the current state.
		result.OK = true
		return result, nil
	}

	if err := fix.NewApplicator(ws, o.logger).Apply(results, o.cfg.ApplyFixes); err != nil {
		return nil, err
	}

	if result.BaselineIgnored > 0 && !o.cfg.Quiet {
		o.logger.Info("baseline findings ignored", "count", result.BaselineIgnored)
	}

	return result, nil
}

// renderers builds the sink list for the configured format. The returned
// close function, when non-nil, must be called after reporting.
func (o *Orchestrator) renderers() ([]report.Renderer, func() error, error) {
	switch o.cfg.Format {
	case "json", "xml":
		f, err := os.Create(o.cfg.Output)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening output file: %w", err)
		}
		var r report.Renderer
		if o.cfg.Format == "json" {
			r = report.NewJSONRenderer(f)
		} else {
			r = report.NewXMLRenderer(f)
		}
		return []report.Renderer{r}, f.Close, nil
	default:
		return []report.Renderer{report.NewConsoleRenderer(o.out, true)}, nil, nil
	}
}

func (o *Orchestrator) loadBaseline(path string) *baseline.Baseline {
	if _, err := os.Stat(path); err != nil {
		return nil // no baseline yet, not an error
	}
	b, err := baseline.Load(path)
	if err != nil {
		o.logger.Warn("failed to load baseline", "path", path, "error", err)
		return nil
	}
	return b
}

func (o *Orchestrator) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.cfg.Root, path)
}
