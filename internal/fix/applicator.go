// Package fix applies single-candidate automatic fixes to the findings of
// tools that have fixing enabled, then commits and flushes every mutated
// document.
package fix

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/lintgate/lintgate/internal/source"
	"github.com/lintgate/lintgate/internal/types"
)

// entry is one applicable (finding, fix) pair.
type entry struct {
	finding *types.Finding
	fix     types.Fix
	toolID  string
}

// Applicator applies fixes against a workspace.
type Applicator struct {
	ws     *source.Workspace
	logger *slog.Logger

	touchedOrder []string
	touched      map[string]struct{}
}

// NewApplicator creates an Applicator.
func NewApplicator(ws *source.Workspace, logger *slog.Logger) *Applicator {
	return &Applicator{
		ws:      ws,
		logger:  logger,
		touched: make(map[string]struct{}),
	}
}

// Apply runs the fix protocol over the results. It is a no-op when enabled is
// false. Fixes declaring a write action run first, in order, inside one write
// scope; the rest run after it, outside any scope. Every individual failure
// is logged and absorbed; only a scope that cannot be acquired aborts.
func (a *Applicator) Apply(results map[string]*types.ToolResult, enabled bool) error {
	if !enabled {
		return nil
	}

	writeFixes, otherFixes := a.collect(results)
	if len(writeFixes) == 0 && len(otherFixes) == 0 {
		return nil
	}

	if len(writeFixes) > 0 {
		guard, err := a.ws.AcquireWrite()
		if err != nil {
			return fmt.Errorf("fix phase: %w", err)
		}
		for _, e := range writeFixes {
			a.applyOne(e)
		}
		guard.Release()
	}

	for _, e := range otherFixes {
		a.applyOne(e)
	}

	a.flush()
	return nil
}

// collect gathers eligible (finding, fix) pairs in stable tool order and
// partitions them by write requirement, preserving encounter order within
// each partition. A finding is eligible only with exactly one candidate fix.
func (a *Applicator) collect(results map[string]*types.ToolResult) (writeFixes, otherFixes []entry) {
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		result := results[id]
		if !result.Tool.FixEnabled {
			continue
		}
		for _, f := range result.Findings {
			if len(f.Fixes) != 1 {
				a.logger.Error("finding does not have exactly one candidate fix, skipping",
					"tool", id, "file", f.File, "line", f.Line, "candidates", len(f.Fixes))
				continue
			}
			e := entry{finding: f, fix: f.Fixes[0], toolID: id}
			if e.fix.RequiresWriteAction() {
				writeFixes = append(writeFixes, e)
			} else {
				otherFixes = append(otherFixes, e)
			}
		}
	}
	return writeFixes, otherFixes
}

// applyOne applies a single fix. A finding whose location was already
// consumed is a logged no-op. The document text is snapshotted around the
// fix so no-op fixes are detected without failing the run.
func (a *Applicator) applyOne(e entry) {
	loc := e.finding.Location
	if loc == nil {
		a.logger.Info("fix already applied, skipping",
			"fix", e.fix.Name(), "tool", e.toolID, "file", e.finding.File, "line", e.finding.Line)
		return
	}

	before := loc.Doc.Text()
	if err := invoke(e.fix, loc); err != nil {
		a.logger.Error("fix failed",
			"fix", e.fix.Name(), "tool", e.toolID,
			"file", e.finding.File, "line", e.finding.Line, "error", err)
		return
	}
	changed := loc.Doc.Text() != before

	a.logger.Info("applied fix",
		"fix", e.fix.Name(), "tool", e.toolID,
		"file", e.finding.File, "line", e.finding.Line, "changed", changed)

	// The location is consumed; a re-application must see it as nil.
	e.finding.Location = nil
	a.touch(e.finding.File)
}

// invoke calls the fix and converts a panic into an error so one bad fix
// cannot take down the rest of the batch.
func invoke(fix types.Fix, loc *types.Location) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fix panicked: %v", r)
		}
	}()
	return fix.Apply(loc)
}

func (a *Applicator) touch(file string) {
	if _, ok := a.touched[file]; ok {
		return
	}
	a.touched[file] = struct{}{}
	a.touchedOrder = append(a.touchedOrder, file)
}

// flush commits and persists every touched document. File identity is
// re-queried by name here, never through the now-consumed locations. A file
// without a live document is skipped with a warning.
func (a *Applicator) flush() {
	for _, file := range a.touchedOrder {
		doc, ok := a.ws.LookupDocument(file)
		if !ok {
			a.logger.Warn("no live document at flush time, skipping", "file", file)
			continue
		}
		doc.Commit()
		if err := doc.Flush(); err != nil {
			a.logger.Error("failed to persist document", "file", file, "error", err)
		}
	}
}
