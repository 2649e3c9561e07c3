// Package report flattens per-tool results into a deterministically ordered
// stream of findings and drives the configured renderer sinks.
package report

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/lintgate/lintgate/internal/types"
)

// Renderer is a pluggable report sink. The reporter feeds it one finding at a
// time and finalizes it exactly once after the whole stream.
type Renderer interface {
	Accept(finding *types.Finding, toolID string) error
	Finalize() error
}

// Entry pairs a finding with the id of the tool that produced it.
type Entry struct {
	Finding *types.Finding
	ToolID  string
}

// Flatten collects all (finding, tool id) pairs from the results, sorts them
// by (line, row) ascending, and groups them by file name. Group order is file
// encounter order within the sorted sequence, not alphabetical.
func Flatten(results map[string]*types.ToolResult) []Entry {
	var entries []Entry
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		for _, f := range results[id].Findings {
			entries = append(entries, Entry{Finding: f, ToolID: id})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return types.CompareLocation(entries[i].Finding, entries[j].Finding) < 0
	})

	// Group by file, preserving the sorted order inside each group and the
	// encounter order of the groups themselves.
	fileOrder := make([]string, 0)
	grouped := make(map[string][]Entry)
	for _, e := range entries {
		if _, ok := grouped[e.Finding.File]; !ok {
			fileOrder = append(fileOrder, e.Finding.File)
		}
		grouped[e.Finding.File] = append(grouped[e.Finding.File], e)
	}

	out := make([]Entry, 0, len(entries))
	for _, file := range fileOrder {
		out = append(out, grouped[file]...)
	}
	return out
}

// Reporter emits findings to the console log and to every renderer.
type Reporter struct {
	logger *slog.Logger
}

// NewReporter creates a Reporter.
func NewReporter(logger *slog.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report streams every finding, in flattened order, to the console log
// (unless quiet) and to every renderer, then finalizes each renderer once.
// Renderer failures are collected rather than aborting the stream, so every
// sink still gets finalized.
func (r *Reporter) Report(results map[string]*types.ToolResult, renderers []Renderer, quiet bool) error {
	var errs []error

	for _, e := range Flatten(results) {
		if !quiet {
			r.logger.Log(context.Background(), levelFor(e.Finding.Severity), e.Finding.Message,
				"file", e.Finding.File,
				"line", e.Finding.Line,
				"row", e.Finding.Row,
				"severity", string(e.Finding.Severity),
				"tool", e.ToolID)
		}
		for _, renderer := range renderers {
			if err := renderer.Accept(e.Finding, e.ToolID); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, renderer := range renderers {
		if err := renderer.Finalize(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// levelFor maps a severity to its console channel. Warnings and weak
// warnings share the warn channel.
func levelFor(s types.Severity) slog.Level {
	switch s {
	case types.SeverityError:
		return slog.LevelError
	case types.SeverityWarning, types.SeverityWeakWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
