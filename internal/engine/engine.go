package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/lintgate/lintgate/internal/source"
	"github.com/lintgate/lintgate/internal/types"
)

// Engine drives the analysis loop over a workspace. A single logical worker
// runs everything sequentially; the read scope held for each tool's file pass
// models the host's exclusive-access region, not parallelism.
type Engine struct {
	ws     *source.Workspace
	logger *slog.Logger
}

// New creates an Engine.
func New(ws *source.Workspace, logger *slog.Logger) *Engine {
	return &Engine{ws: ws, logger: logger}
}

// Run analyzes every applicable file with every tool in the effective set,
// in sorted tool-id order. It returns the per-tool results and whether no
// threshold was exceeded. Tool execution failures are logged and absorbed;
// only structural errors (a scope that cannot be acquired) abort the run.
func (e *Engine) Run(tools map[string]types.ToolDescriptor, files []*source.File, limits types.Limits) (map[string]*types.ToolResult, bool, error) {
	results := make(map[string]*types.ToolResult, len(tools))
	counters := NewCounters(limits)

	ids := make([]string, 0, len(tools))
	for id := range tools {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		tool := tools[id]

		inspector, ok := tool.Capability.(types.FileInspector)
		if !ok {
			e.logger.Warn("tool is not a per-file inspection, skipping",
				"tool", id, "capability", fmt.Sprintf("%T", tool.Capability))
			continue
		}

		result, err := e.runTool(tool, inspector, files, counters)
		if err != nil {
			return nil, false, err
		}
		results[id] = result

		// Global early exit: once a threshold trips, later tools never run.
		if !counters.OK() {
			break
		}
	}

	return results, counters.OK(), nil
}

// runTool analyzes every applicable file with one tool under a single read
// scope. It stops mid-pass as soon as the counters latch failure.
func (e *Engine) runTool(tool types.ToolDescriptor, inspector types.FileInspector, files []*source.File, counters *Counters) (*types.ToolResult, error) {
	guard, err := e.ws.AcquireRead()
	if err != nil {
		return nil, fmt.Errorf("analysis pass for %s: %w", tool.ID, err)
	}
	defer guard.Release()

	result := &types.ToolResult{Tool: tool}

	for _, f := range files {
		if !Applies(tool, f) {
			continue
		}

		doc, err := e.ws.Load(f)
		if err != nil {
			e.logger.Error("could not load file, skipping",
				"tool", tool.ID, "file", f.Name(), "error", err)
			continue
		}

		findings, err := inspector.Inspect(f, doc)
		if err != nil {
			// Recoverable at tool/file granularity: keep whatever partial
			// findings came back and move on.
			e.logger.Error("tool failed while analyzing file",
				"tool", tool.ID, "file", f.Name(), "error", err)
		}

		stop := false
		for _, finding := range findings {
			if tool.Severity.Valid() {
				finding.Severity = tool.Severity
			} else if !finding.Severity.Valid() {
				finding.Severity = types.SeverityWarning
			}
			result.Findings = append(result.Findings, finding)

			if !counters.Add(finding.Severity) {
				e.logger.Warn("finding threshold exceeded, stopping analysis",
					"tool", tool.ID, "file", f.Name(),
					"severity", string(finding.Severity))
				stop = true
				break
			}
		}
		if stop {
			break
		}
	}

	return result, nil
}
