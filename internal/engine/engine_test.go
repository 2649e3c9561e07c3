package engine

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintgate/lintgate/internal/source"
	"github.com/lintgate/lintgate/internal/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testWorkspace(t *testing.T, files map[string]string) (*source.Workspace, []*source.File) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	cache, err := source.NewDocumentCache(16)
	if err != nil {
		t.Fatal(err)
	}
	ws := source.NewWorkspace(dir, nil, nil, cache)
	discovered, err := ws.Discover()
	if err != nil {
		t.Fatal(err)
	}
	return ws, discovered
}

// scriptedInspector returns canned findings per file name and records which
// files it was asked to inspect.
type scriptedInspector struct {
	findings map[string][]*types.Finding
	failOn   string
	calls    []string
}

func (s *scriptedInspector) Inspect(file types.FileRef, doc types.DocumentRef) ([]*types.Finding, error) {
	s.calls = append(s.calls, file.Name())
	out := s.findings[file.Name()]
	if file.Name() == s.failOn {
		return out, errors.New("boom")
	}
	return out, nil
}

func finding(file string, line int) *types.Finding {
	return &types.Finding{File: file, Line: line, Message: "problem"}
}

// =============================================================================
// Test Run
// =============================================================================

func TestRunCollectsAndStampsSeverity(t *testing.T) {
	ws, files := testWorkspace(t, map[string]string{"a.go": "x", "b.go": "y"})

	insp := &scriptedInspector{findings: map[string][]*types.Finding{
		"a.go": {finding("a.go", 1), finding("a.go", 2)},
		"b.go": {finding("b.go", 5)},
	}}
	tools := map[string]types.ToolDescriptor{
		"XInspection": {ID: "XInspection", Severity: types.SeverityWarning, Capability: insp},
	}

	results, ok, err := New(ws, discardLogger()).Run(tools, files, types.Limits{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !ok {
		t.Error("Run() ok = false with no limits configured")
	}

	result := results["XInspection"]
	if result == nil {
		t.Fatal("no result for XInspection")
	}
	if len(result.Findings) != 3 {
		t.Fatalf("got %d findings, want 3", len(result.Findings))
	}
	for _, f := range result.Findings {
		if f.Severity != types.SeverityWarning {
			t.Errorf("finding severity = %q, want warning (stamped from the tool)", f.Severity)
		}
	}
}

func TestRunEarlyExitStopsFilesAndTools(t *testing.T) {
	ws, files := testWorkspace(t, map[string]string{"a.go": "x", "b.go": "y"})

	first := &scriptedInspector{findings: map[string][]*types.Finding{
		"a.go": {finding("a.go", 1), finding("a.go", 2), finding("a.go", 3)},
	}}
	second := &scriptedInspector{findings: map[string][]*types.Finding{
		"a.go": {finding("a.go", 9)},
	}}
	tools := map[string]types.ToolDescriptor{
		"AInspection": {ID: "AInspection", Severity: types.SeverityError, Capability: first},
		"BInspection": {ID: "BInspection", Severity: types.SeverityError, Capability: second},
	}

	results, ok, err := New(ws, discardLogger()).Run(tools, files, types.Limits{MaxErrors: intp(2)})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ok {
		t.Error("Run() ok = true, want false after threshold exceeded")
	}

	// The second error latched failure: the third is never recorded and the
	// remaining file is never visited.
	if got := len(results["AInspection"].Findings); got != 2 {
		t.Errorf("breaching tool recorded %d findings, want 2", got)
	}
	if len(first.calls) != 1 {
		t.Errorf("breaching tool visited %d files, want 1", len(first.calls))
	}

	// The early exit is global: the next tool never runs at all.
	if len(second.calls) != 0 {
		t.Errorf("tool after the breach inspected %v, want no calls", second.calls)
	}
	if _, present := results["BInspection"]; present {
		t.Error("tool after the breach has a result, want none")
	}
}

func TestRunSkipsUnsupportedToolKind(t *testing.T) {
	ws, files := testWorkspace(t, map[string]string{"a.go": "x"})

	insp := &scriptedInspector{findings: map[string][]*types.Finding{
		"a.go": {finding("a.go", 1)},
	}}
	tools := map[string]types.ToolDescriptor{
		"GlobalInspection": {ID: "GlobalInspection", Severity: types.SeverityError, Capability: struct{}{}},
		"PerFileInspection": {ID: "PerFileInspection", Severity: types.SeverityInfo, Capability: insp},
	}

	results, ok, err := New(ws, discardLogger()).Run(tools, files, types.Limits{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !ok {
		t.Error("unsupported tool kind must not fail the run")
	}
	if _, present := results["GlobalInspection"]; present {
		t.Error("unsupported tool must not produce a result")
	}
	if len(results["PerFileInspection"].Findings) != 1 {
		t.Error("per-file tool must still run when another tool is unsupported")
	}
}

func TestRunToolFailureIsolated(t *testing.T) {
	ws, files := testWorkspace(t, map[string]string{"a.go": "x", "b.go": "y"})

	failing := &scriptedInspector{
		findings: map[string][]*types.Finding{"a.go": {finding("a.go", 1)}},
		failOn:   "a.go",
	}
	healthy := &scriptedInspector{findings: map[string][]*types.Finding{
		"a.go": {finding("a.go", 2)},
	}}
	tools := map[string]types.ToolDescriptor{
		"FailingInspection": {ID: "FailingInspection", Severity: types.SeverityWarning, Capability: failing},
		"HealthyInspection": {ID: "HealthyInspection", Severity: types.SeverityWarning, Capability: healthy},
	}

	results, ok, err := New(ws, discardLogger()).Run(tools, files, types.Limits{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !ok {
		t.Error("a tool execution failure must not fail the run")
	}

	// Partial findings from the failing pass are accepted as-is.
	if got := len(results["FailingInspection"].Findings); got != 1 {
		t.Errorf("failing tool kept %d findings, want 1", got)
	}
	// The failure must not suppress other tools' findings for the same file.
	if got := len(results["HealthyInspection"].Findings); got != 1 {
		t.Errorf("healthy tool recorded %d findings, want 1", got)
	}
	if len(failing.calls) != 2 {
		t.Errorf("failing tool visited %d files, want 2 (remaining files still attempted)", len(failing.calls))
	}
}

func TestRunHonorsApplicability(t *testing.T) {
	ws, files := testWorkspace(t, map[string]string{"a.js": "x", "b.ts": "y"})

	insp := &scriptedInspector{findings: map[string][]*types.Finding{
		"a.js": {finding("a.js", 1)},
		"b.ts": {finding("b.ts", 1)},
	}}
	tools := map[string]types.ToolDescriptor{
		"TSOnlyInspection": {ID: "TSOnlyInspection", Scope: "typescript", Severity: types.SeverityWarning, Capability: insp},
	}

	results, _, err := New(ws, discardLogger()).Run(tools, files, types.Limits{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := len(insp.calls); got != 1 || insp.calls[0] != "b.ts" {
		t.Errorf("inspected %v, want only b.ts", insp.calls)
	}
	if got := len(results["TSOnlyInspection"].Findings); got != 1 {
		t.Errorf("got %d findings, want 1", got)
	}
}
