package baseline

import (
	"path/filepath"
	"testing"

	"github.com/lintgate/lintgate/internal/types"
)

func sampleResults() map[string]*types.ToolResult {
	return map[string]*types.ToolResult{
		"XInspection": {
			Tool: types.ToolDescriptor{ID: "XInspection"},
			Findings: []*types.Finding{
				{File: "a.go", Line: 1, Message: "first"},
				{File: "a.go", Line: 2, Message: "second"},
			},
		},
		"YInspection": {
			Tool: types.ToolDescriptor{ID: "YInspection"},
			Findings: []*types.Finding{
				{File: "b.go", Line: 1, Message: "first"},
			},
		},
	}
}

func TestCreateSaveLoadRoundTrip(t *testing.T) {
	b := Create(sampleResults())
	if len(b.Fingerprints) != 3 {
		t.Fatalf("got %d fingerprints, want 3", len(b.Fingerprints))
	}
	for i := 1; i < len(b.Fingerprints); i++ {
		if b.Fingerprints[i-1] >= b.Fingerprints[i] {
			t.Fatal("fingerprints are not sorted")
		}
	}

	path := filepath.Join(t.TempDir(), "baseline.json")
	if err := b.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	known := &types.Finding{File: "a.go", Line: 1, Message: "first"}
	if !loaded.IsKnown("XInspection", known) {
		t.Error("round-tripped baseline does not recognize a recorded finding")
	}
	if loaded.IsKnown("YInspection", known) {
		t.Error("fingerprint must include the tool id")
	}
}

func TestFingerprintIgnoresRow(t *testing.T) {
	b := Create(map[string]*types.ToolResult{
		"X": {Findings: []*types.Finding{{File: "a.go", Line: 1, Row: 4, Message: "m"}}},
	})
	moved := &types.Finding{File: "a.go", Line: 1, Row: 9, Message: "m"}
	if !b.IsKnown("X", moved) {
		t.Error("a row shift must not invalidate the fingerprint")
	}
	otherLine := &types.Finding{File: "a.go", Line: 2, Row: 4, Message: "m"}
	if b.IsKnown("X", otherLine) {
		t.Error("a line shift must invalidate the fingerprint")
	}
}

func TestFilterDropsKnownFindings(t *testing.T) {
	results := sampleResults()
	b := Create(map[string]*types.ToolResult{
		"XInspection": {Findings: []*types.Finding{{File: "a.go", Line: 1, Message: "first"}}},
	})

	filtered, dropped := Filter(results, b)
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if n := len(filtered["XInspection"].Findings); n != 1 {
		t.Errorf("XInspection kept %d findings, want 1", n)
	}
	if n := len(filtered["YInspection"].Findings); n != 1 {
		t.Errorf("YInspection kept %d findings, want 1", n)
	}
	// The original results are untouched.
	if n := len(results["XInspection"].Findings); n != 2 {
		t.Errorf("input results mutated: %d findings", n)
	}
}

func TestFilterNilBaseline(t *testing.T) {
	results := sampleResults()
	filtered, dropped := Filter(results, nil)
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
	if len(filtered["XInspection"].Findings) != 2 {
		t.Error("nil baseline must pass results through unchanged")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected an error for a missing baseline file")
	}
}
