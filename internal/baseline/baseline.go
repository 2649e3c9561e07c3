// Package baseline persists fingerprints of accepted findings so that known
// problems can be ignored while new ones still gate the build.
package baseline

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/lintgate/lintgate/internal/types"
)

// Baseline is a snapshot of known findings that should be ignored.
type Baseline struct {
	Version      string   `json:"version"`
	CreatedAt    string   `json:"created_at"`
	Fingerprints []string `json:"fingerprints"`

	index map[string]bool
}

// Create builds a baseline from every finding in the results.
func Create(results map[string]*types.ToolResult) *Baseline {
	index := make(map[string]bool)
	var fingerprints []string

	for id, result := range results {
		for _, f := range result.Findings {
			fp := fingerprint(id, f)
			if index[fp] {
				continue
			}
			index[fp] = true
			fingerprints = append(fingerprints, fp)
		}
	}

	// Sort for deterministic output
	sort.Strings(fingerprints)

	return &Baseline{
		Version:      "1.0",
		Fingerprints: fingerprints,
		index:        index,
	}
}

// Load reads a baseline from a JSON file.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline file: %w", err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse baseline file: %w", err)
	}

	b.index = make(map[string]bool, len(b.Fingerprints))
	for _, fp := range b.Fingerprints {
		b.index[fp] = true
	}
	return &b, nil
}

// Save writes the baseline to a JSON file.
func (b *Baseline) Save(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write baseline file: %w", err)
	}
	return nil
}

// IsKnown reports whether a finding is in the baseline.
func (b *Baseline) IsKnown(toolID string, f *types.Finding) bool {
	if b == nil || b.index == nil {
		return false
	}
	return b.index[fingerprint(toolID, f)]
}

// Filter returns a copy of the results without baselined findings, plus the
// number of findings dropped. The input results are left untouched.
func Filter(results map[string]*types.ToolResult, b *Baseline) (map[string]*types.ToolResult, int) {
	if b == nil {
		return results, 0
	}

	filtered := make(map[string]*types.ToolResult, len(results))
	dropped := 0
	for id, result := range results {
		keep := &types.ToolResult{Tool: result.Tool}
		for _, f := range result.Findings {
			if b.IsKnown(id, f) {
				dropped++
				continue
			}
			keep.Findings = append(keep.Findings, f)
		}
		filtered[id] = keep
	}
	return filtered, dropped
}

// fingerprint hashes the stable identity of a finding. The row is left out so
// fingerprints survive unrelated edits on the same line.
func fingerprint(toolID string, f *types.Finding) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%s", toolID, f.File, f.Line, f.Message)))
	return fmt.Sprintf("%x", sum[:8])
}
