package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/lintgate/lintgate/internal/types"
)

// Version is stamped into machine-readable report headers.
const Version = "1.0.0"

// JSONHeader identifies the run that produced a report.
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	RunID     string `json:"run_id"`
	Timestamp string `json:"timestamp"`
}

// JSONFinding is one finding in the JSON report.
type JSONFinding struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Row      int    `json:"row"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Tool     string `json:"tool"`
}

// JSONReport is the machine-readable report document.
type JSONReport struct {
	Header   JSONHeader    `json:"header"`
	Findings []JSONFinding `json:"findings"`
}

// JSONRenderer accumulates findings and writes one JSON document on
// finalize.
type JSONRenderer struct {
	out    io.Writer
	report JSONReport
}

// NewJSONRenderer creates a JSONRenderer writing to out.
func NewJSONRenderer(out io.Writer) *JSONRenderer {
	return &JSONRenderer{
		out: out,
		report: JSONReport{
			Header: JSONHeader{
				Tool:      "lintgate",
				Version:   Version,
				RunID:     uuid.NewString(),
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			},
			Findings: []JSONFinding{},
		},
	}
}

// Accept buffers one finding.
func (r *JSONRenderer) Accept(f *types.Finding, toolID string) error {
	r.report.Findings = append(r.report.Findings, JSONFinding{
		File:     f.File,
		Line:     f.Line,
		Row:      f.Row,
		Severity: string(f.Severity),
		Message:  f.Message,
		Tool:     toolID,
	})
	return nil
}

// Finalize writes the report document.
func (r *JSONRenderer) Finalize() error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(r.report)
}
