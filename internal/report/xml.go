package report

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/lintgate/lintgate/internal/types"
)

// XMLRenderer writes findings in the checkstyle XML format, which most CI
// systems already ingest.
type XMLRenderer struct {
	out io.Writer

	fileOrder []string
	byFile    map[string][]xmlError
}

type xmlFile struct {
	XMLName xml.Name   `xml:"file"`
	Name    string     `xml:"name,attr"`
	Errors  []xmlError `xml:"error"`
}

type xmlError struct {
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

type xmlReport struct {
	XMLName xml.Name  `xml:"checkstyle"`
	Version string    `xml:"version,attr"`
	Files   []xmlFile `xml:"file"`
}

// NewXMLRenderer creates an XMLRenderer writing to out.
func NewXMLRenderer(out io.Writer) *XMLRenderer {
	return &XMLRenderer{out: out, byFile: make(map[string][]xmlError)}
}

// Accept buffers one finding under its file.
func (r *XMLRenderer) Accept(f *types.Finding, toolID string) error {
	if _, ok := r.byFile[f.File]; !ok {
		r.fileOrder = append(r.fileOrder, f.File)
	}
	r.byFile[f.File] = append(r.byFile[f.File], xmlError{
		Line:     f.Line,
		Column:   f.Row,
		Severity: checkstyleSeverity(f.Severity),
		Message:  f.Message,
		Source:   toolID,
	})
	return nil
}

// Finalize writes the document.
func (r *XMLRenderer) Finalize() error {
	doc := xmlReport{Version: "4.3"}
	for _, file := range r.fileOrder {
		doc.Files = append(doc.Files, xmlFile{Name: file, Errors: r.byFile[file]})
	}

	if _, err := fmt.Fprint(r.out, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(r.out)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.out)
	return err
}

// checkstyleSeverity maps lintgate severities onto checkstyle's three
// levels. Weak warnings downgrade to warning.
func checkstyleSeverity(s types.Severity) string {
	switch s {
	case types.SeverityError:
		return "error"
	case types.SeverityWarning, types.SeverityWeakWarning:
		return "warning"
	default:
		return "info"
	}
}
