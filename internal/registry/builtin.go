package registry

import (
	"fmt"
	"strings"

	"github.com/lintgate/lintgate/internal/types"
)

// Default returns a registry populated with the builtin inspections, so the
// binary is useful without any host plugins.
func Default() *Registry {
	r := New()
	builtins := []types.ToolDescriptor{
		{
			ID:          "TrailingWhitespaceInspection",
			DisplayName: "Trailing whitespace",
			Severity:    types.SeverityWarning,
			Capability:  trailingWhitespace{},
		},
		{
			ID:          "LongLineInspection",
			DisplayName: "Line longer than 120 characters",
			Severity:    types.SeverityWeakWarning,
			Capability:  longLine{limit: 120},
		},
		{
			ID:          "MissingFinalNewlineInspection",
			DisplayName: "Missing newline at end of file",
			Severity:    types.SeverityInfo,
			Capability:  missingFinalNewline{},
		},
		{
			ID:          "VarKeywordInspection",
			DisplayName: "Use of var",
			Scope:       "ecmascript",
			Severity:    types.SeverityWarning,
			Capability:  varKeyword{},
		},
		{
			ID:          "DebuggerStatementInspection",
			DisplayName: "Debugger statement",
			Scope:       "javascript",
			Severity:    types.SeverityError,
			Capability:  debuggerStatement{},
		},
		{
			ID:          "DuplicateImportInspection",
			DisplayName: "Duplicate import source",
			Scope:       "ecmascript",
			Severity:    types.SeverityWarning,
			Capability:  duplicateImport{},
		},
		{
			// Whole-project analyzer: not a per-file capability, so the
			// analysis loop reports it as unsupported and skips it.
			ID:          "ProjectSizeInspection",
			DisplayName: "Project size report",
			Severity:    types.SeverityInfo,
			Capability:  projectSize{},
		},
	}
	for _, d := range builtins {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
	return r
}

// fullTextFix is the builtin fix shape: a whole-document text transform.
// Transforms are written to be idempotent, so the second fix on the same file
// is detected as a no-op rather than corrupting the text.
type fullTextFix struct {
	name      string
	write     bool
	transform func(string) string
}

func (f *fullTextFix) Name() string              { return f.name }
func (f *fullTextFix) RequiresWriteAction() bool { return f.write }

func (f *fullTextFix) Apply(loc *types.Location) error {
	if loc == nil || loc.Doc == nil {
		return fmt.Errorf("fix %q has no live document", f.name)
	}
	loc.Doc.SetText(f.transform(loc.Doc.Text()))
	return nil
}

func stripTrailingWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

func ensureFinalNewline(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}

// trailingWhitespace flags lines that end in blanks.
type trailingWhitespace struct{}

func (trailingWhitespace) Inspect(file types.FileRef, doc types.DocumentRef) ([]*types.Finding, error) {
	var findings []*types.Finding
	for i, line := range strings.Split(doc.Text(), "\n") {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == line {
			continue
		}
		findings = append(findings, &types.Finding{
			File:    file.Name(),
			Line:    i + 1,
			Row:     len(trimmed),
			Message: "line has trailing whitespace",
			Fixes: []types.Fix{&fullTextFix{
				name:      "strip trailing whitespace",
				write:     true,
				transform: stripTrailingWhitespace,
			}},
			Location: &types.Location{File: file.Name(), Doc: doc},
		})
	}
	return findings, nil
}

// longLine flags lines over the limit.
type longLine struct {
	limit int
}

func (l longLine) Inspect(file types.FileRef, doc types.DocumentRef) ([]*types.Finding, error) {
	var findings []*types.Finding
	for i, line := range strings.Split(doc.Text(), "\n") {
		if len(line) <= l.limit {
			continue
		}
		findings = append(findings, &types.Finding{
			File:     file.Name(),
			Line:     i + 1,
			Row:      l.limit,
			Message:  fmt.Sprintf("line is %d characters, limit is %d", len(line), l.limit),
			Location: &types.Location{File: file.Name(), Doc: doc},
		})
	}
	return findings, nil
}

// missingFinalNewline flags files whose last line is not newline-terminated.
type missingFinalNewline struct{}

func (missingFinalNewline) Inspect(file types.FileRef, doc types.DocumentRef) ([]*types.Finding, error) {
	text := doc.Text()
	if text == "" || strings.HasSuffix(text, "\n") {
		return nil, nil
	}
	return []*types.Finding{{
		File:    file.Name(),
		Line:    strings.Count(text, "\n") + 1,
		Row:     0,
		Message: "no newline at end of file",
		Fixes: []types.Fix{&fullTextFix{
			name:      "add final newline",
			write:     false,
			transform: ensureFinalNewline,
		}},
		Location: &types.Location{File: file.Name(), Doc: doc},
	}}, nil
}

// varKeyword flags var declarations in ECMAScript sources.
type varKeyword struct{}

func (varKeyword) Inspect(file types.FileRef, doc types.DocumentRef) ([]*types.Finding, error) {
	var findings []*types.Finding
	for i, line := range strings.Split(doc.Text(), "\n") {
		row := 0
		rest := line
		offset := 0
		for {
			idx := strings.Index(rest, "var ")
			if idx < 0 {
				break
			}
			findings = append(findings, &types.Finding{
				File:     file.Name(),
				Line:     i + 1,
				Row:      row,
				Message:  "use let or const instead of var",
				Location: &types.Location{File: file.Name(), Doc: doc},
			})
			row++
			offset += idx + len("var ")
			rest = line[offset:]
		}
	}
	return findings, nil
}

// debuggerStatement flags debugger statements left in JavaScript.
type debuggerStatement struct{}

func (debuggerStatement) Inspect(file types.FileRef, doc types.DocumentRef) ([]*types.Finding, error) {
	var findings []*types.Finding
	for i, line := range strings.Split(doc.Text(), "\n") {
		if !strings.Contains(strings.TrimSpace(line), "debugger") {
			continue
		}
		findings = append(findings, &types.Finding{
			File:     file.Name(),
			Line:     i + 1,
			Row:      0,
			Message:  "debugger statement must not be committed",
			Location: &types.Location{File: file.Name(), Doc: doc},
		})
	}
	return findings, nil
}

// duplicateImport flags repeated import sources within one file.
type duplicateImport struct{}

func (duplicateImport) Inspect(file types.FileRef, doc types.DocumentRef) ([]*types.Finding, error) {
	seen := make(map[string]int) // source -> first line
	var findings []*types.Finding
	for i, line := range strings.Split(doc.Text(), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "import ") {
			continue
		}
		from := strings.Index(trimmed, " from ")
		if from < 0 {
			continue
		}
		src := strings.Trim(strings.TrimSuffix(strings.TrimSpace(trimmed[from+len(" from "):]), ";"), `"'`)
		if first, ok := seen[src]; ok {
			findings = append(findings, &types.Finding{
				File:     file.Name(),
				Line:     i + 1,
				Row:      0,
				Message:  fmt.Sprintf("duplicate import of %q, first imported on line %d", src, first),
				Location: &types.Location{File: file.Name(), Doc: doc},
			})
			continue
		}
		seen[src] = i + 1
	}
	return findings, nil
}

// projectSize is a whole-project capability, deliberately not a FileInspector.
type projectSize struct{}
