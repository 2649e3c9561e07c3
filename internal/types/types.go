// Package types provides shared types used across the lintgate codebase.
// This package is at the bottom of the dependency graph and should not import
// any other internal packages to avoid circular dependencies.
package types

// Severity classifies a finding. Weak warnings count against the warning
// threshold bucket but keep their own label for display.
type Severity string

// Severity level constants.
const (
	SeverityError       Severity = "error"
	SeverityWarning     Severity = "warning"
	SeverityWeakWarning Severity = "weak-warning"
	SeverityInfo        Severity = "info"
	SeverityNone        Severity = ""
)

// Valid reports whether s is one of the known severity levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityWeakWarning, SeverityInfo:
		return true
	}
	return false
}

// Bucket identifies a threshold counter.
type Bucket int

// Threshold buckets. Weak warnings share the warning bucket.
const (
	BucketError Bucket = iota
	BucketWarning
	BucketInfo
)

// ThresholdBucket maps a severity to the counter it increments.
func (s Severity) ThresholdBucket() Bucket {
	switch s {
	case SeverityError:
		return BucketError
	case SeverityWarning, SeverityWeakWarning:
		return BucketWarning
	default:
		return BucketInfo
	}
}

// FileRef is the read-only view of a source file handed to inspectors.
type FileRef interface {
	// Name returns a stable display name (the path relative to the
	// workspace root).
	Name() string

	// Language returns the file's host language tag.
	Language() string
}

// DocumentRef is the mutable text view of a file. Fixes mutate through it;
// inspectors must treat it as read-only.
type DocumentRef interface {
	Text() string
	SetText(text string)
	Modified() bool
}

// Location is a live handle into a document. A Finding drops its Location
// once a fix has consumed it, so a nil Location means "already applied".
type Location struct {
	File string
	Doc  DocumentRef
}

// Fix is an automated transformation resolving one Finding. A fix must be a
// no-op when re-applied to a finding whose location has been consumed.
type Fix interface {
	// Name identifies the fix in logs.
	Name() string

	// RequiresWriteAction reports whether the fix must run inside the
	// workspace write scope.
	RequiresWriteAction() bool

	// Apply performs the transformation through the location's document.
	Apply(loc *Location) error
}

// Finding is one reported diagnostic instance.
type Finding struct {
	File     string // owning file display name
	Line     int    // 1-based
	Row      int    // tie-break ordinal within the line
	Severity Severity
	Message  string
	Fixes    []Fix
	Location *Location // nil once a fix has consumed it
}

// CompareLocation orders findings by (line, row) ascending as a genuine
// lexicographic comparison. The file name is deliberately not part of the
// key; grouping by file happens after the sort.
func CompareLocation(a, b *Finding) int {
	if a.Line != b.Line {
		if a.Line < b.Line {
			return -1
		}
		return 1
	}
	switch {
	case a.Row < b.Row:
		return -1
	case a.Row > b.Row:
		return 1
	}
	return 0
}

// FileInspector is the per-file, stateless diagnostic capability. It is the
// only tool kind the analysis loop knows how to drive; descriptors carrying
// any other capability are skipped.
type FileInspector interface {
	Inspect(file FileRef, doc DocumentRef) ([]*Finding, error)
}

// ToolDescriptor describes one diagnostic tool in the effective set.
//
// Identity and equality are by ID alone: two descriptors with the same ID are
// the same tool even if every other field differs. The effective set is
// therefore always represented as a map keyed by ID, never as a slice
// deduplicated by structural equality.
type ToolDescriptor struct {
	ID          string
	DisplayName string

	// Scope is the declared language scope. Empty means the tool applies
	// to any language.
	Scope string

	Severity Severity

	// FixEnabled is set from explicit configuration; inherited profile
	// entries never enable fixing.
	FixEnabled bool

	// Capability is the opaque analysis capability. The engine dispatches
	// on its dynamic type; only FileInspector capabilities run.
	Capability any
}

// ToolResult pairs a tool with its ordered findings for the whole run.
// It is created once after the tool's analysis pass and read-only thereafter.
type ToolResult struct {
	Tool     ToolDescriptor
	Findings []*Finding
}

// Limits holds the optional per-bucket maximum finding counts.
// A nil maximum means unbounded.
type Limits struct {
	MaxErrors   *int
	MaxWarnings *int
	MaxInfo     *int
}

// Max returns the configured maximum for a bucket, or nil if unbounded.
func (l Limits) Max(b Bucket) *int {
	switch b {
	case BucketError:
		return l.MaxErrors
	case BucketWarning:
		return l.MaxWarnings
	default:
		return l.MaxInfo
	}
}
