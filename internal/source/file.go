// Package source provides the workspace view the engine analyzes: discovered
// files, their in-memory documents, and the exclusive access scopes that
// bracket analysis and fixing.
package source

import "path/filepath"

// File identifies one discovered source file.
type File struct {
	relPath  string
	absPath  string
	language string
}

// Name returns the file's display name, the path relative to the workspace
// root with forward slashes.
func (f *File) Name() string { return f.relPath }

// Language returns the file's host language tag.
func (f *File) Language() string { return f.language }

// Abs returns the absolute path on disk.
func (f *File) Abs() string { return f.absPath }

// languageByExt maps file extensions to host language tags. Anything not
// listed here is tagged "text".
var languageByExt = map[string]string{
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".go":   "go",
	".py":   "python",
	".rb":   "ruby",
	".java": "java",
	".css":  "css",
	".html": "html",
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".md":   "markdown",
}

func languageForPath(path string) string {
	if lang, ok := languageByExt[filepath.Ext(path)]; ok {
		return lang
	}
	return "text"
}
