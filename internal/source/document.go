package source

import (
	"fmt"
	"os"
)

// Document is the in-memory text of one file. Fix applications stage new text
// with SetText; the staged text becomes the document's committed text on
// Commit and reaches disk on Flush. Readers always see the newest text,
// staged or committed.
type Document struct {
	absPath   string
	text      string  // committed text
	staged    *string // pending edit, nil when none
	persisted string  // what is on disk
}

func newDocument(absPath, text string) *Document {
	return &Document{absPath: absPath, text: text, persisted: text}
}

// Text returns the current document text, including any staged edit.
func (d *Document) Text() string {
	if d.staged != nil {
		return *d.staged
	}
	return d.text
}

// SetText stages a full-text replacement.
func (d *Document) SetText(text string) {
	d.staged = &text
}

// Modified reports whether the current text differs from what is on disk.
func (d *Document) Modified() bool {
	return d.Text() != d.persisted
}

// Commit folds any staged edit into the committed text.
func (d *Document) Commit() {
	if d.staged != nil {
		d.text = *d.staged
		d.staged = nil
	}
}

// Flush persists the committed text to disk if it changed. Staged but
// uncommitted edits are not flushed.
func (d *Document) Flush() error {
	if d.text == d.persisted {
		return nil
	}
	if err := os.WriteFile(d.absPath, []byte(d.text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", d.absPath, err)
	}
	d.persisted = d.text
	return nil
}
