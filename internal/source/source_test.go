package source

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestWorkspace(t *testing.T, include, exclude []string, files map[string]string) *Workspace {
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
	cache, err := NewDocumentCache(8)
	if err != nil {
		t.Fatal(err)
	}
	return NewWorkspace(dir, include, exclude, cache)
}

// =============================================================================
// Test Discover
// =============================================================================

func TestDiscoverOrderAndLanguage(t *testing.T) {
	ws := newTestWorkspace(t, nil, nil, map[string]string{
		"b.ts":        "x",
		"a.js":        "x",
		"sub/c.go":    "x",
		"sub/d.weird": "x",
	})

	files, err := ws.Discover()
	if err != nil {
		t.Fatal(err)
	}

	wantNames := []string{"a.js", "b.ts", "sub/c.go", "sub/d.weird"}
	wantLangs := []string{"javascript", "typescript", "go", "text"}
	if len(files) != len(wantNames) {
		t.Fatalf("got %d files, want %d", len(files), len(wantNames))
	}
	for i, f := range files {
		if f.Name() != wantNames[i] {
			t.Errorf("file %d = %s, want %s (stable sorted order)", i, f.Name(), wantNames[i])
		}
		if f.Language() != wantLangs[i] {
			t.Errorf("%s language = %s, want %s", f.Name(), f.Language(), wantLangs[i])
		}
	}
}

func TestDiscoverIncludeExclude(t *testing.T) {
	ws := newTestWorkspace(t,
		[]string{"**/*.js", "**/*.ts"},
		[]string{"vendor/**"},
		map[string]string{
			"a.js":        "x",
			"b.md":        "x",
			"vendor/c.js": "x",
		})

	files, err := ws.Discover()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Name() != "a.js" {
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = f.Name()
		}
		t.Errorf("discovered %v, want [a.js]", names)
	}
}

// =============================================================================
// Test Document
// =============================================================================

func TestDocumentStageCommitFlush(t *testing.T) {
	ws := newTestWorkspace(t, nil, nil, map[string]string{"a.txt": "before"})
	files, _ := ws.Discover()
	doc, err := ws.Load(files[0])
	if err != nil {
		t.Fatal(err)
	}

	if doc.Modified() {
		t.Error("freshly loaded document reports modified")
	}

	doc.SetText("after")
	if doc.Text() != "after" {
		t.Error("staged text not visible to readers")
	}
	if !doc.Modified() {
		t.Error("staged edit not reported as modified")
	}

	// Flushing without committing must not persist the staged edit.
	if err := doc.Flush(); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(files[0].Abs())
	if string(data) != "before" {
		t.Errorf("uncommitted edit reached disk: %q", data)
	}

	doc.Commit()
	if err := doc.Flush(); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(files[0].Abs())
	if string(data) != "after" {
		t.Errorf("file = %q after commit+flush, want %q", data, "after")
	}
	if doc.Modified() {
		t.Error("document still modified after flush")
	}
}

func TestLoadIsCached(t *testing.T) {
	ws := newTestWorkspace(t, nil, nil, map[string]string{"a.txt": "x"})
	files, _ := ws.Discover()

	first, err := ws.Load(files[0])
	if err != nil {
		t.Fatal(err)
	}
	second, err := ws.Load(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("second Load() returned a different document")
	}

	if _, ok := ws.LookupDocument("a.txt"); !ok {
		t.Error("loaded document not reachable by name")
	}
	ws.Evict("a.txt")
	if _, ok := ws.LookupDocument("a.txt"); ok {
		t.Error("evicted document still live")
	}
}

// =============================================================================
// Test access scopes
// =============================================================================

func TestScopesAreExclusive(t *testing.T) {
	ws := newTestWorkspace(t, nil, nil, nil)

	read, err := ws.AcquireRead()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ws.AcquireWrite(); err == nil {
		t.Error("write scope acquired while a read scope is held")
	}
	if _, err := ws.AcquireRead(); err == nil {
		t.Error("read scopes must not nest")
	}

	read.Release()
	read.Release() // releasing twice is a no-op

	write, err := ws.AcquireWrite()
	if err != nil {
		t.Fatalf("could not acquire write scope after release: %v", err)
	}
	if !write.Write() {
		t.Error("write guard does not report write mode")
	}
	write.Release()

	if _, err := ws.AcquireRead(); err != nil {
		t.Errorf("could not reacquire after write release: %v", err)
	}
}
