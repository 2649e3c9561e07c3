package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the default capacity of the document cache.
const DefaultCacheSize = 512

// NewDocumentCache creates the process-lifetime document cache. Callers
// create it once and thread it through every Workspace they open; it is never
// a hidden package-level singleton.
func NewDocumentCache(size int) (*lru.Cache[string, *Document], error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return lru.New[string, *Document](size)
}

// Workspace is a source tree plus the documents opened from it. Access to the
// tree is bracketed by exclusive scopes: a read scope for the duration of a
// tool's file pass, a write scope for transactional fixes. At most one scope
// is open at a time.
type Workspace struct {
	root    string
	include []string
	exclude []string

	cache  *lru.Cache[string, *Document]
	active *Guard
}

// NewWorkspace creates a Workspace rooted at root. Include and exclude are
// doublestar patterns over root-relative paths; an empty include list matches
// everything.
func NewWorkspace(root string, include, exclude []string, cache *lru.Cache[string, *Document]) *Workspace {
	return &Workspace{root: root, include: include, exclude: exclude, cache: cache}
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string { return w.root }

// Discover walks the workspace and returns the matching files in a stable
// (sorted) order.
func (w *Workspace) Discover() ([]*File, error) {
	var files []*File
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !w.matches(rel) {
			return nil
		}
		files = append(files, &File{
			relPath:  rel,
			absPath:  path,
			language: languageForPath(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].relPath < files[j].relPath })
	return files, nil
}

func (w *Workspace) matches(rel string) bool {
	included := len(w.include) == 0
	for _, pattern := range w.include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, pattern := range w.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	return true
}

// Load returns the document for a file, reading it from disk on a cache miss.
func (w *Workspace) Load(f *File) (*Document, error) {
	if doc, ok := w.cache.Get(f.Name()); ok {
		return doc, nil
	}
	data, err := os.ReadFile(f.Abs())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name(), err)
	}
	doc := newDocument(f.Abs(), string(data))
	w.cache.Add(f.Name(), doc)
	return doc, nil
}

// LookupDocument returns the live document for a display name, if one is
// still cached. A document evicted from the cache is no longer live.
func (w *Workspace) LookupDocument(name string) (*Document, bool) {
	return w.cache.Get(name)
}

// Evict drops a document from the cache without flushing it.
func (w *Workspace) Evict(name string) {
	w.cache.Remove(name)
}

// Guard is a held access scope. Release it on every exit path.
type Guard struct {
	ws       *Workspace
	write    bool
	released bool
}

// Write reports whether the guard is a write scope.
func (g *Guard) Write() bool { return g.write }

// Release closes the scope. Releasing twice is a no-op.
func (g *Guard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.ws.active = nil
}

// AcquireRead opens a read scope. It fails if any scope is already open;
// scopes never nest or overlap.
func (w *Workspace) AcquireRead() (*Guard, error) {
	return w.acquire(false)
}

// AcquireWrite opens a write scope. It fails if any scope is already open.
func (w *Workspace) AcquireWrite() (*Guard, error) {
	return w.acquire(true)
}

func (w *Workspace) acquire(write bool) (*Guard, error) {
	if w.active != nil {
		kind := "read"
		if w.active.write {
			kind = "write"
		}
		return nil, fmt.Errorf("cannot acquire scope: a %s scope is already held", kind)
	}
	g := &Guard{ws: w, write: write}
	w.active = g
	return g, nil
}
