// Package profile reads host diagnostic profiles from a profiles directory.
//
// A profile names a set of enabled tools with the severity the host assigns
// each of them. Profiles are only consulted when configuration inheritance is
// enabled; the registry merge then folds the entries under any explicitly
// configured tools.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lintgate/lintgate/internal/types"
)

// Entry is one tool enabled by a profile.
type Entry struct {
	Tool     string         `yaml:"tool"`
	Severity types.Severity `yaml:"severity"`
	Enabled  *bool          `yaml:"enabled"` // nil means enabled
}

// IsEnabled reports whether the entry is active in the profile.
func (e Entry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// Profile is a named severity mapping over a set of tools.
type Profile struct {
	Name    string  `yaml:"name"`
	Current bool    `yaml:"current"`
	Tools   []Entry `yaml:"tools"`
}

// Store reads profiles from a directory of YAML files.
type Store struct {
	dir string
}

// NewStore creates a Store over the given directory. The directory does not
// need to exist until a profile is actually loaded.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// List returns the names of all profiles in the directory, sorted.
func (s *Store) List() ([]string, error) {
	profiles, err := s.readAll()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names, nil
}

// Load returns the profile with the given name. With an empty name it returns
// the profile marked current, if any.
func (s *Store) Load(name string) (*Profile, error) {
	profiles, err := s.readAll()
	if err != nil {
		return nil, err
	}

	for _, p := range profiles {
		if name != "" && p.Name == name {
			return p, nil
		}
		if name == "" && p.Current {
			return p, nil
		}
	}

	if name == "" {
		return nil, fmt.Errorf("no profile is marked current in %s", s.dir)
	}
	return nil, fmt.Errorf("profile %q not found in %s", name, s.dir)
}

func (s *Store) readAll() ([]*Profile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}

	var profiles []*Profile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read profile %s: %w", entry.Name(), err)
		}

		var p Profile
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse profile %s: %w", entry.Name(), err)
		}
		if p.Name == "" {
			// Fall back to the file name without extension.
			p.Name = entry.Name()[:len(entry.Name())-len(ext)]
		}
		profiles = append(profiles, &p)
	}

	return profiles, nil
}
