package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/profile"
	"github.com/lintgate/lintgate/internal/types"
)

// ErrUnknownTool indicates an explicitly configured tool name that resolves
// to nothing in the registry. This is a fatal configuration error.
var ErrUnknownTool = errors.New("unknown tool")

// toolSuffix is appended to short names during resolution, so that a config
// entry "UnusedImport" finds the tool registered as "UnusedImportInspection".
const toolSuffix = "Inspection"

// Resolve computes the effective tool set for a run.
//
// When inheritance is enabled, every enabled entry of the host profile is
// converted into a descriptor carrying the profile's severity. Every
// explicitly configured tool name is resolved against the registry; failing
// to resolve one aborts the run. Explicit entries win over inherited entries
// sharing the same id.
func Resolve(cfg *config.Config, reg *Registry, store *profile.Store, logger *slog.Logger) (map[string]types.ToolDescriptor, error) {
	effective := make(map[string]types.ToolDescriptor)

	if cfg.Inherit {
		prof, err := store.Load(cfg.Profile)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		for _, entry := range prof.Tools {
			if !entry.IsEnabled() {
				continue
			}
			d, ok := reg.Lookup(entry.Tool)
			if !ok {
				logger.Warn("profile names a tool the host does not know, skipping",
					"profile", prof.Name, "tool", entry.Tool)
				continue
			}
			d.Severity = entry.Severity
			d.FixEnabled = false
			effective[d.ID] = d
		}
		logger.Info("inherited tools from profile",
			"profile", prof.Name, "tools", sortedIDs(effective))
	}

	var explicit []string
	for _, g := range cfg.Groups() {
		names := make([]string, 0, len(g.Group.Tools))
		for name := range g.Group.Tools {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			d, err := resolveName(reg, name)
			if err != nil {
				return nil, err
			}
			d.Severity = g.Severity
			d.FixEnabled = g.Group.Tools[name].Fix
			effective[d.ID] = d
			explicit = append(explicit, d.ID)
		}
	}

	logger.Info("resolved effective tool set",
		"explicit", explicit, "effective", sortedIDs(effective))
	return effective, nil
}

// resolveName resolves a configured tool name by exact id, by short name plus
// the Inspection suffix, or by display name.
func resolveName(reg *Registry, name string) (types.ToolDescriptor, error) {
	if d, ok := reg.Lookup(name); ok {
		return d, nil
	}
	if d, ok := reg.Lookup(name + toolSuffix); ok {
		return d, nil
	}
	for _, d := range reg.All() {
		if strings.EqualFold(d.DisplayName, name) {
			return d, nil
		}
	}
	return types.ToolDescriptor{}, fmt.Errorf("%w: %q does not match any registered tool", ErrUnknownTool, name)
}

func sortedIDs(set map[string]types.ToolDescriptor) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
