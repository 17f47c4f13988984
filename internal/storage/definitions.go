package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jwebster45206/npc-engine/pkg/npc"
)

// ListDefinitionNames returns the definition record names (filenames minus
// extension) under dir/npcs, sorted.
func ListDefinitionNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(dir, "npcs"))
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// ReadDefinition loads and validates one definition record. Unknown JSON
// fields are rejected.
func ReadDefinition(dir, name string) (*npc.Definition, error) {
	path := filepath.Join(dir, "npcs", name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %q: %w", name, err)
	}

	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()

	var def npc.Definition
	if err := decoder.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to decode definition %q: %w", name, err)
	}
	if err := def.ApplyDefaults().Validate(); err != nil {
		return nil, fmt.Errorf("invalid definition %q: %w", name, err)
	}
	return &def, nil
}

// ReadAllDefinitions loads every record under dir/npcs, skipping malformed
// files with a logged warning. One bad record never aborts the set.
func ReadAllDefinitions(dir string, logger *slog.Logger) ([]npc.Definition, error) {
	names, err := ListDefinitionNames(dir)
	if err != nil {
		return nil, err
	}

	var defs []npc.Definition
	for _, name := range names {
		def, err := ReadDefinition(dir, name)
		if err != nil {
			logger.Warn("Skipping NPC definition", "name", name, "error", err)
			continue
		}
		defs = append(defs, *def)
	}
	return defs, nil
}
