package gamedata

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultPresetID names the preset used when none is configured.
const DefaultPresetID = "classic"

// PresetDef describes a named board size loaded from presets.json.
type PresetDef struct {
	ID    string `json:"id"`    // Unique identifier (e.g., "expert")
	Name  string `json:"name"`  // Display name
	Side  int    `json:"side"`  // Grid side length
	Mines int    `json:"mines"` // Mine count, always below side*side
}

// PresetsFile represents the structure of presets.json.
type PresetsFile struct {
	Presets []PresetDef `json:"presets"`
}

// LoadPresets loads preset definitions from the embedded presets.json file.
func LoadPresets() ([]PresetDef, error) {
	file, err := Load[PresetsFile]("presets.json")
	if err != nil {
		return nil, err
	}
	return file.Presets, nil
}

// PresetRegistry looks up presets by ID.
type PresetRegistry struct {
	presets map[string]*PresetDef
	all     []PresetDef
}

// NewPresetRegistry creates a registry, rejecting presets that could not be played.
func NewPresetRegistry(presets []PresetDef) (*PresetRegistry, error) {
	registry := &PresetRegistry{
		presets: make(map[string]*PresetDef, len(presets)),
		all:     presets,
	}
	for i := range presets {
		p := &presets[i]
		if p.Side < 1 || p.Mines < 0 || p.Mines >= p.Side*p.Side {
			return nil, fmt.Errorf("preset %q: %d mines on a %dx%d board", p.ID, p.Mines, p.Side, p.Side)
		}
		registry.presets[p.ID] = p
	}
	return registry, nil
}

// LoadPresetRegistry loads and creates a registry from the embedded presets.json.
func LoadPresetRegistry() (*PresetRegistry, error) {
	presets, err := LoadPresets()
	if err != nil {
		return nil, err
	}
	if len(presets) == 0 {
		return nil, errors.New("no presets loaded from presets.json")
	}
	return NewPresetRegistry(presets)
}

// MustLoadPresetRegistry loads a registry, panicking on error.
func MustLoadPresetRegistry() *PresetRegistry {
	registry, err := LoadPresetRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the preset with the given ID, or nil if not found.
func (r *PresetRegistry) GetByID(id string) *PresetDef {
	return r.presets[id]
}

// IDs returns the known preset IDs in sorted order.
func (r *PresetRegistry) IDs() []string {
	ids := make([]string, 0, len(r.presets))
	for id := range r.presets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of presets in the registry.
func (r *PresetRegistry) Count() int {
	return len(r.all)
}
