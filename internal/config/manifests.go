package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"jansel.dev/shop-picker-go/internal/cv"
)

// PriorityManifest is the YAML schema for a ranked pick list.
type PriorityManifest struct {
	Name       string   `yaml:"name"`
	Priorities []string `yaml:"priorities"`
}

// Composition is one named target composition.
type Composition struct {
	Name  string   `yaml:"name"`
	Cards []string `yaml:"cards"`
}

// CompositionManifest is the YAML schema for target compositions.
type CompositionManifest struct {
	Compositions []Composition `yaml:"compositions"`
}

// SlotSpec is one shop slot rectangle in the layout manifest.
type SlotSpec struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LayoutManifest is the YAML schema for a screen layout override.
type LayoutManifest struct {
	Slots []SlotSpec `yaml:"slots"`
	Gold  *SlotSpec  `yaml:"gold,omitempty"`
}

// LoadPriorities reads a priority manifest.
func LoadPriorities(path string) (*PriorityManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading priority manifest: %w", err)
	}

	var manifest PriorityManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing priority manifest %s: %w", path, err)
	}

	return &manifest, nil
}

// LoadCompositions reads a composition manifest.
func LoadCompositions(path string) (*CompositionManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading composition manifest: %w", err)
	}

	var manifest CompositionManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing composition manifest %s: %w", path, err)
	}

	return &manifest, nil
}

// Find returns the composition with the given name.
func (m *CompositionManifest) Find(name string) (Composition, bool) {
	for _, comp := range m.Compositions {
		if comp.Name == name {
			return comp, true
		}
	}
	return Composition{}, false
}

// LoadLayout reads a screen layout manifest.
func LoadLayout(path string) (*LayoutManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout manifest: %w", err)
	}

	var manifest LayoutManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing layout manifest %s: %w", path, err)
	}

	return &manifest, nil
}

// SlotRegions converts the manifest slots to screen regions.
func (m *LayoutManifest) SlotRegions() []cv.Region {
	regions := make([]cv.Region, len(m.Slots))
	for i, slot := range m.Slots {
		regions[i] = cv.NewRegionFromSize(slot.Left, slot.Top, slot.Width, slot.Height)
	}
	return regions
}

// GoldRegion converts the manifest gold rectangle, when present.
func (m *LayoutManifest) GoldRegion() (cv.Region, bool) {
	if m.Gold == nil {
		return cv.Region{}, false
	}
	return cv.NewRegionFromSize(m.Gold.Left, m.Gold.Top, m.Gold.Width, m.Gold.Height), true
}

// SavePriorities writes a priority manifest back to disk.
func SavePriorities(manifest *PriorityManifest, path string) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encoding priority manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
