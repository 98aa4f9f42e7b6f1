package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPriorities(t *testing.T) {
	path := writeFile(t, t.TempDir(), "priorities.yaml", `
name: reroll comp
priorities:
  - Ahri
  - Garen
  - Lux
`)

	manifest, err := LoadPriorities(path)
	if err != nil {
		t.Fatalf("LoadPriorities failed: %v", err)
	}

	if manifest.Name != "reroll comp" {
		t.Errorf("name = %s", manifest.Name)
	}
	if len(manifest.Priorities) != 3 || manifest.Priorities[0] != "Ahri" {
		t.Errorf("priorities = %v", manifest.Priorities)
	}
}

func TestPrioritiesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	manifest := &PriorityManifest{Name: "x", Priorities: []string{"Ahri", "Lux"}}

	if err := SavePriorities(manifest, path); err != nil {
		t.Fatalf("SavePriorities failed: %v", err)
	}

	loaded, err := LoadPriorities(path)
	if err != nil {
		t.Fatalf("LoadPriorities failed: %v", err)
	}
	if len(loaded.Priorities) != 2 || loaded.Priorities[1] != "Lux" {
		t.Errorf("priorities = %v", loaded.Priorities)
	}
}

func TestLoadCompositions(t *testing.T) {
	path := writeFile(t, t.TempDir(), "comps.yaml", `
compositions:
  - name: star guardians
    cards: [Ahri, Lux, Jinx]
  - name: bruisers
    cards: [Garen, Darius]
`)

	manifest, err := LoadCompositions(path)
	if err != nil {
		t.Fatalf("LoadCompositions failed: %v", err)
	}

	comp, ok := manifest.Find("bruisers")
	if !ok {
		t.Fatal("bruisers composition missing")
	}
	if len(comp.Cards) != 2 {
		t.Errorf("cards = %v", comp.Cards)
	}

	if _, ok := manifest.Find("nope"); ok {
		t.Error("unknown composition should not be found")
	}
}

func TestLoadLayout(t *testing.T) {
	path := writeFile(t, t.TempDir(), "layout.yaml", `
slots:
  - {left: 200, top: 500, width: 150, height: 200}
  - {left: 400, top: 500, width: 150, height: 200}
gold: {left: 550, top: 620, width: 180, height: 60}
`)

	manifest, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}

	regions := manifest.SlotRegions()
	if len(regions) != 2 {
		t.Fatalf("slots = %d, want 2", len(regions))
	}
	if regions[0].Width() != 150 || regions[0].X1 != 200 {
		t.Errorf("slot 0 = %+v", regions[0])
	}

	gold, ok := manifest.GoldRegion()
	if !ok {
		t.Fatal("gold region missing")
	}
	if gold.Height() != 60 {
		t.Errorf("gold = %+v", gold)
	}
}

func TestLoadLayoutWithoutGold(t *testing.T) {
	path := writeFile(t, t.TempDir(), "layout.yaml", `
slots:
  - {left: 0, top: 0, width: 10, height: 10}
`)

	manifest, err := LoadLayout(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := manifest.GoldRegion(); ok {
		t.Error("gold region should be absent")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "priorities: [unterminated")

	if _, err := LoadPriorities(path); err == nil {
		t.Error("expected parse error")
	}
}
