package cv

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, solidImage(w, h, c)); err != nil {
		t.Fatalf("encoding %s: %v", path, err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "ahri.png"), 8, 8, color.RGBA{R: 255, A: 255})
	writeTestPNG(t, filepath.Join(dir, "garen.png"), 8, 8, color.RGBA{B: 255, A: 255})

	// Non-image and corrupt files must be skipped, not fail the load.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	library := NewLibrary(nil)
	loaded, err := library.LoadDir(dir, "card_s1_c1")
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	if loaded != 2 {
		t.Errorf("loaded = %d, want 2", loaded)
	}
	if library.Count() != 2 {
		t.Errorf("count = %d, want 2", library.Count())
	}

	img, ok := library.Get("ahri")
	if !ok {
		t.Fatal("ahri not loaded")
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("width = %d, want 8", img.Bounds().Dx())
	}

	info, ok := library.Info("garen")
	if !ok {
		t.Fatal("garen info missing")
	}
	if info.Category != "card_s1_c1" {
		t.Errorf("category = %s", info.Category)
	}
}

func TestLoadDirMissing(t *testing.T) {
	library := NewLibrary(nil)
	if _, err := library.LoadDir("/nonexistent/path", "x"); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLoadOverwritesSameName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.png")

	writeTestPNG(t, path, 4, 4, color.RGBA{R: 255, A: 255})
	library := NewLibrary(nil)
	if err := library.Load("card", path, "a"); err != nil {
		t.Fatal(err)
	}

	writeTestPNG(t, path, 9, 9, color.RGBA{B: 255, A: 255})
	if err := library.Load("card", path, "b"); err != nil {
		t.Fatal(err)
	}

	if library.Count() != 1 {
		t.Errorf("count = %d, want 1", library.Count())
	}
	img, _ := library.Get("card")
	if img.Bounds().Dx() != 9 {
		t.Errorf("width = %d, want 9 after overwrite", img.Bounds().Dx())
	}
}

func TestNamesByCategory(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"), 4, 4, color.RGBA{A: 255})

	library := NewLibrary(nil)
	if err := library.Load("a", filepath.Join(dir, "a.png"), "cat1"); err != nil {
		t.Fatal(err)
	}

	if names := library.NamesByCategory("cat1"); len(names) != 1 || names[0] != "a" {
		t.Errorf("cat1 names = %v", names)
	}
	if names := library.NamesByCategory("cat2"); len(names) != 0 {
		t.Errorf("cat2 names = %v, want empty", names)
	}
}

func TestClearAndRemove(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"), 4, 4, color.RGBA{A: 255})
	writeTestPNG(t, filepath.Join(dir, "b.png"), 4, 4, color.RGBA{A: 255})

	library := NewLibrary(nil)
	if _, err := library.LoadDir(dir, "x"); err != nil {
		t.Fatal(err)
	}

	library.Remove("a")
	if _, ok := library.Get("a"); ok {
		t.Error("a should be removed")
	}

	library.Clear()
	if library.Count() != 0 {
		t.Errorf("count after clear = %d", library.Count())
	}
}
