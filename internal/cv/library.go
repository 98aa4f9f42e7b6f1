package cv

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// TemplateInfo carries metadata for a loaded template.
type TemplateInfo struct {
	Path     string
	Category string
	Width    int
	Height   int
	LoadedAt time.Time
}

// Library is a thread-safe registry of named template images.
// Loading the same name twice silently replaces the earlier entry, which is
// how season reloads swap card art without a separate invalidation step.
type Library struct {
	mu     sync.RWMutex
	images map[string]*image.RGBA
	info   map[string]TemplateInfo
	log    *slog.Logger
}

// NewLibrary creates an empty template library
func NewLibrary(logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		images: make(map[string]*image.RGBA),
		info:   make(map[string]TemplateInfo),
		log:    logger,
	}
}

// Load reads one image file and registers it under name.
func (l *Library) Load(name, path, category string) error {
	img, err := decodeImageFile(path)
	if err != nil {
		return fmt.Errorf("loading template %s: %w", name, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.images[name] = img
	l.info[name] = TemplateInfo{
		Path:     path,
		Category: category,
		Width:    img.Bounds().Dx(),
		Height:   img.Bounds().Dy(),
		LoadedAt: time.Now(),
	}

	return nil
}

// LoadDir loads every PNG and JPEG in dir under the given category, using the
// file name without extension as the template name. Files that fail to decode
// are logged and skipped; the count of successfully loaded templates is
// returned. A missing directory is an error.
func (l *Library) LoadDir(dir, category string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading template directory %s: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		path := filepath.Join(dir, entry.Name())

		if err := l.Load(name, path, category); err != nil {
			l.log.Warn("skipping unreadable template", "path", path, "error", err)
			continue
		}
		loaded++
	}

	l.log.Debug("loaded template directory", "dir", dir, "category", category, "count", loaded)
	return loaded, nil
}

// Get returns the template image for name.
func (l *Library) Get(name string) (*image.RGBA, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	img, ok := l.images[name]
	return img, ok
}

// Info returns the metadata recorded when name was loaded.
func (l *Library) Info(name string) (TemplateInfo, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	info, ok := l.info[name]
	return info, ok
}

// Remove drops one template.
func (l *Library) Remove(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.images, name)
	delete(l.info, name)
}

// Clear drops every template.
func (l *Library) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.images = make(map[string]*image.RGBA)
	l.info = make(map[string]TemplateInfo)
}

// Count returns the number of loaded templates.
func (l *Library) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.images)
}

// Names returns every loaded template name.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.images))
	for name := range l.images {
		names = append(names, name)
	}
	return names
}

// NamesByCategory returns the names loaded under one category.
func (l *Library) NamesByCategory(category string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var names []string
	for name, info := range l.info {
		if info.Category == category {
			names = append(names, name)
		}
	}
	return names
}

func decodeImageFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if rgba, ok := decoded.(*image.RGBA); ok {
		return rgba, nil
	}

	rgba := image.NewRGBA(decoded.Bounds())
	draw.Draw(rgba, rgba.Bounds(), decoded, decoded.Bounds().Min, draw.Src)
	return rgba, nil
}
