// Package categories loads the fixed document category enum and tag
// palette from an embedded YAML file.
package categories

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the category enums for lookup and display.
type Registry struct {
	mu           sync.RWMutex
	documentCats []DocumentCategory
	tagCats      []TagCategory
	documentByID map[string]DocumentCategory
	tagCatsByID  map[string]TagCategory
}

// NewRegistry loads the embedded category definitions.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/categories.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read category config: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category config: %w", err)
	}
	if len(file.DocumentCategories) == 0 {
		return nil, fmt.Errorf("category config defines no document categories")
	}

	r := &Registry{
		documentCats: file.DocumentCategories,
		tagCats:      file.TagCategories,
		documentByID: make(map[string]DocumentCategory, len(file.DocumentCategories)),
		tagCatsByID:  make(map[string]TagCategory, len(file.TagCategories)),
	}
	for _, cat := range file.DocumentCategories {
		r.documentByID[cat.ID] = cat
	}
	for _, cat := range file.TagCategories {
		r.tagCatsByID[cat.ID] = cat
	}
	return r, nil
}

// DocumentCategories returns the enum in definition order.
func (r *Registry) DocumentCategories() []DocumentCategory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.documentCats
}

// IsValidDocumentCategory reports whether id is a member of the enum.
func (r *Registry) IsValidDocumentCategory(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.documentByID[id]
	return ok
}

// TagCategories returns the palette in definition order.
func (r *Registry) TagCategories() []TagCategory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tagCats
}

// TagColor returns the palette color for a tag category, falling back
// to the "other" entry for unknown categories.
func (r *Registry) TagColor(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if cat, ok := r.tagCatsByID[id]; ok {
		return cat.Color
	}
	if cat, ok := r.tagCatsByID["other"]; ok {
		return cat.Color
	}
	return ""
}
