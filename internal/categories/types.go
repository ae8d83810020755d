package categories

// DocumentCategory describes one entry of the fixed document category
// enum, as rendered by the dashboard.
type DocumentCategory struct {
	ID          string `yaml:"id" json:"id"`
	DisplayName string `yaml:"display_name" json:"displayName"`
	Description string `yaml:"description" json:"description"`
}

// TagCategory is one entry of the fixed tag palette.
type TagCategory struct {
	ID          string `yaml:"id" json:"id"`
	DisplayName string `yaml:"display_name" json:"displayName"`
	Color       string `yaml:"color" json:"color"` // hex, used by the tag picker
}

type registryFile struct {
	DocumentCategories []DocumentCategory `yaml:"document_categories"`
	TagCategories      []TagCategory      `yaml:"tag_categories"`
}
