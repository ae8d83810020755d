package docsystem

import (
	"time"
)

// Folder is a named grouping node scoped to one heritage site.
type Folder struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"siteId"`
	ParentID  *string   `json:"parentId"` // NULL = root level
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FolderNode is a folder in the site tree with nested children.
// Children are exactly the folders whose ParentID equals this node's ID.
type FolderNode struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	ParentID      *string       `json:"parentId"`
	DocumentCount int           `json:"documentCount"`
	Children      []*FolderNode `json:"children"`
}

// Breadcrumb is one entry of a root→target folder path.
type Breadcrumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
