package docsystem

import (
	"context"

	models "heritageguard/internal/domain/models/docsystem"
)

// CreateFolderRequest creates a folder under a parent (nil = root).
type CreateFolderRequest struct {
	SiteID   string  `json:"siteId"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId,omitempty"`
}

// UpdateFolderRequest renames a folder.
type UpdateFolderRequest struct {
	Name string `json:"name"`
}

// FolderGateway is the folder collaborator. The tree is always
// re-fetched after a mutation rather than patched locally, so the
// gateway only exposes whole-tree reads.
type FolderGateway interface {
	// Tree returns the flat folder list for a site; the client builds
	// the hierarchy.
	Tree(ctx context.Context, siteID string) ([]models.Folder, error)

	Create(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	Update(ctx context.Context, folderID string, req *UpdateFolderRequest) (*models.Folder, error)

	// Delete removes a folder; when recursive is set the server
	// cascades to descendant folders and detaches their documents.
	Delete(ctx context.Context, folderID string, recursive bool) error

	// Move re-parents a folder (nil newParentID = root). Cycle
	// prevention is the caller's responsibility.
	Move(ctx context.Context, folderID string, newParentID *string) error
}
