// Package docsystem defines the gateway interfaces through which the
// client core talks to the HeritageGuard REST API. Implementations live
// in internal/remote/rest; tests substitute fakes.
package docsystem

import (
	"context"

	models "heritageguard/internal/domain/models/docsystem"
)

// ProgressFunc reports transport-level upload progress for one file as
// an integer percentage in [0, 100].
type ProgressFunc func(percent int)

// ListPage describes one page of the paginated document listing.
type ListPage struct {
	Page int
	Size int
	Sort string
}

// PagedDocuments is one page of results plus the server's total count.
type PagedDocuments struct {
	Documents  []models.Document `json:"documents"`
	TotalCount int               `json:"totalCount"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
}

// DocumentGateway is the document CRUD collaborator.
type DocumentGateway interface {
	// List returns one page of all documents (GET /site-documents).
	List(ctx context.Context, page ListPage) (*PagedDocuments, error)

	// ListBySite returns all documents of one site
	// (GET /site-documents/site/{siteId}).
	ListBySite(ctx context.Context, siteID string) ([]models.Document, error)

	// Upload submits one file as multipart form data
	// (POST /site-documents/upload/{siteId}) and returns the created
	// record. onProgress may be nil.
	Upload(ctx context.Context, siteID string, file models.CandidateFile, meta models.UploadMetadata, onProgress ProgressFunc) (*models.Document, error)

	// Update applies a partial patch (PUT /site-documents/{id}).
	Update(ctx context.Context, id string, patch *models.DocumentPatch) (*models.Document, error)

	// Delete removes a document (DELETE /site-documents/{id}).
	Delete(ctx context.Context, id string) error
}
