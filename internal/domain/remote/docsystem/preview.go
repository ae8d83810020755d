package docsystem

import (
	"context"

	models "heritageguard/internal/domain/models/docsystem"
)

// PreviewGateway is the preview-fetch collaborator
// (GET /documents/{id}/preview).
type PreviewGateway interface {
	FetchPreview(ctx context.Context, documentID string) (*models.PreviewPayload, error)
}
