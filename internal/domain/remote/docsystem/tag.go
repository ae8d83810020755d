package docsystem

import (
	"context"

	models "heritageguard/internal/domain/models/docsystem"
)

// TagGateway is the tag statistics collaborator (GET /tags/statistics).
type TagGateway interface {
	Statistics(ctx context.Context) ([]models.TagUsage, error)
}
